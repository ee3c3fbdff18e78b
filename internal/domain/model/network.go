package model

import (
	"fmt"
	"strings"
)

type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

func (n Network) String() string {
	return string(n)
}

// ParseNetwork maps a user-supplied network name to a Network.
// An empty value defaults to testnet, matching the desktop host.
func ParseNetwork(value string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "mainnet":
		return NetworkMainnet, nil
	case "testnet", "":
		return NetworkTestnet, nil
	default:
		return "", fmt.Errorf("unsupported network: %s", value)
	}
}
