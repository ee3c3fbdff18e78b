package event

import (
	"encoding/json"
	"strings"
)

// Bridge event names. These are wire-level identifiers shared with wallet
// hosts implemented independently; they must not change.
const (
	WalletInscribeStartRequest = "wallet_inscribe_start_request"
	WalletExecuteTxRequest     = "wallet_execute_tx_request"
	WalletSetCurrentRequest    = "wallet_set_current_request"
)

const (
	requestSuffix = "_request"
	replySuffix   = "_reply"
)

// BridgeRequest is the envelope emitted on a request event. Request carries
// the operation-specific object untouched.
type BridgeRequest struct {
	RequestID string          `json:"requestId"`
	Request   json.RawMessage `json:"request"`
	Network   string          `json:"network,omitempty"`
}

// BridgeReply is the envelope sent back on the per-request reply event.
// Exactly one reply is produced per request.
type BridgeReply struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReplyEvent derives the uniquely-named reply channel for one request:
// the "_request" suffix is replaced with "_reply" and the request id is
// appended, e.g. wallet_execute_tx_request -> wallet_execute_tx_reply_<id>.
func ReplyEvent(requestEvent, requestID string) string {
	base := requestEvent
	if strings.HasSuffix(base, requestSuffix) {
		base = strings.TrimSuffix(base, requestSuffix)
	}
	return base + replySuffix + "_" + requestID
}
