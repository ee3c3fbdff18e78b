package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashgraph-online/desktop-bridge/internal/bridge"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/event"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
)

// Info identifies the connected wallet account.
type Info struct {
	AccountID string `json:"accountId"`
	Network   string `json:"network"`
}

// Status tracks wallet connection state. The status adapter writes it from
// wallet announcements on the bridge; the status server reads.
type Status struct {
	mu   sync.RWMutex
	info *Info
}

func NewStatus() *Status { return &Status{} }

// SetConnected records the connected account.
func (s *Status) SetConnected(info Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = &info
}

// Disconnect clears connection state.
func (s *Status) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = nil
}

// Get returns the connected wallet info, if any.
func (s *Status) Get() (Info, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.info == nil {
		return Info{}, false
	}
	return *s.info, true
}

// SetCurrentRequest is the payload of a wallet connection announcement. A
// nil Info means the wallet disconnected.
type SetCurrentRequest struct {
	Info *Info `json:"info"`
}

// StatusAdapter is the host-side bridge endpoint for wallet connection
// announcements: the wallet publishes its active account on connect and a
// nil info on disconnect.
type StatusAdapter struct {
	channel *bridge.Channel
	status  *Status
	logger  *slog.Logger
}

func NewStatusAdapter(channel *bridge.Channel, status *Status, logger *slog.Logger) *StatusAdapter {
	return &StatusAdapter{
		channel: channel,
		status:  status,
		logger:  logger.With("component", "status_adapter"),
	}
}

func (a *StatusAdapter) Attach() func() {
	return a.channel.RegisterHandler(event.WalletSetCurrentRequest, guard(a.handle))
}

func (a *StatusAdapter) handle(_ context.Context, req event.BridgeRequest) (json.RawMessage, error) {
	var payload SetCurrentRequest
	if err := json.Unmarshal(req.Request, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal set-current request: %w", err)
	}

	if payload.Info == nil {
		a.status.Disconnect()
		a.logger.Info("wallet disconnected")
		return json.RawMessage("true"), nil
	}

	if _, err := model.ParseNetwork(payload.Info.Network); err != nil {
		return nil, fmt.Errorf("unsupported wallet network: %s", payload.Info.Network)
	}
	a.status.SetConnected(*payload.Info)
	a.logger.Info("wallet connected", "account_id", payload.Info.AccountID, "network", payload.Info.Network)
	return json.RawMessage("true"), nil
}
