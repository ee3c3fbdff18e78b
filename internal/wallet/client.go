package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/bridge"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/event"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/errkind"
)

// Caller-owned bridge timeouts. Inscriptions involve user interaction with
// the wallet UI, so they get the long budget.
const (
	ExecuteTimeout  = 2 * time.Minute
	InscribeTimeout = 5 * time.Minute
)

// ExecuteRequest is the operation object carried inside the execute-tx
// envelope. Exactly one of TransactionBytes (base64) or ScheduleID is set.
type ExecuteRequest struct {
	TransactionBytes string `json:"transactionBytes,omitempty"`
	ScheduleID       string `json:"scheduleId,omitempty"`
}

// ExecuteResult is the wallet's reply to an execute request.
type ExecuteResult struct {
	TransactionID string `json:"transactionId"`
}

// Client is the host-side wallet surface: it turns execute/inscribe calls
// into correlated bridge requests and waits for the wallet's reply.
type Client struct {
	channel *bridge.Channel
	logger  *slog.Logger
}

func NewClient(channel *bridge.Channel, logger *slog.Logger) *Client {
	return &Client{
		channel: channel,
		logger:  logger.With("component", "wallet_client"),
	}
}

// ExecuteTransaction submits base64 transaction bytes for signing and
// submission by the connected wallet.
func (c *Client) ExecuteTransaction(ctx context.Context, transactionBytes string, network model.Network) (*model.ExecutionResult, error) {
	return c.execute(ctx, ExecuteRequest{TransactionBytes: transactionBytes}, network)
}

// ExecuteSchedule asks the wallet to sign an outstanding scheduled
// transaction by id.
func (c *Client) ExecuteSchedule(ctx context.Context, scheduleID string, network model.Network) (*model.ExecutionResult, error) {
	return c.execute(ctx, ExecuteRequest{ScheduleID: scheduleID}, network)
}

func (c *Client) execute(ctx context.Context, req ExecuteRequest, network model.Network) (*model.ExecutionResult, error) {
	data, err := c.channel.Request(ctx, event.WalletExecuteTxRequest, req, network.String(), ExecuteTimeout)
	if err != nil {
		return nil, err
	}

	var result ExecuteResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errkind.Wrap(errkind.KindInvalidFormat, fmt.Errorf("unmarshal execute reply: %w", err))
	}
	c.logger.Info("wallet executed transaction",
		"transaction_id", result.TransactionID,
		"network", network,
	)
	return &model.ExecutionResult{TransactionID: result.TransactionID}, nil
}

// StartInscription forwards an inscription request to the wallet and returns
// the wallet's raw result. The request object is operation-specific and
// passes through untouched.
func (c *Client) StartInscription(ctx context.Context, request json.RawMessage, network model.Network) (json.RawMessage, error) {
	return c.channel.Request(ctx, event.WalletInscribeStartRequest, request, network.String(), InscribeTimeout)
}
