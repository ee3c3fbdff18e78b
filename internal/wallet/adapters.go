package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hashgraph-online/desktop-bridge/internal/bridge"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/event"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
)

// Signer performs inscription signing with the locally connected wallet.
type Signer interface {
	SignInscription(ctx context.Context, request json.RawMessage, network model.Network) (json.RawMessage, error)
}

// Executor signs and submits transactions with the wallet's operator key.
type Executor interface {
	Execute(ctx context.Context, req ExecuteRequest, network model.Network) (*ExecuteResult, error)
}

// InscriptionAdapter is the wallet-side bridge endpoint for inscription
// requests: one handler on the inscribe event, delegating to a Signer.
type InscriptionAdapter struct {
	channel *bridge.Channel
	signer  Signer
	logger  *slog.Logger
}

func NewInscriptionAdapter(channel *bridge.Channel, signer Signer, logger *slog.Logger) *InscriptionAdapter {
	return &InscriptionAdapter{
		channel: channel,
		signer:  signer,
		logger:  logger.With("component", "inscription_adapter"),
	}
}

// Attach registers the handler and returns a detach func. Detach stops
// future requests from reaching the signer.
func (a *InscriptionAdapter) Attach() func() {
	return a.channel.RegisterHandler(event.WalletInscribeStartRequest, guard(a.handle))
}

func (a *InscriptionAdapter) handle(ctx context.Context, req event.BridgeRequest) (json.RawMessage, error) {
	network, err := model.ParseNetwork(req.Network)
	if err != nil {
		return nil, err
	}
	signed, err := a.signer.SignInscription(ctx, req.Request, network)
	if err != nil {
		a.logger.Warn("inscription signing failed", "request_id", req.RequestID, "error", err)
		return nil, err
	}
	return bridge.NormalizeBinary(signed), nil
}

// ExecutionAdapter is the wallet-side bridge endpoint for transaction
// execution requests.
type ExecutionAdapter struct {
	channel  *bridge.Channel
	executor Executor
	logger   *slog.Logger
}

func NewExecutionAdapter(channel *bridge.Channel, executor Executor, logger *slog.Logger) *ExecutionAdapter {
	return &ExecutionAdapter{
		channel:  channel,
		executor: executor,
		logger:   logger.With("component", "execution_adapter"),
	}
}

func (a *ExecutionAdapter) Attach() func() {
	return a.channel.RegisterHandler(event.WalletExecuteTxRequest, guard(a.handle))
}

func (a *ExecutionAdapter) handle(ctx context.Context, req event.BridgeRequest) (json.RawMessage, error) {
	network, err := model.ParseNetwork(req.Network)
	if err != nil {
		return nil, err
	}

	var execReq ExecuteRequest
	if err := json.Unmarshal(req.Request, &execReq); err != nil {
		return nil, fmt.Errorf("unmarshal execute request: %w", err)
	}
	if execReq.TransactionBytes == "" && execReq.ScheduleID == "" {
		return nil, fmt.Errorf("execute request carries neither transaction bytes nor a schedule id")
	}

	result, err := a.executor.Execute(ctx, execReq, network)
	if err != nil {
		a.logger.Warn("wallet execution failed", "request_id", req.RequestID, "error", err)
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal execute result: %w", err)
	}
	return data, nil
}

// guard converts handler panics into error replies so they never cross the
// transport or kill the subscriber goroutine.
func guard(h bridge.HandlerFunc) bridge.HandlerFunc {
	return func(ctx context.Context, req event.BridgeRequest) (data json.RawMessage, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("wallet handler panic: %v", r)
			}
		}()
		return h(ctx, req)
	}
}
