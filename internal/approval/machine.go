package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/enrich"
	"github.com/hashgraph-online/desktop-bridge/internal/errkind"
	"github.com/hashgraph-online/desktop-bridge/internal/metrics"
	"github.com/hashgraph-online/desktop-bridge/internal/notify"
)

// ErrRejectUnavailable is returned when an approval has no delegated
// rejection semantics.
var ErrRejectUnavailable = errors.New("rejection is not available for this approval")

// Parser resolves an approval target into a displayable transaction.
type Parser interface {
	ParseFromBytes(ctx context.Context, transactionBytes string) (*model.ParsedTransaction, error)
	ParseFromSchedule(ctx context.Context, scheduleID string, network model.Network) (*model.ParsedTransaction, error)
}

// Executor is the wallet surface invoked on approval.
type Executor interface {
	ExecuteTransaction(ctx context.Context, transactionBytes string, network model.Network) (*model.ExecutionResult, error)
	ExecuteSchedule(ctx context.Context, scheduleID string, network model.Network) (*model.ExecutionResult, error)
}

// Enricher upgrades an execution result into a full receipt.
type Enricher interface {
	Enrich(ctx context.Context, txID string, network model.Network, pre *model.ParsedTransaction) *enrich.Result
}

// Request describes one pending approval. Exactly one of ScheduleID or
// TransactionBytes identifies the transaction; a MessageID with callbacks
// delegates the decision semantics to the caller instead.
type Request struct {
	ScheduleID       string
	TransactionBytes string // base64
	MessageID        string
	Network          model.Network
	OnApprove        func(ctx context.Context, messageID string) error
	OnReject         func(ctx context.Context, messageID string) error
}

// Pacing holds the minimum visible durations of the execution sub-states.
// Purely cosmetic progress feedback; zero values skip the holds entirely.
type Pacing struct {
	Signing    time.Duration
	Confirming time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{Signing: 500 * time.Millisecond, Confirming: time.Second}
}

// Deps are the collaborators of one approval machine.
type Deps struct {
	Parser   Parser
	Executor Executor
	Enricher Enricher
	Notifier notify.Notifier
	Logger   *slog.Logger
}

// Snapshot is a point-in-time copy of the machine's observable state.
type Snapshot struct {
	State                 model.State
	ExecutionStatus       model.ExecutionStatus
	Transaction           *model.ParsedTransaction
	ExecutedTransactionID string
	Message               string
	Err                   error
}

// Machine drives one approval through
// Idle -> Loading -> AwaitingDecision -> {Approving -> Executed | Failed} | Rejected.
// One machine per pending approval; methods are safe for concurrent use but
// transitions are strictly sequential, gated by the approving/executed flags.
type Machine struct {
	deps   Deps
	req    Request
	pacing Pacing
	logger *slog.Logger

	mu           sync.Mutex
	state        model.State
	execStatus   model.ExecutionStatus
	parsed       *model.ParsedTransaction
	executedTxID string
	message      string
	lastErr      error
	approving    bool
	executed     bool

	enrichWG sync.WaitGroup
}

func NewMachine(deps Deps, req Request, pacing Pacing) *Machine {
	return &Machine{
		deps:   deps,
		req:    req,
		pacing: pacing,
		logger: deps.Logger.With("component", "approval"),
		state:  model.StateIdle,
	}
}

// Load resolves the approval target into a parsed transaction. Parse
// failure is non-fatal: the machine still reaches AwaitingDecision so the
// user can decide on an undecodable transaction.
func (m *Machine) Load(ctx context.Context) {
	if m.req.ScheduleID == "" && m.req.TransactionBytes == "" {
		m.setState(model.StateAwaitingDecision)
		return
	}
	m.setState(model.StateLoading)

	var parsed *model.ParsedTransaction
	var err error
	if m.req.ScheduleID != "" {
		parsed, err = m.deps.Parser.ParseFromSchedule(ctx, m.req.ScheduleID, m.req.Network)
	} else {
		parsed, err = m.deps.Parser.ParseFromBytes(ctx, m.req.TransactionBytes)
	}

	m.mu.Lock()
	if err != nil {
		m.lastErr = err
		m.logger.Warn("approval target failed to parse", "schedule_id", m.req.ScheduleID, "error", err)
	} else {
		m.parsed = parsed
	}
	m.state = model.StateAwaitingDecision
	m.mu.Unlock()

	if err != nil {
		m.notify(ctx, notify.FromError(err))
	}
}

// Approve executes the transaction. Re-entrant calls while approving or
// after execution are converted into a single duplicate notification and
// never reach the wallet a second time.
func (m *Machine) Approve(ctx context.Context) {
	m.mu.Lock()
	if m.executed || m.approving {
		txID := m.executedTxID
		m.mu.Unlock()
		m.blockDuplicate(ctx, txID)
		return
	}
	m.approving = true
	m.state = model.StateApproving
	m.mu.Unlock()

	switch {
	case m.req.ScheduleID != "":
		m.approveSchedule(ctx)
	case m.req.TransactionBytes != "":
		m.approveBytes(ctx)
	case m.req.OnApprove != nil && m.req.MessageID != "":
		m.approveDelegated(ctx)
	default:
		m.failApprove(ctx, "none", errkind.New(errkind.KindInvalidFormat, "approval has no transaction to execute"), model.StateAwaitingDecision)
	}
}

func (m *Machine) approveSchedule(ctx context.Context) {
	result, err := m.deps.Executor.ExecuteSchedule(ctx, m.req.ScheduleID, m.req.Network)
	if err != nil {
		// retryable: back to awaiting
		m.failApprove(ctx, "schedule", err, model.StateAwaitingDecision)
		return
	}
	m.completeExecution(ctx, "schedule", result.TransactionID)
}

func (m *Machine) approveBytes(ctx context.Context) {
	m.setExecStatus(model.ExecStatusSigning)
	m.hold(ctx, m.pacing.Signing)

	m.setExecStatus(model.ExecStatusSubmitting)
	result, err := m.deps.Executor.ExecuteTransaction(ctx, m.req.TransactionBytes, m.req.Network)
	if err != nil {
		m.failApprove(ctx, "bytes", err, model.StateFailed)
		return
	}

	m.setExecStatus(model.ExecStatusConfirming)
	m.hold(ctx, m.pacing.Confirming)

	m.setExecStatus(model.ExecStatusCompleted)
	m.completeExecution(ctx, "bytes", result.TransactionID)
}

func (m *Machine) approveDelegated(ctx context.Context) {
	if err := m.req.OnApprove(ctx, m.req.MessageID); err != nil {
		m.failApprove(ctx, "delegated", err, model.StateAwaitingDecision)
		return
	}
	// delegated resolution is trusted: no transaction id to record
	m.completeExecution(ctx, "delegated", "")
}

// Reject delegates rejection to the caller. Only offered when the request
// carries a message id and an OnReject callback.
func (m *Machine) Reject(ctx context.Context) error {
	if m.req.OnReject == nil || m.req.MessageID == "" {
		return ErrRejectUnavailable
	}

	m.mu.Lock()
	if m.executed || m.approving {
		txID := m.executedTxID
		m.mu.Unlock()
		m.blockDuplicate(ctx, txID)
		return nil
	}
	m.mu.Unlock()

	if err := m.req.OnReject(ctx, m.req.MessageID); err != nil {
		metrics.ApprovalsTotal.WithLabelValues("delegated", "reject_error").Inc()
		m.notify(ctx, notify.FromError(err))
		return err
	}

	m.mu.Lock()
	m.state = model.StateRejected
	m.mu.Unlock()
	metrics.ApprovalsTotal.WithLabelValues("delegated", "rejected").Inc()
	return nil
}

// NoteScheduleExecuted records an execution observed outside the machine,
// typically by the schedule poller. Later approve attempts short-circuit.
func (m *Machine) NoteScheduleExecuted(transactionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.executed {
		return
	}
	m.executed = true
	m.executedTxID = transactionID
	m.state = model.StateExecuted
}

// WaitEnrichment blocks until any in-flight enrichment has finished.
func (m *Machine) WaitEnrichment() {
	m.enrichWG.Wait()
}

// Snapshot returns a copy of the observable state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:                 m.state,
		ExecutionStatus:       m.execStatus,
		Transaction:           m.parsed,
		ExecutedTransactionID: m.executedTxID,
		Message:               m.message,
		Err:                   m.lastErr,
	}
}

func (m *Machine) completeExecution(ctx context.Context, path, txID string) {
	m.mu.Lock()
	m.approving = false
	m.executed = true
	m.executedTxID = txID
	m.state = model.StateExecuted
	m.lastErr = nil
	pre := m.parsed
	m.mu.Unlock()

	metrics.ApprovalsTotal.WithLabelValues(path, "executed").Inc()
	m.logger.Info("approval executed", "path", path, "transaction_id", txID)

	fields := map[string]string{}
	if txID != "" {
		fields["transactionId"] = txID
	}
	m.notify(ctx, notify.Notification{
		Type:    notify.TypeSuccess,
		Title:   "Transaction Approved",
		Message: "The transaction was executed successfully.",
		Fields:  fields,
	})

	if txID == "" || m.deps.Enricher == nil {
		return
	}
	m.enrichWG.Add(1)
	go func() {
		defer m.enrichWG.Done()
		// detached: the receipt outlives the approve call
		res := m.deps.Enricher.Enrich(context.WithoutCancel(ctx), txID, m.req.Network, pre)
		m.mu.Lock()
		m.parsed = res.Transaction
		m.message = res.Message
		m.mu.Unlock()
	}()
}

func (m *Machine) failApprove(ctx context.Context, path string, err error, next model.State) {
	kind := errkind.Classify(err)

	m.mu.Lock()
	m.approving = false
	m.execStatus = model.ExecStatusNone
	m.lastErr = err
	if kind == errkind.KindAlreadyExecuted {
		// the ledger says it ran: adopt that, don't fail
		m.executed = true
		m.state = model.StateExecuted
	} else {
		m.state = next
	}
	m.mu.Unlock()

	metrics.ApprovalsTotal.WithLabelValues(path, string(kind)).Inc()
	m.logger.Warn("approval failed", "path", path, "kind", kind, "error", err)
	m.notify(ctx, notify.FromError(err))
}

func (m *Machine) blockDuplicate(ctx context.Context, txID string) {
	metrics.ApprovalDuplicatesBlocked.Inc()
	fields := map[string]string{}
	if txID != "" {
		fields["executedTransactionId"] = txID
	}
	m.notify(ctx, notify.Notification{
		Type:    notify.TypeInfo,
		Title:   errkind.UserTitle(errkind.KindAlreadyExecuted),
		Message: errkind.UserMessage(errkind.KindAlreadyExecuted),
		Fields:  fields,
	})
}

func (m *Machine) setState(s model.State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Machine) setExecStatus(s model.ExecutionStatus) {
	m.mu.Lock()
	m.execStatus = s
	m.mu.Unlock()
}

func (m *Machine) hold(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

func (m *Machine) notify(ctx context.Context, n notify.Notification) {
	if m.deps.Notifier == nil {
		return
	}
	if err := m.deps.Notifier.Send(ctx, n); err != nil {
		m.logger.Warn("notification failed", "title", n.Title, "error", err)
	}
}

// String renders the machine for logs.
func (m *Machine) String() string {
	s := m.Snapshot()
	return fmt.Sprintf("approval(state=%s, executed_tx=%s)", s.State, s.ExecutedTransactionID)
}
