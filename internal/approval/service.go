package approval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/metrics"
	"github.com/hashgraph-online/desktop-bridge/internal/mirror"
	"github.com/hashgraph-online/desktop-bridge/internal/poller"
)

const executedLookupTimeout = 10 * time.Second

// Watcher starts background schedule polling. *poller.Poller satisfies it.
type Watcher interface {
	Start(ctx context.Context, scheduleID string, network model.Network, onUpdate poller.UpdateFunc) (stop func())
}

// Service owns the set of live approval machines. It creates one machine
// per pending approval with a shared set of collaborators, and for
// schedule-backed approvals it keeps a poller watching the ledger so an
// execution observed outside the machine (another signer, another device)
// flips the machine to Executed before a stale approve can go out.
type Service struct {
	deps    Deps
	pacing  Pacing
	watcher Watcher
	mirror  mirror.Querier

	mu   sync.Mutex
	live map[string]*liveApproval
}

type liveApproval struct {
	machine  *Machine
	stopPoll func()
}

// NewService builds a service. watcher and querier may be nil when schedule
// watching is not wanted (bytes-only deployments, tests).
func NewService(deps Deps, pacing Pacing, watcher Watcher, querier mirror.Querier) *Service {
	return &Service{
		deps:    deps,
		pacing:  pacing,
		watcher: watcher,
		mirror:  querier,
		live:    make(map[string]*liveApproval),
	}
}

// Open creates and loads a machine for req, registers it under Key(req)
// and, for schedule approvals, starts the ledger watch. Opening a key that
// is already live returns the existing machine: one machine per pending
// approval.
func (s *Service) Open(ctx context.Context, req Request) *Machine {
	key := Key(req)

	s.mu.Lock()
	if entry, ok := s.live[key]; ok {
		s.mu.Unlock()
		return entry.machine
	}
	machine := NewMachine(s.deps, req, s.pacing)
	entry := &liveApproval{machine: machine, stopPoll: func() {}}
	s.live[key] = entry
	metrics.ApprovalsPending.Set(float64(len(s.live)))
	s.mu.Unlock()

	machine.Load(ctx)

	if req.ScheduleID != "" && s.watcher != nil {
		stop := s.watcher.Start(ctx, req.ScheduleID, req.Network, func(info *model.ScheduleInfo) {
			if info.Executed() {
				machine.NoteScheduleExecuted(s.lookupExecutedTxID(info, req.Network))
			}
		})
		s.mu.Lock()
		entry.stopPoll = stop
		s.mu.Unlock()
	}
	return machine
}

// Get returns the live machine for key, if any.
func (s *Service) Get(key string) (*Machine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.live[key]
	if !ok {
		return nil, false
	}
	return entry.machine, true
}

// Release stops the ledger watch for key and forgets the machine. Safe to
// call for unknown keys.
func (s *Service) Release(key string) {
	s.mu.Lock()
	entry, ok := s.live[key]
	if ok {
		delete(s.live, key)
		metrics.ApprovalsPending.Set(float64(len(s.live)))
	}
	s.mu.Unlock()
	if ok {
		entry.stopPoll()
	}
}

// Pending reports how many approvals are currently open.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// lookupExecutedTxID resolves the transaction that executed a schedule from
// its executed consensus timestamp. Best effort: an empty id still marks
// the machine executed.
func (s *Service) lookupExecutedTxID(info *model.ScheduleInfo, network model.Network) string {
	if s.mirror == nil || info.ExecutedTimestamp == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), executedLookupTimeout)
	defer cancel()

	records, err := s.mirror.GetTransactionsByTimestamp(ctx, *info.ExecutedTimestamp, network)
	if err != nil || len(records) == 0 {
		return ""
	}
	for _, record := range records {
		if record.Result == "SUCCESS" {
			return record.TransactionID
		}
	}
	return records[0].TransactionID
}

// Key derives the service-level identity of a request: the schedule id,
// the delegated message id, or a digest of the raw bytes, in that order.
func Key(req Request) string {
	switch {
	case req.ScheduleID != "":
		return "schedule:" + req.ScheduleID
	case req.MessageID != "":
		return "message:" + req.MessageID
	default:
		sum := sha256.Sum256([]byte(req.TransactionBytes))
		return "bytes:" + hex.EncodeToString(sum[:8])
	}
}
