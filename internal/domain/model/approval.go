package model

// State is the approval lifecycle state for one pending transaction.
type State string

const (
	StateIdle             State = "idle"
	StateLoading          State = "loading"
	StateAwaitingDecision State = "awaiting_decision"
	StateApproving        State = "approving"
	StateExecuted         State = "executed"
	StateRejected         State = "rejected"
	StateFailed           State = "failed"
)

func (s State) String() string {
	return string(s)
}

// ExecutionStatus is the user-visible sub-state while a raw-bytes approval
// is in flight. Empty means no execution is running.
type ExecutionStatus string

const (
	ExecStatusNone       ExecutionStatus = ""
	ExecStatusSigning    ExecutionStatus = "signing"
	ExecStatusSubmitting ExecutionStatus = "submitting"
	ExecStatusConfirming ExecutionStatus = "confirming"
	ExecStatusCompleted  ExecutionStatus = "completed"
)

// ExecutionResult is the terse result returned by the wallet after a
// successful signing/execution round trip.
type ExecutionResult struct {
	TransactionID string `json:"transactionId"`
}
