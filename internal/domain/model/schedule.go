package model

// ScheduleInfo is the ledger-side record for a scheduled transaction as
// reported by the mirror service. TransactionBody is opaque here; the
// resolver decodes it.
type ScheduleInfo struct {
	ScheduleID        string  `json:"schedule_id"`
	TransactionBody   string  `json:"transaction_body"`
	Memo              string  `json:"memo,omitempty"`
	ExpirationTime    *string `json:"expiration_time,omitempty"`
	ExecutedTimestamp *string `json:"executed_timestamp,omitempty"`
}

// Executed reports whether the schedule has already been executed on the
// ledger. The presence of ExecutedTimestamp is the sole authority for this;
// it must be consulted before any execution attempt.
func (s *ScheduleInfo) Executed() bool {
	return s != nil && s.ExecutedTimestamp != nil && *s.ExecutedTimestamp != ""
}
