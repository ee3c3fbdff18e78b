package mirror

// Transaction is the mirror-native shape of a finalized transaction record.
// Field names follow the mirror REST API.
type Transaction struct {
	TransactionID      string          `json:"transaction_id"`
	Name               string          `json:"name"`
	Result             string          `json:"result"`
	ConsensusTimestamp string          `json:"consensus_timestamp"`
	ChargedTxFee       int64           `json:"charged_tx_fee"`
	EntityID           string          `json:"entity_id"`
	MemoBase64         string          `json:"memo_base64"`
	Transfers          []Transfer      `json:"transfers"`
	TokenTransfers     []TokenTransfer `json:"token_transfers"`
}

type Transfer struct {
	Account    string `json:"account"`
	Amount     int64  `json:"amount"`
	IsApproval bool   `json:"is_approval"`
}

type TokenTransfer struct {
	TokenID string `json:"token_id"`
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

// TokenInfo is the subset of the mirror token entity used for display.
type TokenInfo struct {
	TokenID  string `json:"token_id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals string `json:"decimals"`
	Type     string `json:"type"`
}

// ScheduleStatus summarizes whether a scheduled transaction has resolved.
type ScheduleStatus struct {
	Executed          bool
	Deleted           bool
	ExecutedTimestamp *string
}

// scheduleEntity mirrors /api/v1/schedules/{id}.
type scheduleEntity struct {
	ScheduleID        string  `json:"schedule_id"`
	TransactionBody   string  `json:"transaction_body"`
	Memo              string  `json:"memo"`
	ExpirationTime    *string `json:"expiration_time"`
	ExecutedTimestamp *string `json:"executed_timestamp"`
	Deleted           bool    `json:"deleted"`
}

// transactionsPage mirrors /api/v1/transactions responses, which wrap the
// records in a list even for id-addressed lookups.
type transactionsPage struct {
	Transactions []Transaction `json:"transactions"`
}
