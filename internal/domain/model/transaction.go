package model

// ParsedTransaction is the normalized, display-ready description of a
// transaction, produced before execution by the resolver and after
// execution by the enrichment pipeline.
type ParsedTransaction struct {
	Type              string          `json:"type"`
	HumanReadableType string          `json:"humanReadableType"`
	Transfers         []Transfer      `json:"transfers"`
	TokenTransfers    []TokenTransfer `json:"tokenTransfers"`
	Details           map[string]any  `json:"details,omitempty"`
	Memo              string          `json:"memo,omitempty"`
}

// Transfer is a single hbar movement. Amount follows the sign convention of
// the ledger: negative for debits, positive for credits.
type Transfer struct {
	AccountID string  `json:"accountId"`
	Amount    float64 `json:"amount"`
	IsDecimal bool    `json:"isDecimal,omitempty"`
}

// TokenTransfer is a single fungible/non-fungible token movement.
type TokenTransfer struct {
	TokenID   string  `json:"tokenId"`
	AccountID string  `json:"accountId"`
	Amount    float64 `json:"amount"`
}

// Normalize enforces the always-materialized invariant: Transfers and
// TokenTransfers are never nil, and the display type falls back to the raw
// type when unmapped. Callers must never have to distinguish nil from empty.
func (p *ParsedTransaction) Normalize() {
	if p.Transfers == nil {
		p.Transfers = []Transfer{}
	}
	if p.TokenTransfers == nil {
		p.TokenTransfers = []TokenTransfer{}
	}
	if p.HumanReadableType == "" {
		p.HumanReadableType = HumanReadableType(p.Type)
	}
}

// Raw ledger transaction kinds the desktop surfaces today. The set is open:
// unknown kinds pass through with the raw name as the display label.
const (
	TxTypeCryptoTransfer  = "CRYPTOTRANSFER"
	TxTypeCryptoCreate    = "CRYPTOCREATEACCOUNT"
	TxTypeTokenCreation   = "TOKENCREATION"
	TxTypeTokenMint       = "TOKENMINT"
	TxTypeTokenBurn       = "TOKENBURN"
	TxTypeTokenAssociate  = "TOKENASSOCIATE"
	TxTypeTokenAirdrop    = "TOKENAIRDROP"
	TxTypeConsensusSubmit = "CONSENSUSSUBMITMESSAGE"
	TxTypeConsensusCreate = "CONSENSUSCREATETOPIC"
	TxTypeContractCall    = "CONTRACTCALL"
	TxTypeScheduleCreate  = "SCHEDULECREATE"
	TxTypeScheduleSign    = "SCHEDULESIGN"
	TxTypeScheduleDelete  = "SCHEDULEDELETE"
)

var humanReadableTypes = map[string]string{
	TxTypeCryptoTransfer:  "HBAR Transfer",
	TxTypeCryptoCreate:    "Account Creation",
	TxTypeTokenCreation:   "Token Creation",
	TxTypeTokenMint:       "Token Mint",
	TxTypeTokenBurn:       "Token Burn",
	TxTypeTokenAssociate:  "Token Association",
	TxTypeTokenAirdrop:    "Token Airdrop",
	TxTypeConsensusSubmit: "Topic Message",
	TxTypeConsensusCreate: "Topic Creation",
	TxTypeContractCall:    "Contract Call",
	TxTypeScheduleCreate:  "Scheduled Transaction",
	TxTypeScheduleSign:    "Schedule Signature",
	TxTypeScheduleDelete:  "Schedule Deletion",
}

// HumanReadableType returns the display label for a raw transaction kind,
// falling back to the raw kind itself.
func HumanReadableType(txType string) string {
	if label, ok := humanReadableTypes[txType]; ok {
		return label
	}
	return txType
}
