package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/errkind"
	"github.com/hashgraph-online/desktop-bridge/internal/mirror"
)

// Resolver produces a normalized ParsedTransaction from either raw
// transaction bytes or a schedule id.
type Resolver struct {
	decoder Decoder
	mirror  mirror.Querier
	logger  *slog.Logger
}

func NewResolver(decoder Decoder, querier mirror.Querier, logger *slog.Logger) *Resolver {
	return &Resolver{
		decoder: decoder,
		mirror:  querier,
		logger:  logger.With("component", "resolver"),
	}
}

// decodedTransaction is the decoder's wire shape. Amounts may arrive as
// numbers or strings depending on the decoding path, so they stay untyped
// until coercion.
type decodedTransaction struct {
	Type              string                 `json:"type"`
	HumanReadableType string                 `json:"humanReadableType"`
	Transfers         []decodedTransfer      `json:"transfers"`
	TokenTransfers    []decodedTokenTransfer `json:"tokenTransfers"`
	Details           map[string]any         `json:"details"`
	Memo              string                 `json:"memo"`
}

type decodedTransfer struct {
	AccountID string `json:"accountId"`
	Amount    any    `json:"amount"`
	IsDecimal bool   `json:"isDecimal"`
}

type decodedTokenTransfer struct {
	TokenID   string `json:"tokenId"`
	AccountID string `json:"accountId"`
	Amount    any    `json:"amount"`
}

// ParseFromBytes validates and decodes raw transaction bytes into display
// form. Validation runs first so malformed agent output is rejected before
// a full decode, mirroring the decoder script's two-action contract.
func (r *Resolver) ParseFromBytes(ctx context.Context, transactionBytes string) (*model.ParsedTransaction, error) {
	if err := r.decoder.Validate(ctx, transactionBytes); err != nil {
		return nil, err
	}
	return r.decode(ctx, transactionBytes, "")
}

// ParseFromSchedule fetches the schedule entity from the mirror and decodes
// its transaction body. The schedule memo is carried onto the result when
// the decoded body has none.
func (r *Resolver) ParseFromSchedule(ctx context.Context, scheduleID string, network model.Network) (*model.ParsedTransaction, error) {
	info, err := r.mirror.GetScheduleInfo(ctx, scheduleID, network)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule %s: %w", scheduleID, err)
	}
	if info.TransactionBody == "" {
		return nil, errkind.New(errkind.KindParse, "schedule has no transaction body")
	}
	return r.decode(ctx, info.TransactionBody, info.Memo)
}

func (r *Resolver) decode(ctx context.Context, transactionBytes, fallbackMemo string) (*model.ParsedTransaction, error) {
	raw, err := r.decoder.Decode(ctx, transactionBytes)
	if err != nil {
		return nil, err
	}

	var decoded decodedTransaction
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errkind.Wrap(errkind.KindParse, fmt.Errorf("unmarshal decoded transaction: %w", err))
	}

	parsed := &model.ParsedTransaction{
		Type:              decoded.Type,
		HumanReadableType: decoded.HumanReadableType,
		Transfers:         make([]model.Transfer, 0, len(decoded.Transfers)),
		TokenTransfers:    make([]model.TokenTransfer, 0, len(decoded.TokenTransfers)),
		Details:           decoded.Details,
		Memo:              decoded.Memo,
	}
	for _, t := range decoded.Transfers {
		parsed.Transfers = append(parsed.Transfers, model.Transfer{
			AccountID: t.AccountID,
			Amount:    coerceAmount(t.Amount),
			IsDecimal: t.IsDecimal,
		})
	}
	for _, t := range decoded.TokenTransfers {
		parsed.TokenTransfers = append(parsed.TokenTransfers, model.TokenTransfer{
			TokenID:   t.TokenID,
			AccountID: t.AccountID,
			Amount:    coerceAmount(t.Amount),
		})
	}
	if parsed.Memo == "" {
		parsed.Memo = fallbackMemo
	}
	parsed.Normalize()
	return parsed, nil
}

// coerceAmount converts a decoder amount to a float. Strings are stripped
// of everything but digits, signs and the decimal point first; anything
// unparseable coerces to 0 so downstream arithmetic never sees NaN.
func coerceAmount(v any) float64 {
	switch a := v.(type) {
	case float64:
		return a
	case string:
		var b strings.Builder
		for _, r := range a {
			if (r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.' {
				b.WriteRune(r)
			}
		}
		f, err := strconv.ParseFloat(b.String(), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
