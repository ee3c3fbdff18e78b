package enrich

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/cache"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/metrics"
	"github.com/hashgraph-online/desktop-bridge/internal/mirror"
)

const (
	defaultSettleDelay   = 2 * time.Second
	defaultTimeout       = 15 * time.Second
	defaultTokenCacheCap = 256
	defaultTokenCacheTTL = 10 * time.Minute
)

// Env exposes the lookups enrichment handlers may perform.
type Env interface {
	TokenInfo(ctx context.Context, tokenID string, network model.Network) (*mirror.TokenInfo, error)
}

// Handler fills in type-specific receipt fields and returns the final
// human-readable success message. Handlers mutate tx.Details in place.
type Handler func(ctx context.Context, env Env, network model.Network, tx *model.ParsedTransaction) string

// Result is an enrichment outcome. Transaction is never nil: on timeout or
// mirror miss it is the pre-execution parse, unchanged.
type Result struct {
	Transaction *model.ParsedTransaction
	Message     string
	Enriched    bool
}

type Config struct {
	SettleDelay   time.Duration // wait before the first mirror query (ledger finality propagation)
	Timeout       time.Duration // hard deadline racing the mirror query
	TokenCacheCap int
	TokenCacheTTL time.Duration
}

// Pipeline upgrades a terse execution result into an itemized receipt by
// re-fetching the finalized record from the mirror. Enrichment is best
// effort: the success notification has already fired by the time it runs.
type Pipeline struct {
	mirror      mirror.Querier
	settleDelay time.Duration
	timeout     time.Duration
	handlers    map[string]Handler
	tokens      *cache.LRU[string, *mirror.TokenInfo]
	logger      *slog.Logger
}

func NewPipeline(querier mirror.Querier, cfg Config, logger *slog.Logger) *Pipeline {
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = defaultSettleDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.TokenCacheCap <= 0 {
		cfg.TokenCacheCap = defaultTokenCacheCap
	}
	if cfg.TokenCacheTTL <= 0 {
		cfg.TokenCacheTTL = defaultTokenCacheTTL
	}
	p := &Pipeline{
		mirror:      querier,
		settleDelay: cfg.SettleDelay,
		timeout:     cfg.Timeout,
		handlers:    make(map[string]Handler),
		tokens:      cache.NewLRU[string, *mirror.TokenInfo](cfg.TokenCacheCap, cfg.TokenCacheTTL),
		logger:      logger.With("component", "enrichment"),
	}
	p.Register(model.TxTypeCryptoTransfer, cryptoTransferHandler)
	p.Register(model.TxTypeTokenCreation, tokenCreationHandler)
	p.Register(model.TxTypeConsensusSubmit, consensusSubmitHandler)
	return p
}

// Register installs the handler for a raw transaction kind, replacing any
// previous one.
func (p *Pipeline) Register(txType string, h Handler) {
	p.handlers[txType] = h
}

// Enrich waits out the settle delay, fetches the finalized record and merges
// it over the pre-execution parse. A timeout or missing record returns pre
// unchanged; the caller never surfaces an enrichment error to the user.
func (p *Pipeline) Enrich(ctx context.Context, txID string, network model.Network, pre *model.ParsedTransaction) *Result {
	start := time.Now()
	defer func() {
		metrics.EnrichmentLatency.Observe(time.Since(start).Seconds())
	}()

	if pre == nil {
		pre = &model.ParsedTransaction{}
	}
	pre.Normalize()

	dctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	select {
	case <-time.After(p.settleDelay):
	case <-dctx.Done():
		metrics.EnrichmentTotal.WithLabelValues("timeout").Inc()
		return p.fallback(txID, pre)
	}

	record, err := p.mirror.GetTransaction(dctx, mirror.FormatTransactionID(txID), network)
	if err != nil {
		result := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			result = "timeout"
		}
		metrics.EnrichmentTotal.WithLabelValues(result).Inc()
		p.logger.Warn("enrichment fetch failed", "transaction_id", txID, "error", err)
		return p.fallback(txID, pre)
	}
	if record == nil {
		metrics.EnrichmentTotal.WithLabelValues("miss").Inc()
		p.logger.Debug("mirror record not materialized yet", "transaction_id", txID)
		return p.fallback(txID, pre)
	}

	merged := merge(pre, record)
	message := p.message(dctx, network, merged)
	metrics.EnrichmentTotal.WithLabelValues("enriched").Inc()
	return &Result{Transaction: merged, Message: message, Enriched: true}
}

func (p *Pipeline) fallback(txID string, pre *model.ParsedTransaction) *Result {
	return &Result{
		Transaction: pre,
		Message:     fmt.Sprintf("%s completed (%s)", pre.HumanReadableType, txID),
	}
}

func (p *Pipeline) message(ctx context.Context, network model.Network, tx *model.ParsedTransaction) string {
	if h, ok := p.handlers[tx.Type]; ok {
		if msg := h(ctx, p, network, tx); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%s completed", tx.HumanReadableType)
}

// TokenInfo resolves token metadata through the LRU so repeated receipts for
// the same token hit the mirror once.
func (p *Pipeline) TokenInfo(ctx context.Context, tokenID string, network model.Network) (*mirror.TokenInfo, error) {
	key := network.String() + "/" + tokenID
	if info, ok := p.tokens.Get(key); ok {
		return info, nil
	}
	info, err := p.mirror.GetTokenInfo(ctx, tokenID, network)
	if err != nil {
		return nil, err
	}
	if info != nil {
		p.tokens.Put(key, info)
	}
	return info, nil
}

// merge builds the receipt transaction: mirror-sourced fields win, anything
// the mirror never returns (memo text entered by the user, decoder details)
// falls back to the pre-execution parse.
func merge(pre *model.ParsedTransaction, record *mirror.Transaction) *model.ParsedTransaction {
	out := &model.ParsedTransaction{
		Type:    record.Name,
		Memo:    pre.Memo,
		Details: map[string]any{},
	}
	if out.Type == "" {
		out.Type = pre.Type
	}
	// The mirror carries no display label. Keep the decoder's as long as
	// the kind did not change under it; Normalize fills the rest.
	if out.Type == pre.Type {
		out.HumanReadableType = pre.HumanReadableType
	}

	for k, v := range pre.Details {
		out.Details[k] = v
	}
	out.Details["transactionId"] = record.TransactionID
	out.Details["result"] = record.Result
	out.Details["consensusTimestamp"] = record.ConsensusTimestamp
	out.Details["chargedFee"] = record.ChargedTxFee
	if record.EntityID != "" {
		out.Details["entityId"] = record.EntityID
	}

	if memo := decodeMemo(record.MemoBase64); memo != "" {
		out.Memo = memo
	}

	if len(record.Transfers) > 0 {
		out.Transfers = make([]model.Transfer, 0, len(record.Transfers))
		for _, t := range record.Transfers {
			out.Transfers = append(out.Transfers, model.Transfer{
				AccountID: t.Account,
				Amount:    float64(t.Amount),
			})
		}
	} else {
		out.Transfers = pre.Transfers
	}

	if len(record.TokenTransfers) > 0 {
		out.TokenTransfers = make([]model.TokenTransfer, 0, len(record.TokenTransfers))
		for _, t := range record.TokenTransfers {
			out.TokenTransfers = append(out.TokenTransfers, model.TokenTransfer{
				TokenID:   t.TokenID,
				AccountID: t.Account,
				Amount:    float64(t.Amount),
			})
		}
	} else {
		out.TokenTransfers = pre.TokenTransfers
	}

	out.Normalize()
	return out
}

func decodeMemo(memoBase64 string) string {
	if memoBase64 == "" {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(memoBase64)
	if err != nil {
		return ""
	}
	return string(decoded)
}
