package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/circuitbreaker"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/metrics"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the mirror has no record for an id.
var ErrNotFound = errors.New("mirror: not found")

// Querier is the read-only mirror surface the bridge core consumes.
// *Client satisfies it; tests substitute fakes.
type Querier interface {
	GetScheduleInfo(ctx context.Context, scheduleID string, network model.Network) (*model.ScheduleInfo, error)
	GetScheduledTransactionStatus(ctx context.Context, scheduleID string, network model.Network) (*ScheduleStatus, error)
	GetTransaction(ctx context.Context, transactionID string, network model.Network) (*Transaction, error)
	GetTransactionsByTimestamp(ctx context.Context, timestamp string, network model.Network) ([]Transaction, error)
	GetTokenInfo(ctx context.Context, tokenID string, network model.Network) (*TokenInfo, error)
}

// Client queries Hedera mirror node REST endpoints. Calls are rate limited
// per client and guarded by a circuit breaker so a flapping mirror cannot
// hold approval flows hostage.
type Client struct {
	httpClient *http.Client
	baseURLs   map[model.Network]string
	limiter    *rate.Limiter
	breaker    *circuitbreaker.Breaker
	logger     *slog.Logger
}

type Config struct {
	MainnetBaseURL string
	TestnetBaseURL string
	Timeout        time.Duration // per-request HTTP timeout
	RPS            float64       // rate limit, requests per second
	Burst          int
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURLs: map[model.Network]string{
			model.NetworkMainnet: cfg.MainnetBaseURL,
			model.NetworkTestnet: cfg.TestnetBaseURL,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		breaker: circuitbreaker.New(circuitbreaker.Config{}),
		logger:  logger.With("component", "mirror_client"),
	}
}

// GetScheduleInfo fetches the schedule entity for a not-yet-executed
// scheduled transaction.
func (c *Client) GetScheduleInfo(ctx context.Context, scheduleID string, network model.Network) (*model.ScheduleInfo, error) {
	var entity scheduleEntity
	err := c.get(ctx, network, "get_schedule_info", "/api/v1/schedules/"+url.PathEscape(scheduleID), &entity)
	if err != nil {
		return nil, err
	}
	return &model.ScheduleInfo{
		ScheduleID:        entity.ScheduleID,
		TransactionBody:   entity.TransactionBody,
		Memo:              entity.Memo,
		ExpirationTime:    entity.ExpirationTime,
		ExecutedTimestamp: entity.ExecutedTimestamp,
	}, nil
}

// GetScheduledTransactionStatus reports whether a schedule has executed or
// been deleted.
func (c *Client) GetScheduledTransactionStatus(ctx context.Context, scheduleID string, network model.Network) (*ScheduleStatus, error) {
	var entity scheduleEntity
	err := c.get(ctx, network, "get_schedule_status", "/api/v1/schedules/"+url.PathEscape(scheduleID), &entity)
	if err != nil {
		return nil, err
	}
	return &ScheduleStatus{
		Executed:          entity.ExecutedTimestamp != nil && *entity.ExecutedTimestamp != "",
		Deleted:           entity.Deleted,
		ExecutedTimestamp: entity.ExecutedTimestamp,
	}, nil
}

// GetTransaction looks up a finalized transaction record. The id must be in
// mirror format (see FormatTransactionID). Returns (nil, nil) when the
// mirror has not materialized the record yet.
func (c *Client) GetTransaction(ctx context.Context, transactionID string, network model.Network) (*Transaction, error) {
	var page transactionsPage
	err := c.get(ctx, network, "get_transaction", "/api/v1/transactions/"+url.PathEscape(transactionID), &page)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(page.Transactions) == 0 {
		return nil, nil
	}
	return &page.Transactions[0], nil
}

// GetTransactionsByTimestamp lists records at an exact consensus timestamp.
func (c *Client) GetTransactionsByTimestamp(ctx context.Context, timestamp string, network model.Network) ([]Transaction, error) {
	var page transactionsPage
	err := c.get(ctx, network, "get_transactions_by_timestamp", "/api/v1/transactions?timestamp="+url.QueryEscape(timestamp), &page)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return page.Transactions, nil
}

// GetTokenInfo fetches token metadata; (nil, nil) when the token id is
// unknown to the mirror.
func (c *Client) GetTokenInfo(ctx context.Context, tokenID string, network model.Network) (*TokenInfo, error) {
	var info TokenInfo
	err := c.get(ctx, network, "get_token_info", "/api/v1/tokens/"+url.PathEscape(tokenID), &info)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// BreakerState exposes the circuit breaker state for the status surface.
func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

func (c *Client) get(ctx context.Context, network model.Network, method, path string, out any) error {
	base, ok := c.baseURLs[network]
	if !ok || base == "" {
		return fmt.Errorf("no mirror base url for network %s", network)
	}

	if err := c.breaker.Allow(); err != nil {
		metrics.MirrorCallsTotal.WithLabelValues(method, "breaker_open").Inc()
		return err
	}

	r := c.limiter.Reserve()
	if !r.OK() {
		return fmt.Errorf("rate: cannot reserve token")
	}
	if delay := r.Delay(); delay > 0 {
		metrics.MirrorRateLimitWaits.WithLabelValues(network.String()).Inc()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			r.Cancel()
			return ctx.Err()
		}
	}

	err := c.doGet(ctx, base+path, out)
	switch {
	case err == nil:
		c.breaker.RecordSuccess()
		metrics.MirrorCallsTotal.WithLabelValues(method, "ok").Inc()
	case errors.Is(err, ErrNotFound):
		// A 404 is an answer, not a mirror failure.
		c.breaker.RecordSuccess()
		metrics.MirrorCallsTotal.WithLabelValues(method, "not_found").Inc()
	case errors.Is(err, context.Canceled):
		metrics.MirrorCallsTotal.WithLabelValues(method, "cancelled").Inc()
	default:
		c.breaker.RecordFailure()
		metrics.MirrorCallsTotal.WithLabelValues(method, "error").Inc()
	}
	return err
}

func (c *Client) doGet(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mirror http status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
