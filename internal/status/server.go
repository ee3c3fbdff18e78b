package status

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hashgraph-online/desktop-bridge/internal/circuitbreaker"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/wallet"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BreakerStater reports the mirror circuit breaker state.
type BreakerStater interface {
	BreakerState() circuitbreaker.State
}

// ApprovalCounter reports how many approvals are open.
type ApprovalCounter interface {
	Pending() int
}

// Server exposes the read-only operational surface: liveness, wallet
// connection state and prometheus metrics.
type Server struct {
	walletStatus *wallet.Status
	breaker      BreakerStater
	approvals    ApprovalCounter
	network      model.Network
	transport    string
	logger       *slog.Logger
}

// ServerOption configures optional fields on the status server.
type ServerOption func(*Server)

// WithBreaker wires the mirror client's circuit breaker into /status.
func WithBreaker(b BreakerStater) ServerOption {
	return func(s *Server) { s.breaker = b }
}

// WithTransportName labels which bridge transport is active.
func WithTransportName(name string) ServerOption {
	return func(s *Server) { s.transport = name }
}

// WithApprovals adds the live approval count to /status.
func WithApprovals(c ApprovalCounter) ServerOption {
	return func(s *Server) { s.approvals = c }
}

func NewServer(walletStatus *wallet.Status, network model.Network, logger *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		walletStatus: walletStatus,
		network:      network,
		logger:       logger.With("component", "status"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler for the status surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	walletPart := map[string]any{"connected": false}
	if s.walletStatus != nil {
		if info, ok := s.walletStatus.Get(); ok {
			walletPart = map[string]any{
				"connected": true,
				"accountId": info.AccountID,
				"network":   info.Network,
			}
		}
	}

	body := map[string]any{
		"network": s.network.String(),
		"wallet":  walletPart,
	}
	if s.transport != "" {
		body["transport"] = s.transport
	}
	if s.breaker != nil {
		body["mirrorBreaker"] = s.breaker.BreakerState().String()
	}
	if s.approvals != nil {
		body["pendingApprovals"] = s.approvals.Pending()
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers already sent; nothing useful to do
		_ = err
	}
}
