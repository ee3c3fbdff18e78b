package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and histograms for the bridge core, partitioned by network where
// the operation is network-bound.

var (
	// Bridge channel
	BridgeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "channel",
		Name:      "requests_total",
		Help:      "Total correlated requests sent over the bridge",
	}, []string{"event", "status"})

	BridgeHandlerInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "channel",
		Name:      "handler_invocations_total",
		Help:      "Total handler invocations on registered bridge events",
	}, []string{"event", "status"})

	BridgeRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bridge",
		Subsystem: "channel",
		Name:      "request_duration_seconds",
		Help:      "Round-trip duration of correlated bridge requests",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"event"})

	// Schedule poller
	PollerTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "poller",
		Name:      "ticks_total",
		Help:      "Total schedule poll fetches performed",
	}, []string{"network"})

	PollerTicksSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "poller",
		Name:      "ticks_skipped_total",
		Help:      "Poll ticks skipped because the previous fetch was still in flight",
	}, []string{"network"})

	PollerStopsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "poller",
		Name:      "stops_total",
		Help:      "Poller stops by reason (executed, cancelled)",
	}, []string{"network", "reason"})

	// Approval state machine
	ApprovalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "approval",
		Name:      "decisions_total",
		Help:      "Approval decisions by outcome",
	}, []string{"path", "outcome"})

	ApprovalsPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "bridge",
		Subsystem: "approval",
		Name:      "pending",
		Help:      "Approvals currently open and awaiting a decision",
	})

	ApprovalDuplicatesBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "approval",
		Name:      "duplicates_blocked_total",
		Help:      "Approve attempts short-circuited by the idempotency guard",
	})

	// Enrichment pipeline
	EnrichmentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "enrich",
		Name:      "runs_total",
		Help:      "Enrichment runs by result (enriched, timeout, miss, error)",
	}, []string{"result"})

	EnrichmentLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bridge",
		Subsystem: "enrich",
		Name:      "duration_seconds",
		Help:      "Enrichment duration including the settle delay",
		Buckets:   []float64{1, 2, 3, 5, 8, 12, 17},
	})

	// Mirror client
	MirrorCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "mirror",
		Name:      "calls_total",
		Help:      "Mirror node REST calls by method and status",
	}, []string{"method", "status"})

	MirrorRateLimitWaits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "mirror",
		Name:      "rate_limit_waits_total",
		Help:      "Mirror calls delayed by the client rate limiter",
	}, []string{"network"})

	// Notifications
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "notify",
		Name:      "sent_total",
		Help:      "User notifications emitted by type",
	}, []string{"type"})
)
