package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/metrics"
	"github.com/hashgraph-online/desktop-bridge/internal/mirror"
)

const defaultInterval = 5 * time.Second

// UpdateFunc receives every successfully fetched schedule record, including
// the final one carrying the executed timestamp.
type UpdateFunc func(info *model.ScheduleInfo)

type Config struct {
	// Interval between poll fetches. No backoff: schedules resolve within
	// seconds to low minutes and a mirror read is cheap.
	Interval time.Duration
}

// Poller keeps a schedule record fresh while it is outstanding. One Start
// per watched schedule; the poller stops itself once the schedule executes.
type Poller struct {
	mirror   mirror.Querier
	interval time.Duration
	logger   *slog.Logger
}

func New(querier mirror.Querier, cfg Config, logger *slog.Logger) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		mirror:   querier,
		interval: interval,
		logger:   logger.With("component", "schedule_poller"),
	}
}

// Start fetches the schedule immediately, then on a fixed interval until the
// record reports execution, the context ends, or the returned stop function
// is called. Stop is idempotent and safe to call after self-stop.
func (p *Poller) Start(ctx context.Context, scheduleID string, network model.Network, onUpdate UpdateFunc) (stop func()) {
	pctx, cancel := context.WithCancel(ctx)

	var stopOnce sync.Once
	stopWith := func(reason string) {
		stopOnce.Do(func() {
			metrics.PollerStopsTotal.WithLabelValues(network.String(), reason).Inc()
			p.logger.Debug("poller stopped", "schedule_id", scheduleID, "reason", reason)
			cancel()
		})
	}

	var inFlight atomic.Bool
	fetch := func() {
		if !inFlight.CompareAndSwap(false, true) {
			metrics.PollerTicksSkipped.WithLabelValues(network.String()).Inc()
			return
		}
		defer inFlight.Store(false)

		metrics.PollerTicksTotal.WithLabelValues(network.String()).Inc()
		info, err := p.mirror.GetScheduleInfo(pctx, scheduleID, network)
		if err != nil {
			if pctx.Err() == nil {
				p.logger.Warn("schedule poll failed", "schedule_id", scheduleID, "error", err)
			}
			return
		}
		if pctx.Err() != nil {
			return
		}
		onUpdate(info)
		if info.Executed() {
			stopWith("executed")
		}
	}

	go func() {
		fetch()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-pctx.Done():
				return
			case <-ticker.C:
				go fetch()
			}
		}
	}()

	return func() { stopWith("cancelled") }
}
