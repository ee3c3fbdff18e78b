package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	mirrormocks "github.com/hashgraph-online/desktop-bridge/internal/mirror/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPoller_ImmediateFetchThenTicks(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)

	var fetches atomic.Int64
	querier.EXPECT().
		GetScheduleInfo(gomock.Any(), "0.0.999", model.NetworkTestnet).
		DoAndReturn(func(context.Context, string, model.Network) (*model.ScheduleInfo, error) {
			fetches.Add(1)
			return &model.ScheduleInfo{ScheduleID: "0.0.999"}, nil
		}).
		AnyTimes()

	p := New(querier, Config{Interval: 10 * time.Millisecond}, slog.Default())

	var updates atomic.Int64
	stop := p.Start(context.Background(), "0.0.999", model.NetworkTestnet, func(*model.ScheduleInfo) {
		updates.Add(1)
	})
	defer stop()

	require.Eventually(t, func() bool { return updates.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, fetches.Load(), int64(3))
}

func TestPoller_SelfStopsOnExecuted(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)

	ts := "1700000100.000000000"
	querier.EXPECT().
		GetScheduleInfo(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&model.ScheduleInfo{ScheduleID: "0.0.999", ExecutedTimestamp: &ts}, nil).
		AnyTimes()

	p := New(querier, Config{Interval: 5 * time.Millisecond}, slog.Default())

	var updates atomic.Int64
	var sawExecuted atomic.Bool
	stop := p.Start(context.Background(), "0.0.999", model.NetworkTestnet, func(info *model.ScheduleInfo) {
		updates.Add(1)
		if info.Executed() {
			sawExecuted.Store(true)
		}
	})
	defer stop()

	require.Eventually(t, func() bool { return sawExecuted.Load() }, time.Second, time.Millisecond)

	// the poller stopped itself: the update count plateaus
	settled := updates.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, updates.Load())
}

func TestPoller_StopHaltsUpdates(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)
	querier.EXPECT().
		GetScheduleInfo(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&model.ScheduleInfo{ScheduleID: "0.0.999"}, nil).
		AnyTimes()

	p := New(querier, Config{Interval: 5 * time.Millisecond}, slog.Default())

	var updates atomic.Int64
	stop := p.Start(context.Background(), "0.0.999", model.NetworkTestnet, func(*model.ScheduleInfo) {
		updates.Add(1)
	})

	require.Eventually(t, func() bool { return updates.Load() >= 1 }, time.Second, time.Millisecond)
	stop()
	stop() // idempotent

	time.Sleep(20 * time.Millisecond)
	settled := updates.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, updates.Load())
}

func TestPoller_SlowFetchDoesNotOverlap(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)

	var concurrent, maxConcurrent atomic.Int64
	querier.EXPECT().
		GetScheduleInfo(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, model.Network) (*model.ScheduleInfo, error) {
			n := concurrent.Add(1)
			for {
				m := maxConcurrent.Load()
				if n <= m || maxConcurrent.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(15 * time.Millisecond) // slower than the interval
			concurrent.Add(-1)
			return &model.ScheduleInfo{ScheduleID: "0.0.999"}, nil
		}).
		AnyTimes()

	p := New(querier, Config{Interval: 2 * time.Millisecond}, slog.Default())
	stop := p.Start(context.Background(), "0.0.999", model.NetworkTestnet, func(*model.ScheduleInfo) {})
	time.Sleep(80 * time.Millisecond)
	stop()

	assert.Equal(t, int64(1), maxConcurrent.Load())
}

func TestPoller_FetchErrorKeepsPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)

	var calls atomic.Int64
	querier.EXPECT().
		GetScheduleInfo(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, model.Network) (*model.ScheduleInfo, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("mirror http status 502")
			}
			return &model.ScheduleInfo{ScheduleID: "0.0.999"}, nil
		}).
		AnyTimes()

	p := New(querier, Config{Interval: 5 * time.Millisecond}, slog.Default())

	var updates atomic.Int64
	stop := p.Start(context.Background(), "0.0.999", model.NetworkTestnet, func(*model.ScheduleInfo) {
		updates.Add(1)
	})
	defer stop()

	require.Eventually(t, func() bool { return updates.Load() >= 1 }, time.Second, time.Millisecond)
}
