package activity

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ statsRepo = &statsRepoMock{}

type statsRepoMock struct {
	AggregateDayFunc func(ctx context.Context, start time.Time, end time.Time) (int64, error)
	ListStatsFunc    func(ctx context.Context, cityID *int64, from time.Time, to time.Time) ([]domain.DailyCityActivityStat, error)

	calls struct {
		AggregateDay []struct {
			Ctx   context.Context
			Start time.Time
			End   time.Time
		}
		ListStats []struct {
			Ctx    context.Context
			CityID *int64
			From   time.Time
			To     time.Time
		}
	}
	lockAggregateDay sync.RWMutex
	lockListStats    sync.RWMutex
}

func (mock *statsRepoMock) AggregateDay(ctx context.Context, start time.Time, end time.Time) (int64, error) {
	if mock.AggregateDayFunc == nil {
		panic("statsRepoMock.AggregateDayFunc: method is nil but statsRepo.AggregateDay was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Start time.Time
		End   time.Time
	}{
		Ctx:   ctx,
		Start: start,
		End:   end,
	}
	mock.lockAggregateDay.Lock()
	mock.calls.AggregateDay = append(mock.calls.AggregateDay, callInfo)
	mock.lockAggregateDay.Unlock()
	return mock.AggregateDayFunc(ctx, start, end)
}

func (mock *statsRepoMock) AggregateDayCalls() []struct {
	Ctx   context.Context
	Start time.Time
	End   time.Time
} {
	var calls []struct {
		Ctx   context.Context
		Start time.Time
		End   time.Time
	}
	mock.lockAggregateDay.RLock()
	calls = mock.calls.AggregateDay
	mock.lockAggregateDay.RUnlock()
	return calls
}

func (mock *statsRepoMock) ListStats(ctx context.Context, cityID *int64, from time.Time, to time.Time) ([]domain.DailyCityActivityStat, error) {
	if mock.ListStatsFunc == nil {
		panic("statsRepoMock.ListStatsFunc: method is nil but statsRepo.ListStats was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CityID *int64
		From   time.Time
		To     time.Time
	}{
		Ctx:    ctx,
		CityID: cityID,
		From:   from,
		To:     to,
	}
	mock.lockListStats.Lock()
	mock.calls.ListStats = append(mock.calls.ListStats, callInfo)
	mock.lockListStats.Unlock()
	return mock.ListStatsFunc(ctx, cityID, from, to)
}

func (mock *statsRepoMock) ListStatsCalls() []struct {
	Ctx    context.Context
	CityID *int64
	From   time.Time
	To     time.Time
} {
	var calls []struct {
		Ctx    context.Context
		CityID *int64
		From   time.Time
		To     time.Time
	}
	mock.lockListStats.RLock()
	calls = mock.calls.ListStats
	mock.lockListStats.RUnlock()
	return calls
}
