package activity

import (
	"context"
	"sync"
	"time"
)

var _ dayAggregator = &dayAggregatorMock{}

type dayAggregatorMock struct {
	AggregateDayFunc func(ctx context.Context, date time.Time) (int64, error)

	calls struct {
		AggregateDay []struct {
			Ctx  context.Context
			Date time.Time
		}
	}
	lockAggregateDay sync.RWMutex
}

func (mock *dayAggregatorMock) AggregateDay(ctx context.Context, date time.Time) (int64, error) {
	if mock.AggregateDayFunc == nil {
		panic("dayAggregatorMock.AggregateDayFunc: method is nil but dayAggregator.AggregateDay was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Date time.Time
	}{
		Ctx:  ctx,
		Date: date,
	}
	mock.lockAggregateDay.Lock()
	mock.calls.AggregateDay = append(mock.calls.AggregateDay, callInfo)
	mock.lockAggregateDay.Unlock()
	return mock.AggregateDayFunc(ctx, date)
}

func (mock *dayAggregatorMock) AggregateDayCalls() []struct {
	Ctx  context.Context
	Date time.Time
} {
	var calls []struct {
		Ctx  context.Context
		Date time.Time
	}
	mock.lockAggregateDay.RLock()
	calls = mock.calls.AggregateDay
	mock.lockAggregateDay.RUnlock()
	return calls
}
