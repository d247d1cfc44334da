package catalog

import (
	"context"
	"sync"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	RecordEventFunc func(ctx context.Context, e domain.MapEvent) error

	calls struct {
		RecordEvent []struct {
			Ctx context.Context
			E   domain.MapEvent
		}
	}
	lockRecordEvent sync.RWMutex
}

func (mock *eventRepoMock) RecordEvent(ctx context.Context, e domain.MapEvent) error {
	if mock.RecordEventFunc == nil {
		panic("eventRepoMock.RecordEventFunc: method is nil but eventRepo.RecordEvent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.MapEvent
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockRecordEvent.Lock()
	mock.calls.RecordEvent = append(mock.calls.RecordEvent, callInfo)
	mock.lockRecordEvent.Unlock()
	return mock.RecordEventFunc(ctx, e)
}

func (mock *eventRepoMock) RecordEventCalls() []struct {
	Ctx context.Context
	E   domain.MapEvent
} {
	var calls []struct {
		Ctx context.Context
		E   domain.MapEvent
	}
	mock.lockRecordEvent.RLock()
	calls = mock.calls.RecordEvent
	mock.lockRecordEvent.RUnlock()
	return calls
}
