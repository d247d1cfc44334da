package approval

import (
	"context"
	"sync"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyDecisionFunc func(ctx context.Context, d Decision)

	calls struct {
		NotifyDecision []struct {
			Ctx context.Context
			D   Decision
		}
	}
	lockNotifyDecision sync.RWMutex
}

func (mock *notifierMock) NotifyDecision(ctx context.Context, d Decision) {
	if mock.NotifyDecisionFunc == nil {
		panic("notifierMock.NotifyDecisionFunc: method is nil but notifier.NotifyDecision was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   Decision
	}{
		Ctx: ctx,
		D:   d,
	}
	mock.lockNotifyDecision.Lock()
	mock.calls.NotifyDecision = append(mock.calls.NotifyDecision, callInfo)
	mock.lockNotifyDecision.Unlock()
	mock.NotifyDecisionFunc(ctx, d)
}

func (mock *notifierMock) NotifyDecisionCalls() []struct {
	Ctx context.Context
	D   Decision
} {
	var calls []struct {
		Ctx context.Context
		D   Decision
	}
	mock.lockNotifyDecision.RLock()
	calls = mock.calls.NotifyDecision
	mock.lockNotifyDecision.RUnlock()
	return calls
}
