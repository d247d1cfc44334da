package approval

import (
	"sync"
)

var _ cacheInvalidator = &cacheInvalidatorMock{}

type cacheInvalidatorMock struct {
	InvalidateFunc func()

	calls struct {
		Invalidate []struct{}
	}
	lockInvalidate sync.RWMutex
}

func (mock *cacheInvalidatorMock) Invalidate() {
	if mock.InvalidateFunc == nil {
		panic("cacheInvalidatorMock.InvalidateFunc: method is nil but cacheInvalidator.Invalidate was just called")
	}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, struct{}{})
	mock.lockInvalidate.Unlock()
	mock.InvalidateFunc()
}

func (mock *cacheInvalidatorMock) InvalidateCalls() []struct{} {
	var calls []struct{}
	mock.lockInvalidate.RLock()
	calls = mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
