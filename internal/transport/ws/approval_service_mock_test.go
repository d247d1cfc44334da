package ws

import (
	"context"
	"sync"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/service/approval"
	"github.com/shopspring/decimal"
)

var _ approvalService = &approvalServiceMock{}

type approvalServiceMock struct {
	ApproveFunc            func(ctx context.Context, id int64) (*domain.PendingRequest, error)
	ApprovePriceUpdateFunc func(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error)
	DenyFunc               func(ctx context.Context, id int64) (*domain.PendingRequest, error)
	DenyPriceUpdateFunc    func(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error)
	ListPendingFunc        func(ctx context.Context) (*approval.Pending, error)
	SubmitFunc             func(ctx context.Context, in approval.SubmitInput) (*domain.PendingRequest, error)
	SubmitPriceUpdateFunc  func(ctx context.Context, mapID int64, newPrice decimal.Decimal) (*domain.PendingPriceUpdate, error)

	calls struct {
		Approve []struct {
			Ctx context.Context
			ID  int64
		}
		ApprovePriceUpdate []struct {
			Ctx context.Context
			ID  int64
		}
		Deny []struct {
			Ctx context.Context
			ID  int64
		}
		DenyPriceUpdate []struct {
			Ctx context.Context
			ID  int64
		}
		ListPending []struct {
			Ctx context.Context
		}
		Submit []struct {
			Ctx context.Context
			In  approval.SubmitInput
		}
		SubmitPriceUpdate []struct {
			Ctx      context.Context
			MapID    int64
			NewPrice decimal.Decimal
		}
	}
	lockApprove            sync.RWMutex
	lockApprovePriceUpdate sync.RWMutex
	lockDeny               sync.RWMutex
	lockDenyPriceUpdate    sync.RWMutex
	lockListPending        sync.RWMutex
	lockSubmit             sync.RWMutex
	lockSubmitPriceUpdate  sync.RWMutex
}

func (mock *approvalServiceMock) Approve(ctx context.Context, id int64) (*domain.PendingRequest, error) {
	if mock.ApproveFunc == nil {
		panic("approvalServiceMock.ApproveFunc: method is nil but approvalService.Approve was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockApprove.Lock()
	mock.calls.Approve = append(mock.calls.Approve, callInfo)
	mock.lockApprove.Unlock()
	return mock.ApproveFunc(ctx, id)
}

func (mock *approvalServiceMock) ApproveCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
	}
	mock.lockApprove.RLock()
	calls = mock.calls.Approve
	mock.lockApprove.RUnlock()
	return calls
}

func (mock *approvalServiceMock) ApprovePriceUpdate(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error) {
	if mock.ApprovePriceUpdateFunc == nil {
		panic("approvalServiceMock.ApprovePriceUpdateFunc: method is nil but approvalService.ApprovePriceUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockApprovePriceUpdate.Lock()
	mock.calls.ApprovePriceUpdate = append(mock.calls.ApprovePriceUpdate, callInfo)
	mock.lockApprovePriceUpdate.Unlock()
	return mock.ApprovePriceUpdateFunc(ctx, id)
}

func (mock *approvalServiceMock) ApprovePriceUpdateCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
	}
	mock.lockApprovePriceUpdate.RLock()
	calls = mock.calls.ApprovePriceUpdate
	mock.lockApprovePriceUpdate.RUnlock()
	return calls
}

func (mock *approvalServiceMock) Deny(ctx context.Context, id int64) (*domain.PendingRequest, error) {
	if mock.DenyFunc == nil {
		panic("approvalServiceMock.DenyFunc: method is nil but approvalService.Deny was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDeny.Lock()
	mock.calls.Deny = append(mock.calls.Deny, callInfo)
	mock.lockDeny.Unlock()
	return mock.DenyFunc(ctx, id)
}

func (mock *approvalServiceMock) DenyCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
	}
	mock.lockDeny.RLock()
	calls = mock.calls.Deny
	mock.lockDeny.RUnlock()
	return calls
}

func (mock *approvalServiceMock) DenyPriceUpdate(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error) {
	if mock.DenyPriceUpdateFunc == nil {
		panic("approvalServiceMock.DenyPriceUpdateFunc: method is nil but approvalService.DenyPriceUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDenyPriceUpdate.Lock()
	mock.calls.DenyPriceUpdate = append(mock.calls.DenyPriceUpdate, callInfo)
	mock.lockDenyPriceUpdate.Unlock()
	return mock.DenyPriceUpdateFunc(ctx, id)
}

func (mock *approvalServiceMock) DenyPriceUpdateCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
	}
	mock.lockDenyPriceUpdate.RLock()
	calls = mock.calls.DenyPriceUpdate
	mock.lockDenyPriceUpdate.RUnlock()
	return calls
}

func (mock *approvalServiceMock) ListPending(ctx context.Context) (*approval.Pending, error) {
	if mock.ListPendingFunc == nil {
		panic("approvalServiceMock.ListPendingFunc: method is nil but approvalService.ListPending was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListPending.Lock()
	mock.calls.ListPending = append(mock.calls.ListPending, callInfo)
	mock.lockListPending.Unlock()
	return mock.ListPendingFunc(ctx)
}

func (mock *approvalServiceMock) ListPendingCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockListPending.RLock()
	calls = mock.calls.ListPending
	mock.lockListPending.RUnlock()
	return calls
}

func (mock *approvalServiceMock) Submit(ctx context.Context, in approval.SubmitInput) (*domain.PendingRequest, error) {
	if mock.SubmitFunc == nil {
		panic("approvalServiceMock.SubmitFunc: method is nil but approvalService.Submit was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  approval.SubmitInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, in)
}

func (mock *approvalServiceMock) SubmitCalls() []struct {
	Ctx context.Context
	In  approval.SubmitInput
} {
	var calls []struct {
		Ctx context.Context
		In  approval.SubmitInput
	}
	mock.lockSubmit.RLock()
	calls = mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}

func (mock *approvalServiceMock) SubmitPriceUpdate(ctx context.Context, mapID int64, newPrice decimal.Decimal) (*domain.PendingPriceUpdate, error) {
	if mock.SubmitPriceUpdateFunc == nil {
		panic("approvalServiceMock.SubmitPriceUpdateFunc: method is nil but approvalService.SubmitPriceUpdate was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		MapID    int64
		NewPrice decimal.Decimal
	}{
		Ctx:      ctx,
		MapID:    mapID,
		NewPrice: newPrice,
	}
	mock.lockSubmitPriceUpdate.Lock()
	mock.calls.SubmitPriceUpdate = append(mock.calls.SubmitPriceUpdate, callInfo)
	mock.lockSubmitPriceUpdate.Unlock()
	return mock.SubmitPriceUpdateFunc(ctx, mapID, newPrice)
}

func (mock *approvalServiceMock) SubmitPriceUpdateCalls() []struct {
	Ctx      context.Context
	MapID    int64
	NewPrice decimal.Decimal
} {
	var calls []struct {
		Ctx      context.Context
		MapID    int64
		NewPrice decimal.Decimal
	}
	mock.lockSubmitPriceUpdate.RLock()
	calls = mock.calls.SubmitPriceUpdate
	mock.lockSubmitPriceUpdate.RUnlock()
	return calls
}
