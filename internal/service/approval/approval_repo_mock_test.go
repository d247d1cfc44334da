package approval

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ approvalRepo = &approvalRepoMock{}

type approvalRepoMock struct {
	CreatePriceUpdateFunc        func(ctx context.Context, u *domain.PendingPriceUpdate) (*domain.PendingPriceUpdate, error)
	CreateRequestFunc            func(ctx context.Context, p *domain.PendingRequest) (*domain.PendingRequest, error)
	GetPriceUpdateForUpdateFunc  func(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error)
	GetRequestForUpdateFunc      func(ctx context.Context, id int64) (*domain.PendingRequest, error)
	ListOpenPriceUpdatesFunc     func(ctx context.Context) ([]domain.PendingPriceUpdate, error)
	ListOpenRequestsFunc         func(ctx context.Context) ([]domain.PendingRequest, error)
	MarkPriceUpdateProcessedFunc func(ctx context.Context, id int64, status domain.ApprovalStatus, by int64, at time.Time) error
	MarkRequestProcessedFunc     func(ctx context.Context, id int64, status domain.ApprovalStatus, by int64, at time.Time) error

	calls struct {
		CreatePriceUpdate []struct {
			Ctx context.Context
			U   *domain.PendingPriceUpdate
		}
		CreateRequest []struct {
			Ctx context.Context
			P   *domain.PendingRequest
		}
		GetPriceUpdateForUpdate []struct {
			Ctx context.Context
			ID  int64
		}
		GetRequestForUpdate []struct {
			Ctx context.Context
			ID  int64
		}
		ListOpenPriceUpdates []struct {
			Ctx context.Context
		}
		ListOpenRequests []struct {
			Ctx context.Context
		}
		MarkPriceUpdateProcessed []struct {
			Ctx    context.Context
			ID     int64
			Status domain.ApprovalStatus
			By     int64
			At     time.Time
		}
		MarkRequestProcessed []struct {
			Ctx    context.Context
			ID     int64
			Status domain.ApprovalStatus
			By     int64
			At     time.Time
		}
	}
	lockCreatePriceUpdate        sync.RWMutex
	lockCreateRequest            sync.RWMutex
	lockGetPriceUpdateForUpdate  sync.RWMutex
	lockGetRequestForUpdate      sync.RWMutex
	lockListOpenPriceUpdates     sync.RWMutex
	lockListOpenRequests         sync.RWMutex
	lockMarkPriceUpdateProcessed sync.RWMutex
	lockMarkRequestProcessed     sync.RWMutex
}

func (mock *approvalRepoMock) CreatePriceUpdate(ctx context.Context, u *domain.PendingPriceUpdate) (*domain.PendingPriceUpdate, error) {
	if mock.CreatePriceUpdateFunc == nil {
		panic("approvalRepoMock.CreatePriceUpdateFunc: method is nil but approvalRepo.CreatePriceUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.PendingPriceUpdate
	}{
		Ctx: ctx,
		U:   u,
	}
	mock.lockCreatePriceUpdate.Lock()
	mock.calls.CreatePriceUpdate = append(mock.calls.CreatePriceUpdate, callInfo)
	mock.lockCreatePriceUpdate.Unlock()
	return mock.CreatePriceUpdateFunc(ctx, u)
}

func (mock *approvalRepoMock) CreatePriceUpdateCalls() []struct {
	Ctx context.Context
	U   *domain.PendingPriceUpdate
} {
	var calls []struct {
		Ctx context.Context
		U   *domain.PendingPriceUpdate
	}
	mock.lockCreatePriceUpdate.RLock()
	calls = mock.calls.CreatePriceUpdate
	mock.lockCreatePriceUpdate.RUnlock()
	return calls
}

func (mock *approvalRepoMock) CreateRequest(ctx context.Context, p *domain.PendingRequest) (*domain.PendingRequest, error) {
	if mock.CreateRequestFunc == nil {
		panic("approvalRepoMock.CreateRequestFunc: method is nil but approvalRepo.CreateRequest was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.PendingRequest
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockCreateRequest.Lock()
	mock.calls.CreateRequest = append(mock.calls.CreateRequest, callInfo)
	mock.lockCreateRequest.Unlock()
	return mock.CreateRequestFunc(ctx, p)
}

func (mock *approvalRepoMock) CreateRequestCalls() []struct {
	Ctx context.Context
	P   *domain.PendingRequest
} {
	var calls []struct {
		Ctx context.Context
		P   *domain.PendingRequest
	}
	mock.lockCreateRequest.RLock()
	calls = mock.calls.CreateRequest
	mock.lockCreateRequest.RUnlock()
	return calls
}

func (mock *approvalRepoMock) GetPriceUpdateForUpdate(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error) {
	if mock.GetPriceUpdateForUpdateFunc == nil {
		panic("approvalRepoMock.GetPriceUpdateForUpdateFunc: method is nil but approvalRepo.GetPriceUpdateForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetPriceUpdateForUpdate.Lock()
	mock.calls.GetPriceUpdateForUpdate = append(mock.calls.GetPriceUpdateForUpdate, callInfo)
	mock.lockGetPriceUpdateForUpdate.Unlock()
	return mock.GetPriceUpdateForUpdateFunc(ctx, id)
}

func (mock *approvalRepoMock) GetPriceUpdateForUpdateCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
	}
	mock.lockGetPriceUpdateForUpdate.RLock()
	calls = mock.calls.GetPriceUpdateForUpdate
	mock.lockGetPriceUpdateForUpdate.RUnlock()
	return calls
}

func (mock *approvalRepoMock) GetRequestForUpdate(ctx context.Context, id int64) (*domain.PendingRequest, error) {
	if mock.GetRequestForUpdateFunc == nil {
		panic("approvalRepoMock.GetRequestForUpdateFunc: method is nil but approvalRepo.GetRequestForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetRequestForUpdate.Lock()
	mock.calls.GetRequestForUpdate = append(mock.calls.GetRequestForUpdate, callInfo)
	mock.lockGetRequestForUpdate.Unlock()
	return mock.GetRequestForUpdateFunc(ctx, id)
}

func (mock *approvalRepoMock) GetRequestForUpdateCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
	}
	mock.lockGetRequestForUpdate.RLock()
	calls = mock.calls.GetRequestForUpdate
	mock.lockGetRequestForUpdate.RUnlock()
	return calls
}

func (mock *approvalRepoMock) ListOpenPriceUpdates(ctx context.Context) ([]domain.PendingPriceUpdate, error) {
	if mock.ListOpenPriceUpdatesFunc == nil {
		panic("approvalRepoMock.ListOpenPriceUpdatesFunc: method is nil but approvalRepo.ListOpenPriceUpdates was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListOpenPriceUpdates.Lock()
	mock.calls.ListOpenPriceUpdates = append(mock.calls.ListOpenPriceUpdates, callInfo)
	mock.lockListOpenPriceUpdates.Unlock()
	return mock.ListOpenPriceUpdatesFunc(ctx)
}

func (mock *approvalRepoMock) ListOpenPriceUpdatesCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockListOpenPriceUpdates.RLock()
	calls = mock.calls.ListOpenPriceUpdates
	mock.lockListOpenPriceUpdates.RUnlock()
	return calls
}

func (mock *approvalRepoMock) ListOpenRequests(ctx context.Context) ([]domain.PendingRequest, error) {
	if mock.ListOpenRequestsFunc == nil {
		panic("approvalRepoMock.ListOpenRequestsFunc: method is nil but approvalRepo.ListOpenRequests was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListOpenRequests.Lock()
	mock.calls.ListOpenRequests = append(mock.calls.ListOpenRequests, callInfo)
	mock.lockListOpenRequests.Unlock()
	return mock.ListOpenRequestsFunc(ctx)
}

func (mock *approvalRepoMock) ListOpenRequestsCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockListOpenRequests.RLock()
	calls = mock.calls.ListOpenRequests
	mock.lockListOpenRequests.RUnlock()
	return calls
}

func (mock *approvalRepoMock) MarkPriceUpdateProcessed(ctx context.Context, id int64, status domain.ApprovalStatus, by int64, at time.Time) error {
	if mock.MarkPriceUpdateProcessedFunc == nil {
		panic("approvalRepoMock.MarkPriceUpdateProcessedFunc: method is nil but approvalRepo.MarkPriceUpdateProcessed was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     int64
		Status domain.ApprovalStatus
		By     int64
		At     time.Time
	}{
		Ctx:    ctx,
		ID:     id,
		Status: status,
		By:     by,
		At:     at,
	}
	mock.lockMarkPriceUpdateProcessed.Lock()
	mock.calls.MarkPriceUpdateProcessed = append(mock.calls.MarkPriceUpdateProcessed, callInfo)
	mock.lockMarkPriceUpdateProcessed.Unlock()
	return mock.MarkPriceUpdateProcessedFunc(ctx, id, status, by, at)
}

func (mock *approvalRepoMock) MarkPriceUpdateProcessedCalls() []struct {
	Ctx    context.Context
	ID     int64
	Status domain.ApprovalStatus
	By     int64
	At     time.Time
} {
	var calls []struct {
		Ctx    context.Context
		ID     int64
		Status domain.ApprovalStatus
		By     int64
		At     time.Time
	}
	mock.lockMarkPriceUpdateProcessed.RLock()
	calls = mock.calls.MarkPriceUpdateProcessed
	mock.lockMarkPriceUpdateProcessed.RUnlock()
	return calls
}

func (mock *approvalRepoMock) MarkRequestProcessed(ctx context.Context, id int64, status domain.ApprovalStatus, by int64, at time.Time) error {
	if mock.MarkRequestProcessedFunc == nil {
		panic("approvalRepoMock.MarkRequestProcessedFunc: method is nil but approvalRepo.MarkRequestProcessed was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     int64
		Status domain.ApprovalStatus
		By     int64
		At     time.Time
	}{
		Ctx:    ctx,
		ID:     id,
		Status: status,
		By:     by,
		At:     at,
	}
	mock.lockMarkRequestProcessed.Lock()
	mock.calls.MarkRequestProcessed = append(mock.calls.MarkRequestProcessed, callInfo)
	mock.lockMarkRequestProcessed.Unlock()
	return mock.MarkRequestProcessedFunc(ctx, id, status, by, at)
}

func (mock *approvalRepoMock) MarkRequestProcessedCalls() []struct {
	Ctx    context.Context
	ID     int64
	Status domain.ApprovalStatus
	By     int64
	At     time.Time
} {
	var calls []struct {
		Ctx    context.Context
		ID     int64
		Status domain.ApprovalStatus
		By     int64
		At     time.Time
	}
	mock.lockMarkRequestProcessed.RLock()
	calls = mock.calls.MarkRequestProcessed
	mock.lockMarkRequestProcessed.RUnlock()
	return calls
}
