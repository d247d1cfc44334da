package purchase

import (
	"context"
	"sync"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc           func(ctx context.Context, id int64) (*domain.User, error)
	GetPaymentDetailsFunc func(ctx context.Context, userID int64) (*domain.PaymentDetails, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		GetPaymentDetails []struct {
			Ctx    context.Context
			UserID int64
		}
	}
	lockGetByID           sync.RWMutex
	lockGetPaymentDetails sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) GetPaymentDetails(ctx context.Context, userID int64) (*domain.PaymentDetails, error) {
	if mock.GetPaymentDetailsFunc == nil {
		panic("userRepoMock.GetPaymentDetailsFunc: method is nil but userRepo.GetPaymentDetails was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID int64
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockGetPaymentDetails.Lock()
	mock.calls.GetPaymentDetails = append(mock.calls.GetPaymentDetails, callInfo)
	mock.lockGetPaymentDetails.Unlock()
	return mock.GetPaymentDetailsFunc(ctx, userID)
}

func (mock *userRepoMock) GetPaymentDetailsCalls() []struct {
	Ctx    context.Context
	UserID int64
} {
	var calls []struct {
		Ctx    context.Context
		UserID int64
	}
	mock.lockGetPaymentDetails.RLock()
	calls = mock.calls.GetPaymentDetails
	mock.lockGetPaymentDetails.RUnlock()
	return calls
}
