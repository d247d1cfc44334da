package purchase

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ purchaseRepo = &purchaseRepoMock{}

type purchaseRepoMock struct {
	CreatePurchaseFunc                 func(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error)
	CreateSnapshotFunc                 func(ctx context.Context, s *domain.PurchasedMapSnapshot) (*domain.PurchasedMapSnapshot, error)
	CreateSubscriptionFunc             func(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	ExtendSubscriptionFunc             func(ctx context.Context, id int64, expiresAt time.Time) (*domain.Subscription, error)
	GetByRequestIDFunc                 func(ctx context.Context, requestID string) (*domain.Purchase, error)
	GetLatestSubscriptionForUpdateFunc func(ctx context.Context, userID int64, cityID int64) (*domain.Subscription, error)
	ListSnapshotsFunc                  func(ctx context.Context, userID int64, mapID int64) ([]domain.PurchasedMapSnapshot, error)
	LockBuyerFunc                      func(ctx context.Context, userID int64) error

	calls struct {
		CreatePurchase []struct {
			Ctx context.Context
			P   *domain.Purchase
		}
		CreateSnapshot []struct {
			Ctx context.Context
			S   *domain.PurchasedMapSnapshot
		}
		CreateSubscription []struct {
			Ctx context.Context
			S   *domain.Subscription
		}
		ExtendSubscription []struct {
			Ctx       context.Context
			ID        int64
			ExpiresAt time.Time
		}
		GetByRequestID []struct {
			Ctx       context.Context
			RequestID string
		}
		GetLatestSubscriptionForUpdate []struct {
			Ctx    context.Context
			UserID int64
			CityID int64
		}
		ListSnapshots []struct {
			Ctx    context.Context
			UserID int64
			MapID  int64
		}
		LockBuyer []struct {
			Ctx    context.Context
			UserID int64
		}
	}
	lockCreatePurchase                 sync.RWMutex
	lockCreateSnapshot                 sync.RWMutex
	lockCreateSubscription             sync.RWMutex
	lockExtendSubscription             sync.RWMutex
	lockGetByRequestID                 sync.RWMutex
	lockGetLatestSubscriptionForUpdate sync.RWMutex
	lockListSnapshots                  sync.RWMutex
	lockLockBuyer                      sync.RWMutex
}

func (mock *purchaseRepoMock) CreatePurchase(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	if mock.CreatePurchaseFunc == nil {
		panic("purchaseRepoMock.CreatePurchaseFunc: method is nil but purchaseRepo.CreatePurchase was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.Purchase
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockCreatePurchase.Lock()
	mock.calls.CreatePurchase = append(mock.calls.CreatePurchase, callInfo)
	mock.lockCreatePurchase.Unlock()
	return mock.CreatePurchaseFunc(ctx, p)
}

func (mock *purchaseRepoMock) CreatePurchaseCalls() []struct {
	Ctx context.Context
	P   *domain.Purchase
} {
	var calls []struct {
		Ctx context.Context
		P   *domain.Purchase
	}
	mock.lockCreatePurchase.RLock()
	calls = mock.calls.CreatePurchase
	mock.lockCreatePurchase.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) CreateSnapshot(ctx context.Context, s *domain.PurchasedMapSnapshot) (*domain.PurchasedMapSnapshot, error) {
	if mock.CreateSnapshotFunc == nil {
		panic("purchaseRepoMock.CreateSnapshotFunc: method is nil but purchaseRepo.CreateSnapshot was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.PurchasedMapSnapshot
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockCreateSnapshot.Lock()
	mock.calls.CreateSnapshot = append(mock.calls.CreateSnapshot, callInfo)
	mock.lockCreateSnapshot.Unlock()
	return mock.CreateSnapshotFunc(ctx, s)
}

func (mock *purchaseRepoMock) CreateSnapshotCalls() []struct {
	Ctx context.Context
	S   *domain.PurchasedMapSnapshot
} {
	var calls []struct {
		Ctx context.Context
		S   *domain.PurchasedMapSnapshot
	}
	mock.lockCreateSnapshot.RLock()
	calls = mock.calls.CreateSnapshot
	mock.lockCreateSnapshot.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) CreateSubscription(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	if mock.CreateSubscriptionFunc == nil {
		panic("purchaseRepoMock.CreateSubscriptionFunc: method is nil but purchaseRepo.CreateSubscription was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.Subscription
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockCreateSubscription.Lock()
	mock.calls.CreateSubscription = append(mock.calls.CreateSubscription, callInfo)
	mock.lockCreateSubscription.Unlock()
	return mock.CreateSubscriptionFunc(ctx, s)
}

func (mock *purchaseRepoMock) CreateSubscriptionCalls() []struct {
	Ctx context.Context
	S   *domain.Subscription
} {
	var calls []struct {
		Ctx context.Context
		S   *domain.Subscription
	}
	mock.lockCreateSubscription.RLock()
	calls = mock.calls.CreateSubscription
	mock.lockCreateSubscription.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) ExtendSubscription(ctx context.Context, id int64, expiresAt time.Time) (*domain.Subscription, error) {
	if mock.ExtendSubscriptionFunc == nil {
		panic("purchaseRepoMock.ExtendSubscriptionFunc: method is nil but purchaseRepo.ExtendSubscription was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ID        int64
		ExpiresAt time.Time
	}{
		Ctx:       ctx,
		ID:        id,
		ExpiresAt: expiresAt,
	}
	mock.lockExtendSubscription.Lock()
	mock.calls.ExtendSubscription = append(mock.calls.ExtendSubscription, callInfo)
	mock.lockExtendSubscription.Unlock()
	return mock.ExtendSubscriptionFunc(ctx, id, expiresAt)
}

func (mock *purchaseRepoMock) ExtendSubscriptionCalls() []struct {
	Ctx       context.Context
	ID        int64
	ExpiresAt time.Time
} {
	var calls []struct {
		Ctx       context.Context
		ID        int64
		ExpiresAt time.Time
	}
	mock.lockExtendSubscription.RLock()
	calls = mock.calls.ExtendSubscription
	mock.lockExtendSubscription.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) GetByRequestID(ctx context.Context, requestID string) (*domain.Purchase, error) {
	if mock.GetByRequestIDFunc == nil {
		panic("purchaseRepoMock.GetByRequestIDFunc: method is nil but purchaseRepo.GetByRequestID was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID string
	}{
		Ctx:       ctx,
		RequestID: requestID,
	}
	mock.lockGetByRequestID.Lock()
	mock.calls.GetByRequestID = append(mock.calls.GetByRequestID, callInfo)
	mock.lockGetByRequestID.Unlock()
	return mock.GetByRequestIDFunc(ctx, requestID)
}

func (mock *purchaseRepoMock) GetByRequestIDCalls() []struct {
	Ctx       context.Context
	RequestID string
} {
	var calls []struct {
		Ctx       context.Context
		RequestID string
	}
	mock.lockGetByRequestID.RLock()
	calls = mock.calls.GetByRequestID
	mock.lockGetByRequestID.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) GetLatestSubscriptionForUpdate(ctx context.Context, userID int64, cityID int64) (*domain.Subscription, error) {
	if mock.GetLatestSubscriptionForUpdateFunc == nil {
		panic("purchaseRepoMock.GetLatestSubscriptionForUpdateFunc: method is nil but purchaseRepo.GetLatestSubscriptionForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID int64
		CityID int64
	}{
		Ctx:    ctx,
		UserID: userID,
		CityID: cityID,
	}
	mock.lockGetLatestSubscriptionForUpdate.Lock()
	mock.calls.GetLatestSubscriptionForUpdate = append(mock.calls.GetLatestSubscriptionForUpdate, callInfo)
	mock.lockGetLatestSubscriptionForUpdate.Unlock()
	return mock.GetLatestSubscriptionForUpdateFunc(ctx, userID, cityID)
}

func (mock *purchaseRepoMock) GetLatestSubscriptionForUpdateCalls() []struct {
	Ctx    context.Context
	UserID int64
	CityID int64
} {
	var calls []struct {
		Ctx    context.Context
		UserID int64
		CityID int64
	}
	mock.lockGetLatestSubscriptionForUpdate.RLock()
	calls = mock.calls.GetLatestSubscriptionForUpdate
	mock.lockGetLatestSubscriptionForUpdate.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) ListSnapshots(ctx context.Context, userID int64, mapID int64) ([]domain.PurchasedMapSnapshot, error) {
	if mock.ListSnapshotsFunc == nil {
		panic("purchaseRepoMock.ListSnapshotsFunc: method is nil but purchaseRepo.ListSnapshots was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID int64
		MapID  int64
	}{
		Ctx:    ctx,
		UserID: userID,
		MapID:  mapID,
	}
	mock.lockListSnapshots.Lock()
	mock.calls.ListSnapshots = append(mock.calls.ListSnapshots, callInfo)
	mock.lockListSnapshots.Unlock()
	return mock.ListSnapshotsFunc(ctx, userID, mapID)
}

func (mock *purchaseRepoMock) ListSnapshotsCalls() []struct {
	Ctx    context.Context
	UserID int64
	MapID  int64
} {
	var calls []struct {
		Ctx    context.Context
		UserID int64
		MapID  int64
	}
	mock.lockListSnapshots.RLock()
	calls = mock.calls.ListSnapshots
	mock.lockListSnapshots.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) LockBuyer(ctx context.Context, userID int64) error {
	if mock.LockBuyerFunc == nil {
		panic("purchaseRepoMock.LockBuyerFunc: method is nil but purchaseRepo.LockBuyer was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID int64
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockLockBuyer.Lock()
	mock.calls.LockBuyer = append(mock.calls.LockBuyer, callInfo)
	mock.lockLockBuyer.Unlock()
	return mock.LockBuyerFunc(ctx, userID)
}

func (mock *purchaseRepoMock) LockBuyerCalls() []struct {
	Ctx    context.Context
	UserID int64
} {
	var calls []struct {
		Ctx    context.Context
		UserID int64
	}
	mock.lockLockBuyer.RLock()
	calls = mock.calls.LockBuyer
	mock.lockLockBuyer.RUnlock()
	return calls
}
