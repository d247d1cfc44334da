package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ entitlementRepo = &entitlementRepoMock{}

type entitlementRepoMock struct {
	HasActiveSubscriptionFunc func(ctx context.Context, userID int64, cityID int64, at time.Time) (bool, error)
	ListSnapshotsFunc         func(ctx context.Context, userID int64, mapID int64) ([]domain.PurchasedMapSnapshot, error)

	calls struct {
		HasActiveSubscription []struct {
			Ctx    context.Context
			UserID int64
			CityID int64
			At     time.Time
		}
		ListSnapshots []struct {
			Ctx    context.Context
			UserID int64
			MapID  int64
		}
	}
	lockHasActiveSubscription sync.RWMutex
	lockListSnapshots         sync.RWMutex
}

func (mock *entitlementRepoMock) HasActiveSubscription(ctx context.Context, userID int64, cityID int64, at time.Time) (bool, error) {
	if mock.HasActiveSubscriptionFunc == nil {
		panic("entitlementRepoMock.HasActiveSubscriptionFunc: method is nil but entitlementRepo.HasActiveSubscription was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID int64
		CityID int64
		At     time.Time
	}{
		Ctx:    ctx,
		UserID: userID,
		CityID: cityID,
		At:     at,
	}
	mock.lockHasActiveSubscription.Lock()
	mock.calls.HasActiveSubscription = append(mock.calls.HasActiveSubscription, callInfo)
	mock.lockHasActiveSubscription.Unlock()
	return mock.HasActiveSubscriptionFunc(ctx, userID, cityID, at)
}

func (mock *entitlementRepoMock) HasActiveSubscriptionCalls() []struct {
	Ctx    context.Context
	UserID int64
	CityID int64
	At     time.Time
} {
	var calls []struct {
		Ctx    context.Context
		UserID int64
		CityID int64
		At     time.Time
	}
	mock.lockHasActiveSubscription.RLock()
	calls = mock.calls.HasActiveSubscription
	mock.lockHasActiveSubscription.RUnlock()
	return calls
}

func (mock *entitlementRepoMock) ListSnapshots(ctx context.Context, userID int64, mapID int64) ([]domain.PurchasedMapSnapshot, error) {
	if mock.ListSnapshotsFunc == nil {
		panic("entitlementRepoMock.ListSnapshotsFunc: method is nil but entitlementRepo.ListSnapshots was just called")
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

func (mock *entitlementRepoMock) ListSnapshotsCalls() []struct {
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
