package purchase

import (
	"context"
	"sync"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ catalogRepo = &catalogRepoMock{}

type catalogRepoMock struct {
	GetCityPriceFunc func(ctx context.Context, cityID int64) (*domain.CityPrice, error)
	GetMapByIDFunc   func(ctx context.Context, mapID int64) (*domain.Map, error)

	calls struct {
		GetCityPrice []struct {
			Ctx    context.Context
			CityID int64
		}
		GetMapByID []struct {
			Ctx   context.Context
			MapID int64
		}
	}
	lockGetCityPrice sync.RWMutex
	lockGetMapByID   sync.RWMutex
}

func (mock *catalogRepoMock) GetCityPrice(ctx context.Context, cityID int64) (*domain.CityPrice, error) {
	if mock.GetCityPriceFunc == nil {
		panic("catalogRepoMock.GetCityPriceFunc: method is nil but catalogRepo.GetCityPrice was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CityID int64
	}{
		Ctx:    ctx,
		CityID: cityID,
	}
	mock.lockGetCityPrice.Lock()
	mock.calls.GetCityPrice = append(mock.calls.GetCityPrice, callInfo)
	mock.lockGetCityPrice.Unlock()
	return mock.GetCityPriceFunc(ctx, cityID)
}

func (mock *catalogRepoMock) GetCityPriceCalls() []struct {
	Ctx    context.Context
	CityID int64
} {
	var calls []struct {
		Ctx    context.Context
		CityID int64
	}
	mock.lockGetCityPrice.RLock()
	calls = mock.calls.GetCityPrice
	mock.lockGetCityPrice.RUnlock()
	return calls
}

func (mock *catalogRepoMock) GetMapByID(ctx context.Context, mapID int64) (*domain.Map, error) {
	if mock.GetMapByIDFunc == nil {
		panic("catalogRepoMock.GetMapByIDFunc: method is nil but catalogRepo.GetMapByID was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		MapID int64
	}{
		Ctx:   ctx,
		MapID: mapID,
	}
	mock.lockGetMapByID.Lock()
	mock.calls.GetMapByID = append(mock.calls.GetMapByID, callInfo)
	mock.lockGetMapByID.Unlock()
	return mock.GetMapByIDFunc(ctx, mapID)
}

func (mock *catalogRepoMock) GetMapByIDCalls() []struct {
	Ctx   context.Context
	MapID int64
} {
	var calls []struct {
		Ctx   context.Context
		MapID int64
	}
	mock.lockGetMapByID.RLock()
	calls = mock.calls.GetMapByID
	mock.lockGetMapByID.RUnlock()
	return calls
}
