package catalog

import (
	"context"
	"sync"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ catalogRepo = &catalogRepoMock{}

type catalogRepoMock struct {
	GetCityDetailsFunc func(ctx context.Context, cityID int64) (*domain.CityDetails, error)
	GetMapByIDFunc     func(ctx context.Context, mapID int64) (*domain.Map, error)
	ListCitiesFunc     func(ctx context.Context, query string) ([]domain.CitySummary, error)

	calls struct {
		GetCityDetails []struct {
			Ctx    context.Context
			CityID int64
		}
		GetMapByID []struct {
			Ctx   context.Context
			MapID int64
		}
		ListCities []struct {
			Ctx   context.Context
			Query string
		}
	}
	lockGetCityDetails sync.RWMutex
	lockGetMapByID     sync.RWMutex
	lockListCities     sync.RWMutex
}

func (mock *catalogRepoMock) GetCityDetails(ctx context.Context, cityID int64) (*domain.CityDetails, error) {
	if mock.GetCityDetailsFunc == nil {
		panic("catalogRepoMock.GetCityDetailsFunc: method is nil but catalogRepo.GetCityDetails was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CityID int64
	}{
		Ctx:    ctx,
		CityID: cityID,
	}
	mock.lockGetCityDetails.Lock()
	mock.calls.GetCityDetails = append(mock.calls.GetCityDetails, callInfo)
	mock.lockGetCityDetails.Unlock()
	return mock.GetCityDetailsFunc(ctx, cityID)
}

func (mock *catalogRepoMock) GetCityDetailsCalls() []struct {
	Ctx    context.Context
	CityID int64
} {
	var calls []struct {
		Ctx    context.Context
		CityID int64
	}
	mock.lockGetCityDetails.RLock()
	calls = mock.calls.GetCityDetails
	mock.lockGetCityDetails.RUnlock()
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

func (mock *catalogRepoMock) ListCities(ctx context.Context, query string) ([]domain.CitySummary, error) {
	if mock.ListCitiesFunc == nil {
		panic("catalogRepoMock.ListCitiesFunc: method is nil but catalogRepo.ListCities was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
	}{
		Ctx:   ctx,
		Query: query,
	}
	mock.lockListCities.Lock()
	mock.calls.ListCities = append(mock.calls.ListCities, callInfo)
	mock.lockListCities.Unlock()
	return mock.ListCitiesFunc(ctx, query)
}

func (mock *catalogRepoMock) ListCitiesCalls() []struct {
	Ctx   context.Context
	Query string
} {
	var calls []struct {
		Ctx   context.Context
		Query string
	}
	mock.lockListCities.RLock()
	calls = mock.calls.ListCities
	mock.lockListCities.RUnlock()
	return calls
}
