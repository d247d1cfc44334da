package ws

import (
	"context"
	"sync"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/service/catalog"
)

var _ catalogService = &catalogServiceMock{}

type catalogServiceMock struct {
	DownloadMapFunc    func(ctx context.Context, mapID int64) (*catalog.DownloadResult, error)
	GetCatalogFunc     func(ctx context.Context, query string) ([]domain.CitySummary, error)
	GetCityDetailsFunc func(ctx context.Context, cityID int64) (*domain.CityDetails, error)
	ViewMapFunc        func(ctx context.Context, mapID int64) (*domain.Map, error)

	calls struct {
		DownloadMap []struct {
			Ctx   context.Context
			MapID int64
		}
		GetCatalog []struct {
			Ctx   context.Context
			Query string
		}
		GetCityDetails []struct {
			Ctx    context.Context
			CityID int64
		}
		ViewMap []struct {
			Ctx   context.Context
			MapID int64
		}
	}
	lockDownloadMap    sync.RWMutex
	lockGetCatalog     sync.RWMutex
	lockGetCityDetails sync.RWMutex
	lockViewMap        sync.RWMutex
}

func (mock *catalogServiceMock) DownloadMap(ctx context.Context, mapID int64) (*catalog.DownloadResult, error) {
	if mock.DownloadMapFunc == nil {
		panic("catalogServiceMock.DownloadMapFunc: method is nil but catalogService.DownloadMap was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		MapID int64
	}{
		Ctx:   ctx,
		MapID: mapID,
	}
	mock.lockDownloadMap.Lock()
	mock.calls.DownloadMap = append(mock.calls.DownloadMap, callInfo)
	mock.lockDownloadMap.Unlock()
	return mock.DownloadMapFunc(ctx, mapID)
}

func (mock *catalogServiceMock) DownloadMapCalls() []struct {
	Ctx   context.Context
	MapID int64
} {
	var calls []struct {
		Ctx   context.Context
		MapID int64
	}
	mock.lockDownloadMap.RLock()
	calls = mock.calls.DownloadMap
	mock.lockDownloadMap.RUnlock()
	return calls
}

func (mock *catalogServiceMock) GetCatalog(ctx context.Context, query string) ([]domain.CitySummary, error) {
	if mock.GetCatalogFunc == nil {
		panic("catalogServiceMock.GetCatalogFunc: method is nil but catalogService.GetCatalog was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
	}{
		Ctx:   ctx,
		Query: query,
	}
	mock.lockGetCatalog.Lock()
	mock.calls.GetCatalog = append(mock.calls.GetCatalog, callInfo)
	mock.lockGetCatalog.Unlock()
	return mock.GetCatalogFunc(ctx, query)
}

func (mock *catalogServiceMock) GetCatalogCalls() []struct {
	Ctx   context.Context
	Query string
} {
	var calls []struct {
		Ctx   context.Context
		Query string
	}
	mock.lockGetCatalog.RLock()
	calls = mock.calls.GetCatalog
	mock.lockGetCatalog.RUnlock()
	return calls
}

func (mock *catalogServiceMock) GetCityDetails(ctx context.Context, cityID int64) (*domain.CityDetails, error) {
	if mock.GetCityDetailsFunc == nil {
		panic("catalogServiceMock.GetCityDetailsFunc: method is nil but catalogService.GetCityDetails was just called")
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

func (mock *catalogServiceMock) GetCityDetailsCalls() []struct {
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

func (mock *catalogServiceMock) ViewMap(ctx context.Context, mapID int64) (*domain.Map, error) {
	if mock.ViewMapFunc == nil {
		panic("catalogServiceMock.ViewMapFunc: method is nil but catalogService.ViewMap was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		MapID int64
	}{
		Ctx:   ctx,
		MapID: mapID,
	}
	mock.lockViewMap.Lock()
	mock.calls.ViewMap = append(mock.calls.ViewMap, callInfo)
	mock.lockViewMap.Unlock()
	return mock.ViewMapFunc(ctx, mapID)
}

func (mock *catalogServiceMock) ViewMapCalls() []struct {
	Ctx   context.Context
	MapID int64
} {
	var calls []struct {
		Ctx   context.Context
		MapID int64
	}
	mock.lockViewMap.RLock()
	calls = mock.calls.ViewMap
	mock.lockViewMap.RUnlock()
	return calls
}
