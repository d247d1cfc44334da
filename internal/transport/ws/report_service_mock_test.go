package ws

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ reportService = &reportServiceMock{}

type reportServiceMock struct {
	LocationFunc func() *time.Location
	ReportFunc   func(ctx context.Context, cityID *int64, from time.Time, to time.Time) ([]domain.DailyCityActivityStat, error)

	calls struct {
		Location []struct{}
		Report []struct {
			Ctx    context.Context
			CityID *int64
			From   time.Time
			To     time.Time
		}
	}
	lockLocation sync.RWMutex
	lockReport   sync.RWMutex
}

func (mock *reportServiceMock) Location() *time.Location {
	if mock.LocationFunc == nil {
		panic("reportServiceMock.LocationFunc: method is nil but reportService.Location was just called")
	}
	mock.lockLocation.Lock()
	mock.calls.Location = append(mock.calls.Location, struct{}{})
	mock.lockLocation.Unlock()
	return mock.LocationFunc()
}

func (mock *reportServiceMock) LocationCalls() []struct{} {
	var calls []struct{}
	mock.lockLocation.RLock()
	calls = mock.calls.Location
	mock.lockLocation.RUnlock()
	return calls
}

func (mock *reportServiceMock) Report(ctx context.Context, cityID *int64, from time.Time, to time.Time) ([]domain.DailyCityActivityStat, error) {
	if mock.ReportFunc == nil {
		panic("reportServiceMock.ReportFunc: method is nil but reportService.Report was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CityID *int64
		From   time.Time
		To     time.Time
	}{
		Ctx:    ctx,
		CityID: cityID,
		From:   from,
		To:     to,
	}
	mock.lockReport.Lock()
	mock.calls.Report = append(mock.calls.Report, callInfo)
	mock.lockReport.Unlock()
	return mock.ReportFunc(ctx, cityID, from, to)
}

func (mock *reportServiceMock) ReportCalls() []struct {
	Ctx    context.Context
	CityID *int64
	From   time.Time
	To     time.Time
} {
	var calls []struct {
		Ctx    context.Context
		CityID *int64
		From   time.Time
		To     time.Time
	}
	mock.lockReport.RLock()
	calls = mock.calls.Report
	mock.lockReport.RUnlock()
	return calls
}
