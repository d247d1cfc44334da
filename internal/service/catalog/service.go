// Package catalog serves catalog reads and records map views and downloads.
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/metrics"
)

type catalogRepo interface {
	ListCities(ctx context.Context, query string) ([]domain.CitySummary, error)
	GetCityDetails(ctx context.Context, cityID int64) (*domain.CityDetails, error)
	GetMapByID(ctx context.Context, mapID int64) (*domain.Map, error)
}

type entitlementRepo interface {
	HasActiveSubscription(ctx context.Context, userID, cityID int64, at time.Time) (bool, error)
	ListSnapshots(ctx context.Context, userID, mapID int64) ([]domain.PurchasedMapSnapshot, error)
}

type eventRepo interface {
	RecordEvent(ctx context.Context, e domain.MapEvent) error
}

// Service implements catalog reads backed by an expiring LRU cache.
type Service struct {
	log          *slog.Logger
	catalog      catalogRepo
	entitlements entitlementRepo
	events       eventRepo
	clock        clockwork.Clock
	metrics      *metrics.Metrics

	cities  *expirable.LRU[string, []domain.CitySummary]
	details *expirable.LRU[int64, *domain.CityDetails]
}

// NewService creates a new catalog service. size bounds each cache and ttl
// bounds how long an entry may be served after it was loaded.
func NewService(
	logger *slog.Logger,
	catalog catalogRepo,
	entitlements entitlementRepo,
	events eventRepo,
	clock clockwork.Clock,
	m *metrics.Metrics,
	size int,
	ttl time.Duration,
) *Service {
	return &Service{
		log:          logger.With("service", "catalog"),
		catalog:      catalog,
		entitlements: entitlements,
		events:       events,
		clock:        clock,
		metrics:      m,
		cities:       expirable.NewLRU[string, []domain.CitySummary](size, nil, ttl),
		details:      expirable.NewLRU[int64, *domain.CityDetails](size, nil, ttl),
	}
}

// Invalidate drops every cached catalog entry. It is called after an
// approved change touches the catalog.
func (s *Service) Invalidate() {
	s.cities.Purge()
	s.details.Purge()
}

// normalizeQuery maps equivalent search strings to one cache key.
func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
