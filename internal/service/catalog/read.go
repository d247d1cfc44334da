package catalog

import (
	"context"
	"fmt"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// GetCatalog lists cities whose name matches query (all cities when empty).
func (s *Service) GetCatalog(ctx context.Context, query string) ([]domain.CitySummary, error) {
	key := normalizeQuery(query)
	if len(key) > 100 {
		return nil, domain.NewValidationError("query", "max 100 characters")
	}

	if cached, ok := s.cities.Get(key); ok {
		s.metrics.CacheHit()
		return cached, nil
	}
	s.metrics.CacheMiss()

	cities, err := s.catalog.ListCities(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetCatalog: %w", err)
	}

	s.cities.Add(key, cities)
	return cities, nil
}

// GetCityDetails returns a city together with its maps, sites and tours.
func (s *Service) GetCityDetails(ctx context.Context, cityID int64) (*domain.CityDetails, error) {
	if cityID <= 0 {
		return nil, domain.NewValidationError("cityId", "required")
	}

	if cached, ok := s.details.Get(cityID); ok {
		s.metrics.CacheHit()
		return cached, nil
	}
	s.metrics.CacheMiss()

	details, err := s.catalog.GetCityDetails(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetCityDetails: %w", err)
	}

	s.details.Add(cityID, details)
	return details, nil
}
