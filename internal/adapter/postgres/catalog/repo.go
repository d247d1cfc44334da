// Package catalog implements the city, map, site and tour repository using PostgreSQL.
package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres"
	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var (
	cityColumns = []string{"id", "name", "description", "subscription_price", "created_at", "updated_at"}
	mapColumns  = []string{"id", "city_id", "name", "description", "price", "version", "created_at", "updated_at"}
	siteColumns = []string{"id", "city_id", "name", "category", "description", "accessible", "visit_minutes"}
	tourColumns = []string{"id", "city_id", "name", "description", "site_ids"}
)

// Repo provides catalog persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new catalog repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetCityPrice returns only the id, name and monthly price of a city.
func (r *Repo) GetCityPrice(ctx context.Context, cityID int64) (*domain.CityPrice, error) {
	sql, args, err := postgres.Builder().
		Select("id", "name", "subscription_price").
		From("cities").
		Where(squirrel.Eq{"id": cityID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p domain.CityPrice
	if err := r.q(ctx).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.Name, &p.Price); err != nil {
		return nil, postgres.MapError(err, "city", cityID)
	}
	return &p, nil
}

// GetCity returns a city without its content.
func (r *Repo) GetCity(ctx context.Context, cityID int64) (*domain.City, error) {
	sql, args, err := postgres.Builder().
		Select(cityColumns...).
		From("cities").
		Where(squirrel.Eq{"id": cityID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanCity(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "city", cityID)
	}
	return c, nil
}

// GetMapByID returns a map by primary key.
func (r *Repo) GetMapByID(ctx context.Context, mapID int64) (*domain.Map, error) {
	return r.getMap(ctx, mapID, false)
}

// GetMapForUpdate returns a map and locks its row until the surrounding
// transaction ends.
func (r *Repo) GetMapForUpdate(ctx context.Context, mapID int64) (*domain.Map, error) {
	return r.getMap(ctx, mapID, true)
}

func (r *Repo) getMap(ctx context.Context, mapID int64, lock bool) (*domain.Map, error) {
	b := postgres.Builder().
		Select(mapColumns...).
		From("maps").
		Where(squirrel.Eq{"id": mapID})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	m, err := scanMap(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "map", mapID)
	}
	return m, nil
}

// ListCities returns catalog rows ordered by name. A non-empty query filters
// by case-insensitive name match.
func (r *Repo) ListCities(ctx context.Context, query string) ([]domain.CitySummary, error) {
	b := postgres.Builder().
		Select("c.id", "c.name", "c.description", "c.subscription_price", "COUNT(m.id) AS map_count").
		From("cities c").
		LeftJoin("maps m ON m.city_id = c.id").
		GroupBy("c.id").
		OrderBy("c.name ASC")
	if query != "" {
		b = b.Where(squirrel.ILike{"c.name": "%" + query + "%"})
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "cities", nil)
	}
	defer rows.Close()

	var out []domain.CitySummary
	for rows.Next() {
		var (
			s     domain.CitySummary
			count int64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.SubscriptionPrice, &count); err != nil {
			return nil, fmt.Errorf("scan city summary: %w", err)
		}
		s.MapCount = int(count)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "cities", nil)
	}
	return out, nil
}

// GetCityDetails loads a city with its maps, sites and tours.
func (r *Repo) GetCityDetails(ctx context.Context, cityID int64) (*domain.CityDetails, error) {
	city, err := r.GetCity(ctx, cityID)
	if err != nil {
		return nil, err
	}

	d := &domain.CityDetails{City: *city}
	if d.Maps, err = listByCity(ctx, r.q(ctx), "maps", mapColumns, cityID, scanMap); err != nil {
		return nil, err
	}
	if d.Sites, err = listByCity(ctx, r.q(ctx), "sites", siteColumns, cityID, scanSite); err != nil {
		return nil, err
	}
	if d.Tours, err = listByCity(ctx, r.q(ctx), "tours", tourColumns, cityID, scanTour); err != nil {
		return nil, err
	}
	return d, nil
}

func listByCity[T any](ctx context.Context, q postgres.Querier, table string, cols []string, cityID int64, scan func(pgx.Row) (*T, error)) ([]T, error) {
	sql, args, err := postgres.Builder().
		Select(cols...).
		From(table).
		Where(squirrel.Eq{"city_id": cityID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, table, cityID)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, table, cityID)
	}
	return out, nil
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanCity(row pgx.Row) (*domain.City, error) {
	var c domain.City
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.SubscriptionPrice, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanMap(row pgx.Row) (*domain.Map, error) {
	var (
		m       domain.Map
		version int32
	)
	if err := row.Scan(&m.ID, &m.CityID, &m.Name, &m.Description, &m.Price, &version, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Version = int(version)
	return &m, nil
}

func scanSite(row pgx.Row) (*domain.Site, error) {
	var (
		s       domain.Site
		minutes int32
	)
	if err := row.Scan(&s.ID, &s.CityID, &s.Name, &s.Category, &s.Description, &s.Accessible, &minutes); err != nil {
		return nil, err
	}
	s.VisitMinutes = int(minutes)
	return &s, nil
}

func scanTour(row pgx.Row) (*domain.Tour, error) {
	var t domain.Tour
	if err := row.Scan(&t.ID, &t.CityID, &t.Name, &t.Description, &t.SiteIDs); err != nil {
		return nil, err
	}
	return &t, nil
}
