package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres"
	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Cities
// ---------------------------------------------------------------------------

// CreateCity inserts a city and returns its id.
func (r *Repo) CreateCity(ctx context.Context, c domain.CityContent) (int64, error) {
	return r.insert(ctx, "city", postgres.Builder().
		Insert("cities").
		Columns("name", "description", "subscription_price").
		Values(c.Name, c.Description, c.SubscriptionPrice))
}

// UpdateCity replaces the editable fields of a city.
func (r *Repo) UpdateCity(ctx context.Context, id int64, c domain.CityContent) error {
	return r.execOne(ctx, "city", id, postgres.Builder().
		Update("cities").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("subscription_price", c.SubscriptionPrice).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}))
}

// DeleteCity removes a city together with its maps, sites and tours.
func (r *Repo) DeleteCity(ctx context.Context, id int64) error {
	return r.execOne(ctx, "city", id, postgres.Builder().
		Delete("cities").
		Where(squirrel.Eq{"id": id}))
}

// ---------------------------------------------------------------------------
// Maps
// ---------------------------------------------------------------------------

// CreateMap inserts a version-1 map and returns its id.
func (r *Repo) CreateMap(ctx context.Context, m domain.MapContent) (int64, error) {
	return r.insert(ctx, "map", postgres.Builder().
		Insert("maps").
		Columns("city_id", "name", "description", "price", "version").
		Values(m.CityID, m.Name, m.Description, m.Price, 1))
}

// UpdateMap replaces the editable fields of a map and bumps its version.
func (r *Repo) UpdateMap(ctx context.Context, id int64, m domain.MapContent) error {
	return r.execOne(ctx, "map", id, postgres.Builder().
		Update("maps").
		Set("name", m.Name).
		Set("description", m.Description).
		Set("price", m.Price).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}))
}

// UpdateMapPrice changes only the price of a map. The version is unchanged:
// a price change does not produce new content.
func (r *Repo) UpdateMapPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	return r.execOne(ctx, "map", id, postgres.Builder().
		Update("maps").
		Set("price", price).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}))
}

// DeleteMap removes a map. Purchase history and snapshots are kept.
func (r *Repo) DeleteMap(ctx context.Context, id int64) error {
	return r.execOne(ctx, "map", id, postgres.Builder().
		Delete("maps").
		Where(squirrel.Eq{"id": id}))
}

// ---------------------------------------------------------------------------
// Sites
// ---------------------------------------------------------------------------

func (r *Repo) CreateSite(ctx context.Context, s domain.SiteContent) (int64, error) {
	return r.insert(ctx, "site", postgres.Builder().
		Insert("sites").
		Columns("city_id", "name", "category", "description", "accessible", "visit_minutes").
		Values(s.CityID, s.Name, s.Category, s.Description, s.Accessible, s.VisitMinutes))
}

func (r *Repo) UpdateSite(ctx context.Context, id int64, s domain.SiteContent) error {
	return r.execOne(ctx, "site", id, postgres.Builder().
		Update("sites").
		Set("name", s.Name).
		Set("category", s.Category).
		Set("description", s.Description).
		Set("accessible", s.Accessible).
		Set("visit_minutes", s.VisitMinutes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}))
}

func (r *Repo) DeleteSite(ctx context.Context, id int64) error {
	return r.execOne(ctx, "site", id, postgres.Builder().
		Delete("sites").
		Where(squirrel.Eq{"id": id}))
}

// ---------------------------------------------------------------------------
// Tours
// ---------------------------------------------------------------------------

func (r *Repo) CreateTour(ctx context.Context, t domain.TourContent) (int64, error) {
	return r.insert(ctx, "tour", postgres.Builder().
		Insert("tours").
		Columns("city_id", "name", "description", "site_ids").
		Values(t.CityID, t.Name, t.Description, siteIDs(t.SiteIDs)))
}

func (r *Repo) UpdateTour(ctx context.Context, id int64, t domain.TourContent) error {
	return r.execOne(ctx, "tour", id, postgres.Builder().
		Update("tours").
		Set("name", t.Name).
		Set("description", t.Description).
		Set("site_ids", siteIDs(t.SiteIDs)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}))
}

func (r *Repo) DeleteTour(ctx context.Context, id int64) error {
	return r.execOne(ctx, "tour", id, postgres.Builder().
		Delete("tours").
		Where(squirrel.Eq{"id": id}))
}

func siteIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) insert(ctx context.Context, entity string, b squirrel.InsertBuilder) (int64, error) {
	sql, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.q(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, entity, nil)
	}
	return id, nil
}

// execOne runs a statement that must affect exactly one row.
func (r *Repo) execOne(ctx context.Context, entity string, id int64, b squirrel.Sqlizer) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
