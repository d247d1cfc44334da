// Package purchase implements purchase, subscription and snapshot persistence using PostgreSQL.
package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres"
	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var (
	purchaseColumns = []string{
		"id", "request_id", "user_id", "city_id", "map_id", "type", "price_paid",
		"months", "is_renewal", "subscription_id", "snapshot_id", "expires_at", "created_at",
	}
	subscriptionColumns = []string{"id", "user_id", "city_id", "starts_at", "expires_at", "created_at", "updated_at"}
	snapshotColumns     = []string{"id", "user_id", "original_map_id", "purchased_version", "price_paid", "purchased_at"}
)

// Repo provides purchase persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new purchase repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// LockBuyer locks the user row for the rest of the transaction so that
// purchases of one user are applied one at a time.
func (r *Repo) LockBuyer(ctx context.Context, userID int64) error {
	sql, args, err := postgres.Builder().
		Select("id").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return err
	}

	var id int64
	if err := r.q(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return postgres.MapError(err, "user", userID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Purchases
// ---------------------------------------------------------------------------

// GetByRequestID returns the purchase recorded for an idempotency key.
func (r *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.Purchase, error) {
	sql, args, err := postgres.Builder().
		Select(purchaseColumns...).
		From("purchases").
		Where(squirrel.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanPurchase(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "purchase", requestID)
	}
	return p, nil
}

// CreatePurchase records a successful purchase.
func (r *Repo) CreatePurchase(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	sql, args, err := postgres.Builder().
		Insert("purchases").
		Columns("request_id", "user_id", "city_id", "map_id", "type", "price_paid",
			"months", "is_renewal", "subscription_id", "snapshot_id", "expires_at").
		Values(p.RequestID, p.UserID, p.CityID, p.MapID, string(p.Type), p.PricePaid,
			p.Months, p.IsRenewal, p.SubscriptionID, p.SnapshotID, p.ExpiresAt).
		Suffix("RETURNING " + strings.Join(purchaseColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanPurchase(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		key := any(nil)
		if p.RequestID != nil {
			key = *p.RequestID
		}
		return nil, postgres.MapError(err, "purchase", key)
	}
	return created, nil
}

// ---------------------------------------------------------------------------
// Subscriptions
// ---------------------------------------------------------------------------

// GetLatestSubscriptionForUpdate returns the subscription of (user, city)
// with the latest expiry and locks it, or domain.ErrNotFound.
func (r *Repo) GetLatestSubscriptionForUpdate(ctx context.Context, userID, cityID int64) (*domain.Subscription, error) {
	sql, args, err := postgres.Builder().
		Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"user_id": userID, "city_id": cityID}).
		OrderBy("expires_at DESC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanSubscription(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "subscription", fmt.Sprintf("user=%d city=%d", userID, cityID))
	}
	return s, nil
}

// HasActiveSubscription reports whether the user holds a subscription to the
// city that is active at t.
func (r *Repo) HasActiveSubscription(ctx context.Context, userID, cityID int64, t time.Time) (bool, error) {
	sql, args, err := postgres.Builder().
		Select("1").
		From("subscriptions").
		Where(squirrel.Eq{"user_id": userID, "city_id": cityID}).
		Where(squirrel.LtOrEq{"starts_at": t}).
		Where(squirrel.Gt{"expires_at": t}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var ok bool
	if err := r.q(ctx).QueryRow(ctx, sql, args...).Scan(&ok); err != nil {
		return false, postgres.MapError(err, "subscription", nil)
	}
	return ok, nil
}

// CreateSubscription inserts a new subscription.
func (r *Repo) CreateSubscription(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	sql, args, err := postgres.Builder().
		Insert("subscriptions").
		Columns("user_id", "city_id", "starts_at", "expires_at").
		Values(s.UserID, s.CityID, s.StartsAt, s.ExpiresAt).
		Suffix("RETURNING " + strings.Join(subscriptionColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanSubscription(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "subscription", nil)
	}
	return created, nil
}

// ExtendSubscription moves the expiry of a subscription.
func (r *Repo) ExtendSubscription(ctx context.Context, id int64, expiresAt time.Time) (*domain.Subscription, error) {
	sql, args, err := postgres.Builder().
		Update("subscriptions").
		Set("expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(subscriptionColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanSubscription(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "subscription", id)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

// ListSnapshots returns every snapshot the user holds of one map, newest first.
func (r *Repo) ListSnapshots(ctx context.Context, userID, mapID int64) ([]domain.PurchasedMapSnapshot, error) {
	sql, args, err := postgres.Builder().
		Select(snapshotColumns...).
		From("purchased_map_snapshots").
		Where(squirrel.Eq{"user_id": userID, "original_map_id": mapID}).
		OrderBy("purchased_version DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "snapshot", mapID)
	}
	defer rows.Close()

	var out []domain.PurchasedMapSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "snapshot", mapID)
	}
	return out, nil
}

// CreateSnapshot inserts an immutable snapshot of a purchased map version.
func (r *Repo) CreateSnapshot(ctx context.Context, s *domain.PurchasedMapSnapshot) (*domain.PurchasedMapSnapshot, error) {
	sql, args, err := postgres.Builder().
		Insert("purchased_map_snapshots").
		Columns("user_id", "original_map_id", "purchased_version", "price_paid").
		Values(s.UserID, s.OriginalMapID, s.PurchasedVersion, s.PricePaid).
		Suffix("RETURNING " + strings.Join(snapshotColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanSnapshot(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "snapshot", s.OriginalMapID)
	}
	return created, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var (
		p      domain.Purchase
		typ    string
		months int32
	)
	err := row.Scan(&p.ID, &p.RequestID, &p.UserID, &p.CityID, &p.MapID, &typ, &p.PricePaid,
		&months, &p.IsRenewal, &p.SubscriptionID, &p.SnapshotID, &p.ExpiresAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Type = domain.PurchaseType(typ)
	p.Months = int(months)
	return &p, nil
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var s domain.Subscription
	if err := row.Scan(&s.ID, &s.UserID, &s.CityID, &s.StartsAt, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSnapshot(row pgx.Row) (*domain.PurchasedMapSnapshot, error) {
	var (
		s       domain.PurchasedMapSnapshot
		version int32
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.OriginalMapID, &version, &s.PricePaid, &s.PurchasedAt); err != nil {
		return nil, err
	}
	s.PurchasedVersion = int(version)
	return &s, nil
}
