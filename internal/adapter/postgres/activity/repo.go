// Package activity implements map event recording and daily activity
// aggregation using PostgreSQL.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres"
	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// aggregateDaySQL recomputes the counters of one calendar day from purchases
// and map events in [$1, $2) and stores them under date $3. Every current
// city gets a row, as does any city that had activity that day or already
// has a row for it, so deleted cities are recomputed too. Rows whose counters
// did not change are left untouched.
const aggregateDaySQL = `
WITH p AS (
    SELECT city_id,
           COUNT(*) FILTER (WHERE type = 'ONE_TIME')                        AS one_time,
           COUNT(*) FILTER (WHERE type = 'SUBSCRIPTION' AND NOT is_renewal) AS subscriptions,
           COUNT(*) FILTER (WHERE type = 'SUBSCRIPTION' AND is_renewal)     AS renewals
    FROM purchases
    WHERE created_at >= $1 AND created_at < $2
    GROUP BY city_id
), e AS (
    SELECT city_id,
           COUNT(*) FILTER (WHERE kind = 'VIEW')     AS views,
           COUNT(*) FILTER (WHERE kind = 'DOWNLOAD') AS downloads
    FROM map_events
    WHERE created_at >= $1 AND created_at < $2
    GROUP BY city_id
), c AS (
    SELECT id AS city_id FROM cities
    UNION SELECT city_id FROM p
    UNION SELECT city_id FROM e
    UNION SELECT city_id FROM daily_city_activity_stats WHERE stat_date = $3::date
)
INSERT INTO daily_city_activity_stats (
    city_id, stat_date, one_time_purchases, subscriptions,
    subscription_renewals, views, downloads, computed_at
)
SELECT c.city_id,
       $3::date,
       COALESCE(p.one_time, 0),
       COALESCE(p.subscriptions, 0),
       COALESCE(p.renewals, 0),
       COALESCE(e.views, 0),
       COALESCE(e.downloads, 0),
       now()
FROM c
LEFT JOIN p ON p.city_id = c.city_id
LEFT JOIN e ON e.city_id = c.city_id
ON CONFLICT (city_id, stat_date) DO UPDATE SET
    one_time_purchases    = EXCLUDED.one_time_purchases,
    subscriptions         = EXCLUDED.subscriptions,
    subscription_renewals = EXCLUDED.subscription_renewals,
    views                 = EXCLUDED.views,
    downloads             = EXCLUDED.downloads,
    computed_at           = EXCLUDED.computed_at
WHERE (daily_city_activity_stats.one_time_purchases,
       daily_city_activity_stats.subscriptions,
       daily_city_activity_stats.subscription_renewals,
       daily_city_activity_stats.views,
       daily_city_activity_stats.downloads)
      IS DISTINCT FROM
      (EXCLUDED.one_time_purchases,
       EXCLUDED.subscriptions,
       EXCLUDED.subscription_renewals,
       EXCLUDED.views,
       EXCLUDED.downloads)`

var statColumns = []string{
	"city_id", "stat_date", "one_time_purchases", "subscriptions",
	"subscription_renewals", "views", "downloads", "computed_at",
}

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new activity repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// RecordEvent stores a raw view or download event.
func (r *Repo) RecordEvent(ctx context.Context, e domain.MapEvent) error {
	sql, args, err := postgres.Builder().
		Insert("map_events").
		Columns("user_id", "city_id", "map_id", "kind").
		Values(e.UserID, e.CityID, e.MapID, string(e.Kind)).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "map event", e.MapID)
	}
	return nil
}

// AggregateDay upserts the stats of the day [start, end), stored under the
// calendar date of start in start's location. It returns the number of rows
// inserted or changed. Running it again for the same day yields the same rows.
func (r *Repo) AggregateDay(ctx context.Context, start, end time.Time) (int64, error) {
	day := start.Format(time.DateOnly)
	tag, err := r.q(ctx).Exec(ctx, aggregateDaySQL, start, end, day)
	if err != nil {
		return 0, postgres.MapError(err, "daily activity", day)
	}
	return tag.RowsAffected(), nil
}

// ListStats returns stored daily stats with stat_date in [from, to],
// optionally limited to one city, ordered by date then city. Only the
// calendar dates of from and to in their own locations are used.
func (r *Repo) ListStats(ctx context.Context, cityID *int64, from, to time.Time) ([]domain.DailyCityActivityStat, error) {
	b := postgres.Builder().
		Select(statColumns...).
		From("daily_city_activity_stats").
		Where(squirrel.Expr("stat_date >= ?::date", from.Format(time.DateOnly))).
		Where(squirrel.Expr("stat_date <= ?::date", to.Format(time.DateOnly))).
		OrderBy("stat_date", "city_id")
	if cityID != nil {
		b = b.Where(squirrel.Eq{"city_id": *cityID})
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "daily activity", nil)
	}
	defer rows.Close()

	out := []domain.DailyCityActivityStat{}
	for rows.Next() {
		var (
			s                                         domain.DailyCityActivityStat
			oneTime, subs, renewals, views, downloads int32
		)
		err := rows.Scan(&s.CityID, &s.StatDate, &oneTime, &subs, &renewals, &views, &downloads, &s.ComputedAt)
		if err != nil {
			return nil, fmt.Errorf("scan daily activity: %w", err)
		}
		s.OneTimePurchases = int(oneTime)
		s.Subscriptions = int(subs)
		s.SubscriptionRenewals = int(renewals)
		s.Views = int(views)
		s.Downloads = int(downloads)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "daily activity", nil)
	}
	return out, nil
}
