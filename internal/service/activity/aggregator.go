// Package activity rolls raw purchases and map events up into daily per-city
// statistics and serves the activity report built from them.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

// maxReportDays bounds the date range of a single report.
const maxReportDays = 366

type statsRepo interface {
	AggregateDay(ctx context.Context, start, end time.Time) (int64, error)
	ListStats(ctx context.Context, cityID *int64, from, to time.Time) ([]domain.DailyCityActivityStat, error)
}

// Aggregator computes and reads daily activity statistics. Calendar days are
// taken in loc.
type Aggregator struct {
	log   *slog.Logger
	stats statsRepo
	clock clockwork.Clock
	loc   *time.Location
}

// NewAggregator creates a new Aggregator. A nil loc means UTC.
func NewAggregator(logger *slog.Logger, stats statsRepo, clock clockwork.Clock, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		log:   logger.With("service", "activity"),
		stats: stats,
		clock: clock,
		loc:   loc,
	}
}

// Location returns the time zone calendar days are computed in.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// AggregateDay recomputes the statistics of the calendar day containing date
// for every city. Existing rows for that day are replaced, so running it more
// than once gives the same result.
func (a *Aggregator) AggregateDay(ctx context.Context, date time.Time) (int64, error) {
	start, end := domain.DayBounds(date, a.loc)

	rows, err := a.stats.AggregateDay(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("activity.AggregateDay %s: %w", start.Format(time.DateOnly), err)
	}

	a.log.InfoContext(ctx, "daily activity aggregated",
		slog.String("day", start.Format(time.DateOnly)),
		slog.Int64("rows_changed", rows))
	return rows, nil
}

// Report returns the daily statistics for the inclusive day range
// [from, to]. Every completed day in the range is recomputed first, so days
// the scheduler missed are filled in. Only company managers may read it.
func (a *Aggregator) Report(ctx context.Context, cityID *int64, from, to time.Time) ([]domain.DailyCityActivityStat, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.UserRole(ctxutil.RoleFromCtx(ctx)).AtLeast(domain.UserRoleCompanyManager) {
		return nil, domain.ErrForbidden
	}
	if cityID != nil && *cityID <= 0 {
		return nil, domain.NewValidationError("cityId", "must be positive")
	}

	first, _ := domain.DayBounds(from, a.loc)
	last, _ := domain.DayBounds(to, a.loc)
	if last.Before(first) {
		return nil, domain.NewValidationError("to", "must not be before from")
	}
	if days := daysBetween(first, last) + 1; days > maxReportDays {
		return nil, domain.NewValidationError("to", fmt.Sprintf("range exceeds %d days", maxReportDays))
	}

	today, _ := domain.DayBounds(a.clock.Now(), a.loc)
	for day := first; !day.After(last) && day.Before(today); day = day.AddDate(0, 0, 1) {
		if _, err := a.AggregateDay(ctx, day); err != nil {
			return nil, fmt.Errorf("activity.Report: backfill: %w", err)
		}
	}

	stats, err := a.stats.ListStats(ctx, cityID, first, last)
	if err != nil {
		return nil, fmt.Errorf("activity.Report: %w", err)
	}
	return stats, nil
}

// daysBetween counts calendar days from a to b, both local midnights.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
