// Command aggregate recomputes daily activity statistics for a range of
// completed days. The server's scheduler does this once a day; this command
// backfills days it missed.
//
// Usage:
//
//	aggregate [--from=2024-03-01] [--to=2024-03-31]
//
// Both dates default to yesterday in the scheduler time zone.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/citymaps-backend/internal/adapter/postgres"
	activityrepo "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres/activity"
	"github.com/heartmarshall/citymaps-backend/internal/app"
	"github.com/heartmarshall/citymaps-backend/internal/config"
	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/service/activity"
)

func main() {
	fromFlag := flag.String("from", "", "first day to aggregate (YYYY-MM-DD)")
	toFlag := flag.String("to", "", "last day to aggregate (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	loc := cfg.Scheduler.Location
	clock := clockwork.NewRealClock()

	today, _ := domain.DayBounds(clock.Now(), loc)
	yesterday := today.AddDate(0, 0, -1)

	from, err := parseDay(*fromFlag, yesterday, loc)
	if err != nil {
		log.Fatalf("--from: %v", err)
	}
	to, err := parseDay(*toFlag, yesterday, loc)
	if err != nil {
		log.Fatalf("--to: %v", err)
	}
	if to.Before(from) {
		log.Fatal("--to must not be before --from")
	}
	if !to.Before(today) {
		log.Fatalf("--to must be a completed day (before %s)", today.Format(time.DateOnly))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	aggregator := activity.NewAggregator(logger, activityrepo.New(pool), clock, loc)

	var days int
	var rows int64
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		n, err := aggregator.AggregateDay(ctx, day)
		if err != nil {
			logger.Error("aggregation failed",
				slog.String("day", day.Format(time.DateOnly)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		days++
		rows += n
	}

	logger.Info("backfill completed",
		slog.Int("days", days),
		slog.Int64("rows_changed", rows),
	)
}

func parseDay(s string, fallback time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
