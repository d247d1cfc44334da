package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/heartmarshall/citymaps-backend/internal/metrics"
)

// ErrAlreadyStarted is returned by Start on a scheduler that was started before.
var ErrAlreadyStarted = errors.New("scheduler already started")

type dayAggregator interface {
	AggregateDay(ctx context.Context, date time.Time) (int64, error)
}

// SchedulerConfig holds the knobs of the daily aggregation job.
type SchedulerConfig struct {
	Schedule   cron.Schedule
	Location   *time.Location
	RunTimeout time.Duration
}

// Scheduler runs AggregateDay for the previous calendar day at every
// occurrence of a cron schedule. Fire times are computed from the previous
// fire time, not from when a run finished, so runs stay aligned to the wall
// clock. A failed or panicking run is logged and the next one is scheduled
// as usual.
type Scheduler struct {
	log     *slog.Logger
	agg     dayAggregator
	cfg     SchedulerConfig
	clock   clockwork.Clock
	metrics *metrics.Metrics

	mu       sync.Mutex
	started  bool
	cancel   context.CancelFunc
	stopped  chan struct{}
	stopOnce sync.Once

	lastRun time.Time
	lastErr error
}

// NewScheduler creates a stopped scheduler. A nil Location means UTC.
func NewScheduler(logger *slog.Logger, agg dayAggregator, cfg SchedulerConfig, clock clockwork.Clock, m *metrics.Metrics) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Scheduler{
		log:     logger.With("component", "activity_scheduler"),
		agg:     agg,
		cfg:     cfg,
		clock:   clock,
		metrics: m,
		stopped: make(chan struct{}),
	}
}

// Start launches the scheduling goroutine. It returns immediately; the
// scheduler runs until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	next := s.cfg.Schedule.Next(s.clock.Now().In(s.cfg.Location))
	s.log.InfoContext(ctx, "scheduler started", slog.Time("next_run", next))

	go s.loop(ctx, next)
	return nil
}

// Stop cancels the scheduler and waits for an in-flight run to finish.
// Safe to call multiple times and before Start.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		started := s.started
		s.started = true
		cancel := s.cancel
		s.mu.Unlock()

		if !started {
			close(s.stopped)
			return
		}
		cancel()
		<-s.stopped
		s.log.Info("scheduler stopped")
	})
}

// LastRun returns when the latest run finished and its error. The time is
// zero before the first run.
func (s *Scheduler) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

// Done returns a channel that is closed when the scheduler has fully stopped.
func (s *Scheduler) Done() <-chan struct{} {
	return s.stopped
}

func (s *Scheduler) loop(ctx context.Context, next time.Time) {
	defer close(s.stopped)

	for {
		timer := s.clock.NewTimer(next.Sub(s.clock.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.Chan():
		}

		s.runOnce(ctx, next)
		next = s.cfg.Schedule.Next(next)
	}
}

// runOnce aggregates the day before firedAt.
func (s *Scheduler) runOnce(ctx context.Context, firedAt time.Time) {
	day := firedAt.In(s.cfg.Location).AddDate(0, 0, -1)
	started := s.clock.Now()

	var (
		rows int64
		err  error
	)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		now := s.clock.Now()
		elapsed := now.Sub(started)
		s.metrics.ObserveAggregation(err, elapsed, now)

		s.mu.Lock()
		s.lastRun, s.lastErr = now, err
		s.mu.Unlock()

		if err != nil {
			s.log.ErrorContext(ctx, "daily aggregation failed",
				slog.String("day", day.Format(time.DateOnly)),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()))
			return
		}
		s.log.InfoContext(ctx, "daily aggregation done",
			slog.String("day", day.Format(time.DateOnly)),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed))
	}()

	runCtx := ctx
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	rows, err = s.agg.AggregateDay(runCtx, day)
}
