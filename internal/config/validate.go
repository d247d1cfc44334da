package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be in [4, 31] (got %d)", c.Auth.PasswordHashCost)
	}

	if c.Server.ConnectsPerMinute <= 0 {
		return fmt.Errorf("server.connects_per_minute must be > 0 (got %d)", c.Server.ConnectsPerMinute)
	}

	if err := c.Transport.validate(); err != nil {
		return fmt.Errorf("transport: %w", err)
	}

	if err := c.Scheduler.validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	if c.Catalog.CacheSize <= 0 {
		return fmt.Errorf("catalog.cache_size must be > 0 (got %d)", c.Catalog.CacheSize)
	}

	return nil
}

func (t *TransportConfig) validate() error {
	if t.ReadLimit <= 0 {
		return fmt.Errorf("read_limit must be > 0 (got %d)", t.ReadLimit)
	}
	if t.PingInterval >= t.PongWait {
		return fmt.Errorf("ping_interval (%s) must be shorter than pong_wait (%s)", t.PingInterval, t.PongWait)
	}
	if t.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be > 0 (got %v)", t.RequestsPerSecond)
	}
	if t.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 (got %d)", t.Burst)
	}
	return nil
}

func (s *SchedulerConfig) validate() error {
	if _, err := ParseDailySchedule(s.Schedule); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}

	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", s.Timezone, err)
	}
	s.Location = loc

	if s.RunTimeout <= 0 {
		return fmt.Errorf("run_timeout must be > 0 (got %s)", s.RunTimeout)
	}
	return nil
}

// ParseDailySchedule parses a standard five-field cron expression.
func ParseDailySchedule(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return sched, nil
}
