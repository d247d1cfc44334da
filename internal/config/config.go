package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Catalog   CatalogConfig   `yaml:"catalog"`
}

// ServerConfig holds HTTP server settings. The WebSocket endpoint and the
// health/metrics endpoints share this listener.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// ConnectsPerMinute caps WebSocket upgrade attempts per client IP.
	ConnectsPerMinute int `yaml:"connects_per_minute" env:"SERVER_CONNECTS_PER_MINUTE" env-default:"60"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// MigrateOnStart applies pending migrations before the server starts.
	MigrateOnStart bool `yaml:"migrate_on_start" env:"DATABASE_MIGRATE_ON_START" env-default:"false"`
}

// AuthConfig holds session token and password hashing settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"citymaps"`
	SessionTokenTTL  time.Duration `yaml:"session_token_ttl"  env:"AUTH_SESSION_TOKEN_TTL"  env-default:"12h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// TransportConfig holds WebSocket session settings.
type TransportConfig struct {
	Path              string        `yaml:"path"                env:"TRANSPORT_PATH"                env-default:"/ws"`
	ReadLimit         int64         `yaml:"read_limit"          env:"TRANSPORT_READ_LIMIT"          env-default:"1048576"`
	WriteTimeout      time.Duration `yaml:"write_timeout"       env:"TRANSPORT_WRITE_TIMEOUT"       env-default:"10s"`
	PingInterval      time.Duration `yaml:"ping_interval"       env:"TRANSPORT_PING_INTERVAL"       env-default:"30s"`
	PongWait          time.Duration `yaml:"pong_wait"           env:"TRANSPORT_PONG_WAIT"           env-default:"60s"`
	HandlerTimeout    time.Duration `yaml:"handler_timeout"     env:"TRANSPORT_HANDLER_TIMEOUT"     env-default:"30s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"TRANSPORT_REQUESTS_PER_SECOND" env-default:"20"`
	Burst             int           `yaml:"burst"               env:"TRANSPORT_BURST"               env-default:"40"`
	AllowedOriginsRaw string        `yaml:"allowed_origins"     env:"TRANSPORT_ALLOWED_ORIGINS"     env-default:"*"`
}

// AllowedOrigins splits the comma-separated origin list.
func (c TransportConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOriginsRaw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// SchedulerConfig holds settings of the daily activity aggregation job.
type SchedulerConfig struct {
	Enabled    bool          `yaml:"enabled"     env:"SCHEDULER_ENABLED"     env-default:"true"`
	Schedule   string        `yaml:"schedule"    env:"SCHEDULER_SCHEDULE"    env-default:"10 0 * * *"`
	Timezone   string        `yaml:"timezone"    env:"SCHEDULER_TIMEZONE"    env-default:"Local"`
	RunTimeout time.Duration `yaml:"run_timeout" env:"SCHEDULER_RUN_TIMEOUT" env-default:"5m"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// CatalogConfig holds catalog read-cache settings.
type CatalogConfig struct {
	CacheSize int           `yaml:"cache_size" env:"CATALOG_CACHE_SIZE" env-default:"256"`
	CacheTTL  time.Duration `yaml:"cache_ttl"  env:"CATALOG_CACHE_TTL"  env-default:"5m"`
}

// ClientConfig holds settings for the command-line client.
type ClientConfig struct {
	URL         string        `yaml:"url"          env:"CITYMAPS_URL"          env-default:"ws://127.0.0.1:8080/ws"`
	CallTimeout time.Duration `yaml:"call_timeout" env:"CITYMAPS_CALL_TIMEOUT" env-default:"15s"`
	Token       string        `yaml:"token"        env:"CITYMAPS_TOKEN"`
}
