package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/citymaps-backend/internal/config"
	"github.com/heartmarshall/citymaps-backend/internal/metrics"
	"github.com/heartmarshall/citymaps-backend/internal/service/auth"
	"github.com/heartmarshall/citymaps-backend/internal/transport/middleware"
	"github.com/heartmarshall/citymaps-backend/internal/transport/rest"
)

type routerDeps struct {
	cfg         *config.Config
	logger      *slog.Logger
	metrics     *metrics.Metrics
	auth        *auth.Service
	limiter     *middleware.RateLimiter
	health      *rest.HealthHandler
	sessionsAPI http.Handler
}

// newRouter mounts the WebSocket endpoint and the operational endpoints on
// one mux.
func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	var limit middleware.Middleware
	if d.limiter != nil {
		limit = d.limiter.Limit(d.cfg.Server.ConnectsPerMinute)
	}
	upgrade := middleware.Chain(limit, middleware.Auth(d.auth))
	mux.Handle("GET "+d.cfg.Transport.Path, upgrade(d.sessionsAPI))

	cors := middleware.CORS(d.cfg.Transport.AllowedOrigins())
	mux.Handle("GET /live", cors(http.HandlerFunc(d.health.Live)))
	mux.Handle("GET /ready", cors(http.HandlerFunc(d.health.Ready)))
	mux.Handle("GET /health", cors(http.HandlerFunc(d.health.Health)))
	mux.Handle("GET /metrics", d.metrics.Handler())

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(d.logger),
		middleware.Logger(d.logger),
		d.metrics.InstrumentHandler,
	)(mux)
}
