package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/citymaps-backend/internal/protocol"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

// Recovery turns a panic in an HTTP handler into a 500 carrying an
// INTERNAL_ERROR payload, the same shape ERROR envelopes use. Panics inside
// WebSocket handlers never reach it: the dispatcher recovers those itself.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(protocol.ErrorPayload{
					Reason:  protocol.ReasonInternalError,
					Message: "internal server error",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
