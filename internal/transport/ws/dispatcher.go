// Package ws serves the envelope protocol over WebSocket connections.
package ws

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/metrics"
	"github.com/heartmarshall/citymaps-backend/internal/protocol"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

// HandlerFunc handles one request envelope. The returned payload becomes the
// body of the paired response; a non-nil error becomes an ERROR envelope.
type HandlerFunc func(ctx context.Context, s *Session, env protocol.Envelope) (any, error)

type route struct {
	handle HandlerFunc
	public bool
}

// Dispatcher routes request envelopes to their handlers.
type Dispatcher struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	routes  map[protocol.Action]route
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher(logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		log:     logger.With("component", "dispatcher"),
		metrics: m,
		routes:  make(map[protocol.Action]route),
	}
}

// Register adds a handler that requires an authenticated session.
// It panics if action is not a request tag or is already registered.
func (d *Dispatcher) Register(action protocol.Action, h HandlerFunc) {
	d.register(action, h, false)
}

// RegisterPublic adds a handler that anonymous sessions may call.
func (d *Dispatcher) RegisterPublic(action protocol.Action, h HandlerFunc) {
	d.register(action, h, true)
}

func (d *Dispatcher) register(action protocol.Action, h HandlerFunc, public bool) {
	if !action.IsRequest() {
		panic(fmt.Sprintf("ws: cannot register %q: not a request action", action))
	}
	if h == nil {
		panic(fmt.Sprintf("ws: nil handler for %s", action))
	}
	if _, dup := d.routes[action]; dup {
		panic(fmt.Sprintf("ws: duplicate handler for %s", action))
	}
	d.routes[action] = route{handle: h, public: public}
}

// Actions returns the registered request actions.
func (d *Dispatcher) Actions() []protocol.Action {
	out := make([]protocol.Action, 0, len(d.routes))
	for a := range d.routes {
		out = append(out, a)
	}
	return out
}

// Dispatch runs the handler registered for env.Action and returns exactly
// one envelope answering it: the paired response or ERROR.
func (d *Dispatcher) Dispatch(ctx context.Context, s *Session, env protocol.Envelope) protocol.Envelope {
	start := time.Now()
	label := env.Action.String()
	reason := protocol.ReasonSuccess
	defer func() {
		d.metrics.ObserveDispatch(label, reason.String(), time.Since(start))
	}()

	fail := func(r protocol.Reason, msg string) protocol.Envelope {
		reason = r
		return protocol.NewError(env.ID, r, msg)
	}

	r, ok := d.routes[env.Action]
	if !ok {
		label = "unknown"
		return fail(protocol.ReasonUnknownAction, fmt.Sprintf("unknown action: %s", env.Action))
	}
	if !s.allow() {
		return fail(protocol.ReasonRateLimited, "too many requests")
	}
	if _, _, authed := s.User(); !r.public && !authed {
		return fail(protocol.ReasonUnauthorized, "authentication required")
	}

	ctx = ctxutil.WithRequestID(s.context(ctx), env.ID)

	payload, err := d.invoke(ctx, r.handle, s, env)
	if err != nil {
		return fail(present(ctx, d.log, env.Action, err))
	}

	resp, err := protocol.NewEnvelope(env.ID, env.Action.Response(), payload)
	if err != nil {
		d.log.ErrorContext(ctx, "encode response",
			slog.String("action", label),
			slog.String("error", err.Error()),
		)
		return fail(protocol.ReasonInternalError, "internal error")
	}
	return resp
}

func (d *Dispatcher) invoke(ctx context.Context, h HandlerFunc, s *Session, env protocol.Envelope) (payload any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.ErrorContext(ctx, "panic recovered",
				slog.Any("error", rec),
				slog.String("stack", string(debug.Stack())),
				slog.String("action", env.Action.String()),
				slog.String("request_id", env.ID),
			)
			payload, err = nil, errPanic
		}
	}()
	return h(ctx, s, env)
}
