package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/citymaps-backend/internal/config"
	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/metrics"
	"github.com/heartmarshall/citymaps-backend/internal/protocol"
	"github.com/heartmarshall/citymaps-backend/internal/transport/middleware"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

// Server upgrades HTTP requests to WebSocket sessions and serves each
// session on the goroutine net/http started for it.
type Server struct {
	log        *slog.Logger
	cfg        config.TransportConfig
	dispatcher *Dispatcher
	hub        *Hub
	metrics    *metrics.Metrics
	upgrader   websocket.Upgrader

	wg sync.WaitGroup
}

// NewServer creates a Server.
func NewServer(logger *slog.Logger, cfg config.TransportConfig, d *Dispatcher, hub *Hub, m *metrics.Metrics) *Server {
	origins := cfg.AllowedOrigins()
	return &Server{
		log:        logger.With("component", "ws_server"),
		cfg:        cfg,
		dispatcher: d,
		hub:        hub,
		metrics:    m,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.OriginAllowed(origin, origins)
			},
		},
	}
}

// ServeHTTP upgrades the request. A user placed in the request context by the
// auth middleware is bound to the new session.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.DebugContext(r.Context(), "upgrade failed", slog.String("error", err.Error()))
		return
	}

	var limiter *rate.Limiter
	if s.cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSecond), max(s.cfg.Burst, 1))
	}
	sess := newSession(uuid.NewString(), conn, s.cfg.WriteTimeout, limiter)
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		sess.bind(userID, domain.UserRole(ctxutil.RoleFromCtx(r.Context())))
	}

	s.wg.Add(1)
	defer s.wg.Done()

	s.serveConn(context.WithoutCancel(r.Context()), sess)
}

func (s *Server) serveConn(ctx context.Context, sess *Session) {
	s.hub.add(sess)
	s.metrics.SessionOpened()
	userID, _, _ := sess.User()
	s.log.InfoContext(ctx, "session opened",
		slog.String("session_id", sess.id),
		slog.Int64("user_id", userID),
	)

	done := make(chan struct{})
	defer func() {
		close(done)
		s.hub.remove(sess)
		_ = sess.Close()
		s.metrics.SessionClosed()
		s.log.InfoContext(ctx, "session closed", slog.String("session_id", sess.id))
	}()

	conn := sess.conn
	if s.cfg.ReadLimit > 0 {
		conn.SetReadLimit(s.cfg.ReadLimit)
	}
	s.extendDeadline(conn)
	conn.SetPongHandler(func(string) error {
		s.extendDeadline(conn)
		return nil
	})

	go s.keepAlive(sess, done)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!errors.Is(err, websocket.ErrReadLimit) {
				s.log.DebugContext(ctx, "read failed",
					slog.String("session_id", sess.id),
					slog.String("error", err.Error()),
				)
			}
			return
		}
		s.extendDeadline(conn)

		var resp protocol.Envelope
		if msgType != websocket.TextMessage {
			resp = protocol.NewError("", protocol.ReasonInvalidRequest, "expected a text frame")
		} else {
			resp = s.handle(ctx, sess, data)
		}

		if err := sess.Send(resp); err != nil {
			s.log.DebugContext(ctx, "write failed",
				slog.String("session_id", sess.id),
				slog.String("error", err.Error()),
			)
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, sess *Session, data []byte) protocol.Envelope {
	var env protocol.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return protocol.NewError("", protocol.ReasonInvalidRequest, "malformed envelope")
	}

	if s.cfg.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.HandlerTimeout)
		defer cancel()
	}
	return s.dispatcher.Dispatch(ctx, sess, env)
}

// extendDeadline pushes the read deadline out by PongWait. Without a PongWait
// reads never time out.
func (s *Server) extendDeadline(conn *websocket.Conn) {
	if s.cfg.PongWait > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	}
}

func (s *Server) keepAlive(sess *Session, done <-chan struct{}) {
	if s.cfg.PingInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := sess.ping(); err != nil {
				_ = sess.Close()
				return
			}
		}
	}
}

// Shutdown closes every session and waits for their goroutines to exit or
// for ctx to end. http.Server.Shutdown does not track hijacked connections,
// so this must be called alongside it.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.CloseAll()

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
