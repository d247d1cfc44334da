package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/protocol"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

// ErrSessionClosed is returned by Send after the session was closed.
var ErrSessionClosed = errors.New("session closed")

// Session is one client connection. Requests are handled on the connection's
// own goroutine, but notifications may be pushed from any goroutine, so every
// write goes through writeMu.
type Session struct {
	id           string
	conn         *websocket.Conn
	writeTimeout time.Duration
	limiter      *rate.Limiter

	writeMu sync.Mutex

	mu     sync.RWMutex
	userID int64
	role   domain.UserRole
	closed bool

	closeOnce sync.Once
}

func newSession(id string, conn *websocket.Conn, writeTimeout time.Duration, limiter *rate.Limiter) *Session {
	return &Session{
		id:           id,
		conn:         conn,
		writeTimeout: writeTimeout,
		limiter:      limiter,
	}
}

// ID returns the server-assigned session id.
func (s *Session) ID() string { return s.id }

// User returns the authenticated identity bound to the session.
func (s *Session) User() (int64, domain.UserRole, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.role, s.userID > 0
}

func (s *Session) bind(userID int64, role domain.UserRole) {
	s.mu.Lock()
	s.userID = userID
	s.role = role
	s.mu.Unlock()
}

// allow takes one token from the session's bucket. A session without a
// limiter is never throttled.
func (s *Session) allow() bool {
	return s.limiter == nil || s.limiter.Allow()
}

// context decorates ctx with the identity bound to the session.
func (s *Session) context(ctx context.Context) context.Context {
	ctx = ctxutil.WithSessionID(ctx, s.id)
	if userID, role, ok := s.User(); ok {
		ctx = ctxutil.WithUserID(ctx, userID)
		ctx = ctxutil.WithRole(ctx, role.String())
	}
	return ctx
}

// Send writes one envelope as a JSON text frame.
func (s *Session) Send(env protocol.Envelope) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed || s.conn == nil {
		return ErrSessionClosed
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.writeTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if err := s.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("write %s: %w", env.Action, err)
	}
	return nil
}

func (s *Session) ping() error {
	timeout := s.writeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(timeout))
}

// Close sends a close frame and tears the connection down. It is safe to call
// more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		if s.conn == nil {
			return
		}
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		err = s.conn.Close()
	})
	return err
}
