// Package client talks to the catalog server over the envelope protocol.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/citymaps-backend/internal/protocol"
)

var (
	// ErrTransport means the request could not be sent or the connection
	// dropped before the response arrived.
	ErrTransport = errors.New("transport error")
	// ErrTimeout means no response arrived before the call deadline.
	ErrTimeout = errors.New("call timed out")
	// ErrClosed is returned by calls made after the bridge was closed.
	ErrClosed = errors.New("bridge closed")
	// ErrUnexpectedResponse means the server answered with an action that
	// does not pair with the request.
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// RemoteError is an ERROR envelope returned by the server.
type RemoteError struct {
	Reason  protocol.Reason
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// Options configures a Bridge.
type Options struct {
	// Token is sent as a Bearer token on the upgrade request.
	Token string
	// Timeout bounds every call that has no earlier context deadline.
	// Zero means calls wait for the context only.
	Timeout time.Duration
	// OnNotification receives server pushes. It runs on the read goroutine
	// and must not call back into the Bridge.
	OnNotification func(protocol.Notification)
	Logger         *slog.Logger
}

// Bridge turns the asynchronous message stream into blocking calls. At most
// one call is in flight per Bridge; later callers wait for the slot.
type Bridge struct {
	conn    *websocket.Conn
	timeout time.Duration
	notify  func(protocol.Notification)
	log     *slog.Logger

	slot    chan struct{}
	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan protocol.Envelope
	failed    bool

	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the server at url and starts the read loop.
func Dial(ctx context.Context, url string, opts Options) (*Bridge, error) {
	header := http.Header{}
	if opts.Token != "" {
		header.Set("Authorization", "Bearer "+opts.Token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: dial %s: %s", ErrTransport, url, resp.Status)
		}
		return nil, fmt.Errorf("%w: dial %s: %v", ErrTransport, url, err)
	}
	return New(conn, opts), nil
}

// New wraps an established connection.
func New(conn *websocket.Conn, opts Options) *Bridge {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bridge{
		conn:    conn,
		timeout: opts.Timeout,
		notify:  opts.OnNotification,
		log:     logger.With("component", "bridge"),
		slot:    make(chan struct{}, 1),
		pending: make(map[string]chan protocol.Envelope),
		done:    make(chan struct{}),
	}
	go b.readLoop()
	return b
}

// Done is closed once the bridge can no longer serve calls.
func (b *Bridge) Done() <-chan struct{} { return b.done }

// Call sends a request and blocks until the correlated response arrives. The
// response payload is decoded into out when out is non-nil.
func (b *Bridge) Call(ctx context.Context, action protocol.Action, payload, out any) error {
	if !action.IsRequest() {
		return fmt.Errorf("call %s: not a request action", action)
	}

	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	select {
	case b.slot <- struct{}{}:
	case <-ctx.Done():
		return callErr(ctx, action)
	case <-b.done:
		return ErrClosed
	}
	defer func() { <-b.slot }()

	id := uuid.NewString()
	env, err := protocol.NewEnvelope(id, action, payload)
	if err != nil {
		return fmt.Errorf("call %s: %w", action, err)
	}

	ch, ok := b.register(id)
	if !ok {
		return ErrClosed
	}

	if err := b.write(ctx, env); err != nil {
		b.unregister(id)
		return fmt.Errorf("%w: send %s: %v", ErrTransport, action, err)
	}

	var resp protocol.Envelope
	select {
	case r, ok := <-ch:
		if !ok {
			return fmt.Errorf("%w: connection lost awaiting %s", ErrTransport, action.Response())
		}
		resp = r
	case <-ctx.Done():
		b.unregister(id)
		return callErr(ctx, action)
	}

	if p, isErr := resp.Err(); isErr {
		return &RemoteError{Reason: p.Reason, Message: p.Message}
	}
	if !action.Answers(resp.Action) {
		return fmt.Errorf("%w: %s answered with %s", ErrUnexpectedResponse, action, resp.Action)
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

func callErr(ctx context.Context, action protocol.Action) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, action)
	}
	return ctx.Err()
}

func (b *Bridge) register(id string) (chan protocol.Envelope, bool) {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	if b.failed {
		return nil, false
	}
	ch := make(chan protocol.Envelope, 1)
	b.pending[id] = ch
	return ch, true
}

func (b *Bridge) unregister(id string) {
	b.pendingMu.Lock()
	delete(b.pending, id)
	b.pendingMu.Unlock()
}

func (b *Bridge) write(ctx context.Context, env protocol.Envelope) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	deadline, _ := ctx.Deadline()
	_ = b.conn.SetWriteDeadline(deadline)
	return b.conn.WriteJSON(env)
}

func (b *Bridge) readLoop() {
	defer b.shutdown()

	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				b.log.Debug("read loop stopped", slog.String("error", err.Error()))
			}
			return
		}
		b.handleMessage(data)
	}
}

func (b *Bridge) handleMessage(data []byte) {
	var env protocol.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		b.log.Debug("drop malformed message", slog.String("error", err.Error()))
		return
	}

	if env.ID == "" {
		b.handlePush(env)
		return
	}

	b.pendingMu.Lock()
	ch := b.pending[env.ID]
	delete(b.pending, env.ID)
	b.pendingMu.Unlock()

	if ch == nil {
		b.log.Debug("drop uncorrelated response",
			slog.String("id", env.ID),
			slog.String("action", env.Action.String()),
		)
		return
	}
	ch <- env
}

func (b *Bridge) handlePush(env protocol.Envelope) {
	if env.Action != protocol.ActionNotification {
		if p, isErr := env.Err(); isErr {
			b.log.Warn("server error without request id",
				slog.String("reason", string(p.Reason)),
				slog.String("message", p.Message),
			)
		}
		return
	}
	if b.notify == nil {
		return
	}

	var n protocol.Notification
	if err := env.Decode(&n); err != nil {
		b.log.Debug("drop malformed notification", slog.String("error", err.Error()))
		return
	}
	b.notify(n)
}

// shutdown marks the bridge closed and fails every waiting call.
func (b *Bridge) shutdown() {
	b.closeOnce.Do(func() { close(b.done) })

	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	b.failed = true
	for id, ch := range b.pending {
		delete(b.pending, id)
		close(ch)
	}
}

// Close closes the connection. Calls waiting for a response fail with
// ErrTransport; later calls fail with ErrClosed.
func (b *Bridge) Close() error {
	b.shutdown()

	b.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = b.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	b.writeMu.Unlock()

	return b.conn.Close()
}
