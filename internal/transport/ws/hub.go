package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/protocol"
	"github.com/heartmarshall/citymaps-backend/internal/service/approval"
)

// Hub tracks open sessions and the users bound to them, and pushes
// notifications to those users.
type Hub struct {
	log *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	byUser   map[int64]map[string]*Session
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		log:      logger.With("component", "ws_hub"),
		sessions: make(map[string]*Session),
		byUser:   make(map[int64]map[string]*Session),
	}
}

// Count returns the number of open sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessions[s.id] = s
	if userID, _, ok := s.User(); ok {
		h.indexLocked(userID, s)
	}
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.sessions, s.id)
	if userID, _, ok := s.User(); ok {
		h.unindexLocked(userID, s)
	}
}

// bind attaches an authenticated user to the session, moving it out of the
// index of any user it was bound to before.
func (h *Hub) bind(s *Session, user *domain.User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, _, ok := s.User(); ok {
		h.unindexLocked(prev, s)
	}
	s.bind(user.ID, user.Role)
	if _, open := h.sessions[s.id]; open {
		h.indexLocked(user.ID, s)
	}
}

func (h *Hub) indexLocked(userID int64, s *Session) {
	set, ok := h.byUser[userID]
	if !ok {
		set = make(map[string]*Session)
		h.byUser[userID] = set
	}
	set[s.id] = s
}

func (h *Hub) unindexLocked(userID int64, s *Session) {
	set := h.byUser[userID]
	delete(set, s.id)
	if len(set) == 0 {
		delete(h.byUser, userID)
	}
}

// Push sends a notification to every session of userID and returns how many
// sessions received it.
func (h *Hub) Push(ctx context.Context, userID int64, n protocol.Notification) int {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.byUser[userID]))
	for _, s := range h.byUser[userID] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return 0
	}

	env, err := protocol.NewEnvelope("", protocol.ActionNotification, n)
	if err != nil {
		h.log.ErrorContext(ctx, "build notification", slog.String("error", err.Error()))
		return 0
	}

	delivered := 0
	for _, s := range targets {
		if err := s.Send(env); err != nil {
			h.log.WarnContext(ctx, "push notification",
				slog.String("session_id", s.id),
				slog.Int64("user_id", userID),
				slog.String("error", err.Error()),
			)
			continue
		}
		delivered++
	}
	return delivered
}

// NotifyDecision tells the requester of a pending item that it was decided.
func (h *Hub) NotifyDecision(ctx context.Context, d approval.Decision) {
	data, err := json.Marshal(protocol.DecisionResponse{
		Kind:   protocol.PendingKind(d.Kind),
		ID:     d.ID,
		Status: d.Status.String(),
	})
	if err != nil {
		h.log.ErrorContext(ctx, "marshal decision", slog.String("error", err.Error()))
		return
	}

	h.Push(ctx, d.RequesterID, protocol.Notification{
		Kind:    protocol.NotificationApprovalDecided,
		Message: fmt.Sprintf("%s request %d was %s", strings.ToLower(string(d.Kind)), d.ID, strings.ToLower(d.Status.String())),
		Data:    data,
	})
}

// CloseAll closes every open session. Their connection goroutines then exit
// and remove themselves.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	all := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		all = append(all, s)
	}
	h.mu.RUnlock()

	for _, s := range all {
		_ = s.Close()
	}
}
