// Package approval implements the content and price approval workflow.
// Every pending item moves from OPEN to a terminal status exactly once, and
// an approved change is applied to the catalog in the same transaction that
// marks it approved.
package approval

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

type approvalRepo interface {
	CreateRequest(ctx context.Context, p *domain.PendingRequest) (*domain.PendingRequest, error)
	GetRequestForUpdate(ctx context.Context, id int64) (*domain.PendingRequest, error)
	MarkRequestProcessed(ctx context.Context, id int64, status domain.ApprovalStatus, by int64, at time.Time) error
	ListOpenRequests(ctx context.Context) ([]domain.PendingRequest, error)

	CreatePriceUpdate(ctx context.Context, u *domain.PendingPriceUpdate) (*domain.PendingPriceUpdate, error)
	GetPriceUpdateForUpdate(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error)
	MarkPriceUpdateProcessed(ctx context.Context, id int64, status domain.ApprovalStatus, by int64, at time.Time) error
	ListOpenPriceUpdates(ctx context.Context) ([]domain.PendingPriceUpdate, error)
}

type contentRepo interface {
	GetMapByID(ctx context.Context, mapID int64) (*domain.Map, error)
	GetMapForUpdate(ctx context.Context, mapID int64) (*domain.Map, error)
	UpdateMapPrice(ctx context.Context, id int64, price decimal.Decimal) error

	CreateCity(ctx context.Context, c domain.CityContent) (int64, error)
	UpdateCity(ctx context.Context, id int64, c domain.CityContent) error
	DeleteCity(ctx context.Context, id int64) error
	CreateMap(ctx context.Context, m domain.MapContent) (int64, error)
	UpdateMap(ctx context.Context, id int64, m domain.MapContent) error
	DeleteMap(ctx context.Context, id int64) error
	CreateSite(ctx context.Context, s domain.SiteContent) (int64, error)
	UpdateSite(ctx context.Context, id int64, s domain.SiteContent) error
	DeleteSite(ctx context.Context, id int64) error
	CreateTour(ctx context.Context, t domain.TourContent) (int64, error)
	UpdateTour(ctx context.Context, id int64, t domain.TourContent) error
	DeleteTour(ctx context.Context, id int64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type cacheInvalidator interface {
	Invalidate()
}

type notifier interface {
	NotifyDecision(ctx context.Context, d Decision)
}

// Kind selects the queue a decision targets.
type Kind string

const (
	KindContent Kind = "CONTENT"
	KindPrice   Kind = "PRICE"
)

// Decision describes a pending item that reached a terminal status.
type Decision struct {
	Kind        Kind
	ID          int64
	RequesterID int64
	Status      domain.ApprovalStatus
	ProcessedBy int64
	ProcessedAt time.Time
}

// Pending lists every item still waiting for a decision.
type Pending struct {
	Requests     []domain.PendingRequest
	PriceUpdates []domain.PendingPriceUpdate
}

// Service implements the approval workflow.
type Service struct {
	log      *slog.Logger
	pending  approvalRepo
	content  contentRepo
	tx       txManager
	clock    clockwork.Clock
	cache    cacheInvalidator
	notifier notifier
}

// NewService creates a new approval service. cache and notify may be nil.
func NewService(
	logger *slog.Logger,
	pending approvalRepo,
	content contentRepo,
	tx txManager,
	clock clockwork.Clock,
	cache cacheInvalidator,
	notify notifier,
) *Service {
	return &Service{
		log:      logger.With("service", "approval"),
		pending:  pending,
		content:  content,
		tx:       tx,
		clock:    clock,
		cache:    cache,
		notifier: notify,
	}
}

// caller returns the user id from ctx after checking the role against min.
func caller(ctx context.Context, min domain.UserRole) (int64, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if !domain.UserRole(ctxutil.RoleFromCtx(ctx)).AtLeast(min) {
		return 0, domain.ErrForbidden
	}
	return userID, nil
}

// decided runs after a decision commits.
func (s *Service) decided(ctx context.Context, d Decision, catalogChanged bool) {
	if catalogChanged && s.cache != nil {
		s.cache.Invalidate()
	}

	s.log.InfoContext(ctx, "pending item decided",
		slog.String("kind", string(d.Kind)),
		slog.Int64("id", d.ID),
		slog.String("status", d.Status.String()),
		slog.Int64("processed_by", d.ProcessedBy))

	if s.notifier != nil {
		s.notifier.NotifyDecision(ctx, d)
	}
}
