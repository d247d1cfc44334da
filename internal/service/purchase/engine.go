// Package purchase implements the purchase workflow: payment validation,
// subscription renewal and one-time map purchases with the upgrade discount.
package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/metrics"
)

// maxMonths bounds a single subscription purchase.
const maxMonths = 120

type userRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetPaymentDetails(ctx context.Context, userID int64) (*domain.PaymentDetails, error)
}

type catalogRepo interface {
	GetCityPrice(ctx context.Context, cityID int64) (*domain.CityPrice, error)
	GetMapByID(ctx context.Context, mapID int64) (*domain.Map, error)
}

type purchaseRepo interface {
	LockBuyer(ctx context.Context, userID int64) error
	GetByRequestID(ctx context.Context, requestID string) (*domain.Purchase, error)
	CreatePurchase(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error)
	GetLatestSubscriptionForUpdate(ctx context.Context, userID, cityID int64) (*domain.Subscription, error)
	CreateSubscription(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	ExtendSubscription(ctx context.Context, id int64, expiresAt time.Time) (*domain.Subscription, error)
	ListSnapshots(ctx context.Context, userID, mapID int64) ([]domain.PurchasedMapSnapshot, error)
	CreateSnapshot(ctx context.Context, s *domain.PurchasedMapSnapshot) (*domain.PurchasedMapSnapshot, error)
}

type paymentValidator interface {
	ValidateToken(token string) error
	ValidateDetails(details domain.PaymentDetails, now time.Time) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Engine processes purchases.
type Engine struct {
	log       *slog.Logger
	users     userRepo
	catalog   catalogRepo
	purchases purchaseRepo
	payments  paymentValidator
	tx        txManager
	clock     clockwork.Clock
	metrics   *metrics.Metrics
}

// NewEngine creates a new purchase engine.
func NewEngine(
	logger *slog.Logger,
	users userRepo,
	catalog catalogRepo,
	purchases purchaseRepo,
	payments paymentValidator,
	tx txManager,
	clock clockwork.Clock,
	m *metrics.Metrics,
) *Engine {
	return &Engine{
		log:       logger.With("service", "purchase"),
		users:     users,
		catalog:   catalog,
		purchases: purchases,
		payments:  payments,
		tx:        tx,
		clock:     clock,
		metrics:   m,
	}
}

// ProcessPurchase applies one purchase request. Failures are reported in
// Result.Reason, never as a Go error; all writes of a purchase commit
// together or not at all.
func (e *Engine) ProcessPurchase(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.log.ErrorContext(ctx, "purchase panicked",
				slog.Int64("user_id", req.UserID),
				slog.Any("panic", r))
			res = fail(ReasonInternalError, "internal error")
		}
		e.metrics.ObservePurchase(req.Type.String(), res.Reason.String())
	}()

	if r, ok := validate(req); !ok {
		return r
	}

	if req.RequestID != "" {
		if r, done := e.replay(ctx, req); done {
			return r
		}
	}

	if _, err := e.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(ReasonUserNotFound, "user %d not found", req.UserID)
		}
		return e.internal(ctx, req, fmt.Errorf("get user: %w", err))
	}

	if r, ok := e.checkPayment(ctx, req); !ok {
		return r
	}

	var err error
	switch req.Type {
	case domain.PurchaseTypeSubscription:
		res, err = e.subscribe(ctx, req)
	default:
		res, err = e.buyMap(ctx, req)
	}

	if err != nil {
		// A concurrent request with the same id won the insert.
		if errors.Is(err, domain.ErrAlreadyExists) && req.RequestID != "" {
			if r, done := e.replay(ctx, req); done {
				return r
			}
		}
		return e.internal(ctx, req, err)
	}

	if res.OK() {
		e.log.InfoContext(ctx, "purchase completed",
			slog.Int64("user_id", req.UserID),
			slog.Int64("purchase_id", res.PurchaseID),
			slog.String("type", req.Type.String()),
			slog.String("price_paid", res.PricePaid.StringFixed(2)),
			slog.Bool("renewal", res.IsRenewal))
	}
	return res
}

// validate checks the request shape before anything is read or charged.
func validate(req Request) (Result, bool) {
	switch req.Type {
	case domain.PurchaseTypeSubscription:
		if req.CityID == nil || *req.CityID <= 0 {
			return fail(ReasonInvalidRequest, "subscription requires a city"), false
		}
		if req.MonthsToAdd < 1 || req.MonthsToAdd > maxMonths {
			return fail(ReasonInvalidRequest, "months to add must be in [1, %d]", maxMonths), false
		}
	case domain.PurchaseTypeOneTime:
		if req.MapID == nil || *req.MapID <= 0 {
			return fail(ReasonInvalidRequest, "one-time purchase requires a map"), false
		}
	default:
		return fail(ReasonInvalidRequest, "unknown purchase type %q", req.Type), false
	}
	if len(req.RequestID) > 128 {
		return fail(ReasonInvalidRequest, "request id is too long"), false
	}
	return Result{}, true
}

// replay returns the recorded result of an earlier purchase with the same
// request id. done is false when no such purchase exists.
func (e *Engine) replay(ctx context.Context, req Request) (Result, bool) {
	p, err := e.purchases.GetByRequestID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Result{}, false
		}
		return e.internal(ctx, req, fmt.Errorf("get purchase by request id: %w", err)), true
	}
	if p.UserID != req.UserID {
		return fail(ReasonInvalidRequest, "request id %q was used by another user", req.RequestID), true
	}
	if !samePurchase(p, req) {
		return fail(ReasonInvalidRequest, "request id %q was used for a different purchase", req.RequestID), true
	}

	e.log.InfoContext(ctx, "purchase replayed",
		slog.Int64("user_id", req.UserID),
		slog.Int64("purchase_id", p.ID),
		slog.String("request_id", req.RequestID))
	return replayed(p), true
}

// samePurchase reports whether the recorded purchase p was made for the same
// order as req.
func samePurchase(p *domain.Purchase, req Request) bool {
	if p.Type != req.Type {
		return false
	}
	if req.Type == domain.PurchaseTypeSubscription {
		return p.CityID == *req.CityID && p.Months == req.MonthsToAdd
	}
	return p.MapID != nil && *p.MapID == *req.MapID
}

// checkPayment validates the user's stored card when there is one and the
// supplied token otherwise.
func (e *Engine) checkPayment(ctx context.Context, req Request) (Result, bool) {
	details, err := e.users.GetPaymentDetails(ctx, req.UserID)
	switch {
	case err == nil:
		if err := e.payments.ValidateDetails(*details, e.clock.Now()); err != nil {
			return fail(ReasonPaymentRejected, "%s", err.Error()), false
		}
	case errors.Is(err, domain.ErrNotFound):
		if err := e.payments.ValidateToken(req.PaymentToken); err != nil {
			return fail(ReasonPaymentRejected, "%s", err.Error()), false
		}
	default:
		return e.internal(ctx, req, fmt.Errorf("load payment details: %w", err)), false
	}
	return Result{}, true
}

func (e *Engine) internal(ctx context.Context, req Request, err error) Result {
	e.log.ErrorContext(ctx, "purchase failed",
		slog.Int64("user_id", req.UserID),
		slog.String("type", req.Type.String()),
		slog.String("error", err.Error()))
	return fail(ReasonInternalError, "%s", err.Error())
}

func requestIDPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
