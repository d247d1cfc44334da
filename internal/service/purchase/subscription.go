package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// subscribe sells MonthsToAdd months of access to a city. A subscription that
// is still active is extended from its current expiry and the purchase is
// recorded as a renewal; otherwise a new subscription starts now.
func (e *Engine) subscribe(ctx context.Context, req Request) (Result, error) {
	cityID := *req.CityID

	city, err := e.catalog.GetCityPrice(ctx, cityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(ReasonInvalidRequest, "city %d not found", cityID), nil
		}
		return Result{}, fmt.Errorf("get city price: %w", err)
	}
	if !city.Price.IsPositive() {
		return fail(ReasonInvalidPrice, "city %q has no valid subscription price", city.Name), nil
	}

	price := city.Price.Mul(decimal.NewFromInt(int64(req.MonthsToAdd))).Round(2)
	now := e.clock.Now()

	var res Result
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := e.purchases.LockBuyer(txCtx, req.UserID); err != nil {
			return fmt.Errorf("lock buyer: %w", err)
		}

		sub, renewal, err := e.applySubscription(txCtx, req, now)
		if err != nil {
			return err
		}

		expiresAt := sub.ExpiresAt
		p, err := e.purchases.CreatePurchase(txCtx, &domain.Purchase{
			RequestID:      requestIDPtr(req.RequestID),
			UserID:         req.UserID,
			CityID:         cityID,
			Type:           domain.PurchaseTypeSubscription,
			PricePaid:      price,
			Months:         req.MonthsToAdd,
			IsRenewal:      renewal,
			SubscriptionID: &sub.ID,
			ExpiresAt:      &expiresAt,
		})
		if err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		res = Result{
			Reason:         ReasonSuccess,
			PurchaseID:     p.ID,
			PricePaid:      p.PricePaid,
			IsRenewal:      renewal,
			SubscriptionID: &sub.ID,
			ExpiresAt:      &expiresAt,
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// applySubscription extends the user's active subscription to the city or
// creates a new one. It reports whether the purchase is a renewal.
func (e *Engine) applySubscription(ctx context.Context, req Request, now time.Time) (*domain.Subscription, bool, error) {
	current, err := e.purchases.GetLatestSubscriptionForUpdate(ctx, req.UserID, *req.CityID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get subscription: %w", err)
	}

	if current != nil && current.ActiveAt(now) {
		expiresAt := domain.AddMonths(current.ExpiresAt, req.MonthsToAdd)
		sub, err := e.purchases.ExtendSubscription(ctx, current.ID, expiresAt)
		if err != nil {
			return nil, false, fmt.Errorf("extend subscription: %w", err)
		}
		return sub, true, nil
	}

	sub, err := e.purchases.CreateSubscription(ctx, &domain.Subscription{
		UserID:    req.UserID,
		CityID:    *req.CityID,
		StartsAt:  now,
		ExpiresAt: domain.AddMonths(now, req.MonthsToAdd),
	})
	if err != nil {
		return nil, false, fmt.Errorf("create subscription: %w", err)
	}
	return sub, false, nil
}
