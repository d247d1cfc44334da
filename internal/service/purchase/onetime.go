package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var errAlreadyOwned = errors.New("map version already owned")

// buyMap sells the current version of a map. Owners of an older version pay
// the upgrade price. Every purchase creates an immutable snapshot of the
// version bought.
func (e *Engine) buyMap(ctx context.Context, req Request) (Result, error) {
	mapID := *req.MapID

	m, err := e.catalog.GetMapByID(ctx, mapID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(ReasonInvalidRequest, "map %d not found", mapID), nil
		}
		return Result{}, fmt.Errorf("get map: %w", err)
	}
	if !m.Price.IsPositive() {
		return fail(ReasonInvalidPrice, "map %q has no valid price", m.Name), nil
	}

	var res Result
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := e.purchases.LockBuyer(txCtx, req.UserID); err != nil {
			return fmt.Errorf("lock buyer: %w", err)
		}

		owned, err := e.purchases.ListSnapshots(txCtx, req.UserID, m.ID)
		if err != nil {
			return fmt.Errorf("list snapshots: %w", err)
		}
		for _, s := range owned {
			if s.PurchasedVersion == m.Version {
				return errAlreadyOwned
			}
		}

		price := m.Price
		if len(owned) > 0 {
			price = m.Price.Mul(domain.UpgradeDiscount).Round(2)
		}

		snap, err := e.purchases.CreateSnapshot(txCtx, &domain.PurchasedMapSnapshot{
			UserID:           req.UserID,
			OriginalMapID:    m.ID,
			PurchasedVersion: m.Version,
			PricePaid:        price,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return errAlreadyOwned
			}
			return fmt.Errorf("create snapshot: %w", err)
		}

		mapRef := m.ID
		p, err := e.purchases.CreatePurchase(txCtx, &domain.Purchase{
			RequestID:  requestIDPtr(req.RequestID),
			UserID:     req.UserID,
			CityID:     m.CityID,
			MapID:      &mapRef,
			Type:       domain.PurchaseTypeOneTime,
			PricePaid:  price,
			SnapshotID: &snap.ID,
		})
		if err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		res = Result{
			Reason:     ReasonSuccess,
			PurchaseID: p.ID,
			PricePaid:  p.PricePaid,
			SnapshotID: &snap.ID,
		}
		return nil
	})

	switch {
	case errors.Is(err, errAlreadyOwned):
		return fail(ReasonAlreadyOwned, "version %d of map %q is already owned", m.Version, m.Name), nil
	case err != nil:
		return Result{}, err
	}
	return res, nil
}
