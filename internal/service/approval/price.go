package approval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// SubmitPriceUpdate proposes a new price for a map. Content managers and
// above may submit; the current price is recorded as the old price.
func (s *Service) SubmitPriceUpdate(ctx context.Context, mapID int64, newPrice decimal.Decimal) (*domain.PendingPriceUpdate, error) {
	requesterID, err := caller(ctx, domain.UserRoleContentManager)
	if err != nil {
		return nil, err
	}
	if mapID <= 0 {
		return nil, domain.NewValidationError("mapId", "required")
	}
	if msg := priceProblem(newPrice); msg != "" {
		return nil, domain.NewValidationError("newPrice", msg)
	}

	m, err := s.content.GetMapByID(ctx, mapID)
	if err != nil {
		return nil, fmt.Errorf("approval.SubmitPriceUpdate: %w", err)
	}
	if m.Price.Equal(newPrice) {
		return nil, domain.NewValidationError("newPrice", "equals the current price")
	}

	u, err := s.pending.CreatePriceUpdate(ctx, &domain.PendingPriceUpdate{
		MapID:       mapID,
		RequesterID: requesterID,
		OldPrice:    m.Price,
		NewPrice:    newPrice,
		Status:      domain.ApprovalStatusOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("approval.SubmitPriceUpdate: %w", err)
	}

	s.log.InfoContext(ctx, "price update submitted",
		slog.Int64("update_id", u.ID),
		slog.Int64("map_id", mapID),
		slog.String("old_price", m.Price.StringFixed(2)),
		slog.String("new_price", newPrice.StringFixed(2)))
	return u, nil
}

// ApprovePriceUpdate applies the new price and marks the update APPROVED in
// one transaction. Only company managers may decide price updates.
func (s *Service) ApprovePriceUpdate(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error) {
	u, err := s.decidePriceUpdate(ctx, id, domain.ApprovalStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("approval.ApprovePriceUpdate: %w", err)
	}
	return u, nil
}

// DenyPriceUpdate marks the update DENIED. The map price is unchanged.
func (s *Service) DenyPriceUpdate(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error) {
	u, err := s.decidePriceUpdate(ctx, id, domain.ApprovalStatusDenied)
	if err != nil {
		return nil, fmt.Errorf("approval.DenyPriceUpdate: %w", err)
	}
	return u, nil
}

func (s *Service) decidePriceUpdate(ctx context.Context, id int64, status domain.ApprovalStatus) (*domain.PendingPriceUpdate, error) {
	managerID, err := caller(ctx, domain.UserRoleCompanyManager)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domain.NewValidationError("id", "required")
	}

	now := s.clock.Now()

	var upd *domain.PendingPriceUpdate
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.pending.GetPriceUpdateForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if u.Status != domain.ApprovalStatusOpen {
			return fmt.Errorf("price update %d is %s: %w", id, u.Status, domain.ErrAlreadyProcessed)
		}

		if status == domain.ApprovalStatusApproved {
			m, err := s.content.GetMapForUpdate(txCtx, u.MapID)
			if err != nil {
				return fmt.Errorf("lock map: %w", err)
			}
			if !m.Price.Equal(u.OldPrice) {
				s.log.WarnContext(txCtx, "map price changed since submission",
					slog.Int64("update_id", id),
					slog.String("submitted_old_price", u.OldPrice.StringFixed(2)),
					slog.String("current_price", m.Price.StringFixed(2)))
			}
			if err := s.content.UpdateMapPrice(txCtx, u.MapID, u.NewPrice); err != nil {
				return fmt.Errorf("update map price: %w", err)
			}
		}

		if err := s.pending.MarkPriceUpdateProcessed(txCtx, id, status, managerID, now); err != nil {
			return err
		}

		u.Status = status
		u.ProcessedAt = &now
		u.ProcessedBy = &managerID
		upd = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.decided(ctx, Decision{
		Kind:        KindPrice,
		ID:          upd.ID,
		RequesterID: upd.RequesterID,
		Status:      status,
		ProcessedBy: managerID,
		ProcessedAt: now,
	}, status == domain.ApprovalStatusApproved)
	return upd, nil
}
