package approval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// Submit records a proposed catalog change as an OPEN pending request.
// Content editors and above may submit.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.PendingRequest, error) {
	requesterID, err := caller(ctx, domain.UserRoleContentEditor)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	details := in.Details
	if in.ActionType == domain.ChangeActionDelete {
		details = nil
	}

	req, err := s.pending.CreateRequest(ctx, &domain.PendingRequest{
		RequesterID:    requesterID,
		ActionType:     in.ActionType,
		ContentType:    in.ContentType,
		TargetID:       in.TargetID,
		TargetName:     strings.TrimSpace(in.TargetName),
		ContentDetails: details,
		Status:         domain.ApprovalStatusOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("approval.Submit: %w", err)
	}

	s.log.InfoContext(ctx, "content change submitted",
		slog.Int64("request_id", req.ID),
		slog.Int64("requester_id", requesterID),
		slog.String("action", in.ActionType.String()),
		slog.String("content", in.ContentType.String()))
	return req, nil
}

// Approve applies an OPEN request to the catalog and marks it APPROVED in
// one transaction. A request that is no longer OPEN is left untouched and
// ErrAlreadyProcessed is returned. If applying fails the request stays OPEN.
func (s *Service) Approve(ctx context.Context, id int64) (*domain.PendingRequest, error) {
	req, err := s.decideRequest(ctx, id, domain.ApprovalStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("approval.Approve: %w", err)
	}
	return req, nil
}

// Deny marks an OPEN request DENIED without touching the catalog.
func (s *Service) Deny(ctx context.Context, id int64) (*domain.PendingRequest, error) {
	req, err := s.decideRequest(ctx, id, domain.ApprovalStatusDenied)
	if err != nil {
		return nil, fmt.Errorf("approval.Deny: %w", err)
	}
	return req, nil
}

func (s *Service) decideRequest(ctx context.Context, id int64, status domain.ApprovalStatus) (*domain.PendingRequest, error) {
	managerID, err := caller(ctx, domain.UserRoleContentManager)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domain.NewValidationError("id", "required")
	}

	now := s.clock.Now()

	var req *domain.PendingRequest
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.pending.GetRequestForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if r.Status != domain.ApprovalStatusOpen {
			return fmt.Errorf("request %d is %s: %w", id, r.Status, domain.ErrAlreadyProcessed)
		}

		if status == domain.ApprovalStatusApproved {
			if err := s.apply(txCtx, r); err != nil {
				return fmt.Errorf("apply %s %s: %w", r.ActionType, r.ContentType, err)
			}
		}

		if err := s.pending.MarkRequestProcessed(txCtx, id, status, managerID, now); err != nil {
			return err
		}

		r.Status = status
		r.ProcessedAt = &now
		r.ProcessedBy = &managerID
		req = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.decided(ctx, Decision{
		Kind:        KindContent,
		ID:          req.ID,
		RequesterID: req.RequesterID,
		Status:      status,
		ProcessedBy: managerID,
		ProcessedAt: now,
	}, status == domain.ApprovalStatusApproved)
	return req, nil
}

// apply performs the catalog mutation a request describes.
func (s *Service) apply(ctx context.Context, r *domain.PendingRequest) error {
	if r.ActionType == domain.ChangeActionDelete {
		return s.remove(ctx, r.ContentType, *r.TargetID)
	}

	content, err := decodeContent(r.ContentType, r.ContentDetails)
	if err != nil {
		return err
	}

	if r.ActionType == domain.ChangeActionEdit {
		return s.update(ctx, *r.TargetID, content)
	}

	newID, err := s.create(ctx, content)
	if err != nil {
		return err
	}
	s.log.InfoContext(ctx, "catalog entity created",
		slog.Int64("request_id", r.ID),
		slog.String("content", r.ContentType.String()),
		slog.Int64("id", newID))
	return nil
}

func (s *Service) create(ctx context.Context, content any) (int64, error) {
	switch c := content.(type) {
	case domain.CityContent:
		return s.content.CreateCity(ctx, c)
	case domain.MapContent:
		return s.content.CreateMap(ctx, c)
	case domain.SiteContent:
		return s.content.CreateSite(ctx, c)
	case domain.TourContent:
		return s.content.CreateTour(ctx, c)
	}
	return 0, fmt.Errorf("unsupported content %T", content)
}

func (s *Service) update(ctx context.Context, id int64, content any) error {
	switch c := content.(type) {
	case domain.CityContent:
		return s.content.UpdateCity(ctx, id, c)
	case domain.MapContent:
		return s.content.UpdateMap(ctx, id, c)
	case domain.SiteContent:
		return s.content.UpdateSite(ctx, id, c)
	case domain.TourContent:
		return s.content.UpdateTour(ctx, id, c)
	}
	return fmt.Errorf("unsupported content %T", content)
}

func (s *Service) remove(ctx context.Context, ct domain.ContentType, id int64) error {
	switch ct {
	case domain.ContentTypeCity:
		return s.content.DeleteCity(ctx, id)
	case domain.ContentTypeMap:
		return s.content.DeleteMap(ctx, id)
	case domain.ContentTypeSite:
		return s.content.DeleteSite(ctx, id)
	case domain.ContentTypeTour:
		return s.content.DeleteTour(ctx, id)
	}
	return fmt.Errorf("unsupported content type %q", ct)
}

// ListPending returns every OPEN content request and price update.
func (s *Service) ListPending(ctx context.Context) (*Pending, error) {
	if _, err := caller(ctx, domain.UserRoleContentManager); err != nil {
		return nil, err
	}

	requests, err := s.pending.ListOpenRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("approval.ListPending: %w", err)
	}
	updates, err := s.pending.ListOpenPriceUpdates(ctx)
	if err != nil {
		return nil, fmt.Errorf("approval.ListPending: %w", err)
	}
	return &Pending{Requests: requests, PriceUpdates: updates}, nil
}
