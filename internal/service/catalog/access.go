package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

// DownloadResult is the map a user may download and the version they are
// entitled to.
type DownloadResult struct {
	Map     *domain.Map
	Version int
}

// ViewMap returns a map and records a VIEW event for the caller.
func (s *Service) ViewMap(ctx context.Context, mapID int64) (*domain.Map, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if mapID <= 0 {
		return nil, domain.NewValidationError("mapId", "required")
	}

	m, err := s.catalog.GetMapByID(ctx, mapID)
	if err != nil {
		return nil, fmt.Errorf("catalog.ViewMap: %w", err)
	}

	s.record(ctx, userID, m, domain.MapEventView)
	return m, nil
}

// DownloadMap returns a map the caller owns a snapshot of or holds an active
// subscription for, and records a DOWNLOAD event. Staff roles may download
// any map. Owners of a snapshot get the newest version they paid for.
func (s *Service) DownloadMap(ctx context.Context, mapID int64) (*DownloadResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if mapID <= 0 {
		return nil, domain.NewValidationError("mapId", "required")
	}

	m, err := s.catalog.GetMapByID(ctx, mapID)
	if err != nil {
		return nil, fmt.Errorf("catalog.DownloadMap: %w", err)
	}

	version, err := s.entitledVersion(ctx, userID, m)
	if err != nil {
		return nil, fmt.Errorf("catalog.DownloadMap: %w", err)
	}

	s.record(ctx, userID, m, domain.MapEventDownload)
	return &DownloadResult{Map: m, Version: version}, nil
}

func (s *Service) entitledVersion(ctx context.Context, userID int64, m *domain.Map) (int, error) {
	if domain.UserRole(ctxutil.RoleFromCtx(ctx)).AtLeast(domain.UserRoleContentEditor) {
		return m.Version, nil
	}

	snapshots, err := s.entitlements.ListSnapshots(ctx, userID, m.ID)
	if err != nil {
		return 0, fmt.Errorf("list snapshots: %w", err)
	}
	if len(snapshots) > 0 {
		return snapshots[0].PurchasedVersion, nil
	}

	active, err := s.entitlements.HasActiveSubscription(ctx, userID, m.CityID, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("check subscription: %w", err)
	}
	if !active {
		return 0, domain.ErrForbidden
	}
	return m.Version, nil
}

// record stores an activity event. A failure is logged and does not fail
// the read that triggered it.
func (s *Service) record(ctx context.Context, userID int64, m *domain.Map, kind domain.MapEventKind) {
	err := s.events.RecordEvent(ctx, domain.MapEvent{
		UserID: userID,
		CityID: m.CityID,
		MapID:  m.ID,
		Kind:   kind,
	})
	if err != nil {
		s.log.WarnContext(ctx, "record map event failed",
			slog.Int64("map_id", m.ID),
			slog.String("kind", kind.String()),
			slog.String("error", err.Error()))
	}
}
