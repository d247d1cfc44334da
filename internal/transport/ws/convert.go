package ws

import (
	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/protocol"
	"github.com/heartmarshall/citymaps-backend/internal/service/auth"
	"github.com/heartmarshall/citymaps-backend/internal/service/purchase"
)

func toAuthResponse(r *auth.AuthResult) protocol.AuthResponse {
	return protocol.AuthResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		User:      toUser(r.User),
	}
}

func toUser(u *domain.User) protocol.User {
	return protocol.User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role.String(),
	}
}

func toCitySummaries(in []domain.CitySummary) []protocol.CitySummary {
	out := make([]protocol.CitySummary, len(in))
	for i, c := range in {
		out[i] = protocol.CitySummary{
			ID:                c.ID,
			Name:              c.Name,
			Description:       c.Description,
			SubscriptionPrice: c.SubscriptionPrice,
			MapCount:          c.MapCount,
		}
	}
	return out
}

func toCityDetails(d *domain.CityDetails) protocol.GetCityDetailsResponse {
	resp := protocol.GetCityDetailsResponse{
		City: protocol.City{
			ID:                d.City.ID,
			Name:              d.City.Name,
			Description:       d.City.Description,
			SubscriptionPrice: d.City.SubscriptionPrice,
		},
		Maps:  make([]protocol.Map, len(d.Maps)),
		Sites: make([]protocol.Site, len(d.Sites)),
		Tours: make([]protocol.Tour, len(d.Tours)),
	}
	for i := range d.Maps {
		resp.Maps[i] = toMap(&d.Maps[i])
	}
	for i, s := range d.Sites {
		resp.Sites[i] = protocol.Site{
			ID:           s.ID,
			CityID:       s.CityID,
			Name:         s.Name,
			Category:     s.Category,
			Description:  s.Description,
			Accessible:   s.Accessible,
			VisitMinutes: s.VisitMinutes,
		}
	}
	for i, t := range d.Tours {
		siteIDs := t.SiteIDs
		if siteIDs == nil {
			siteIDs = []int64{}
		}
		resp.Tours[i] = protocol.Tour{
			ID:          t.ID,
			CityID:      t.CityID,
			Name:        t.Name,
			Description: t.Description,
			SiteIDs:     siteIDs,
		}
	}
	return resp
}

func toMap(m *domain.Map) protocol.Map {
	return protocol.Map{
		ID:          m.ID,
		CityID:      m.CityID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Version:     m.Version,
	}
}

func toPurchaseResponse(r purchase.Result) protocol.PurchaseResponse {
	return protocol.PurchaseResponse{
		Reason:         protocol.Reason(r.Reason),
		PurchaseID:     r.PurchaseID,
		PricePaid:      r.PricePaid,
		IsRenewal:      r.IsRenewal,
		SubscriptionID: r.SubscriptionID,
		ExpiresAt:      r.ExpiresAt,
		SnapshotID:     r.SnapshotID,
		Replayed:       r.Replayed,
	}
}

func toPendingRequest(r *domain.PendingRequest) protocol.PendingRequest {
	return protocol.PendingRequest{
		ID:             r.ID,
		RequesterID:    r.RequesterID,
		ActionType:     r.ActionType.String(),
		ContentType:    r.ContentType.String(),
		TargetID:       r.TargetID,
		TargetName:     r.TargetName,
		ContentDetails: r.ContentDetails,
		Status:         r.Status.String(),
		CreatedAt:      r.CreatedAt,
		ProcessedAt:    r.ProcessedAt,
		ProcessedBy:    r.ProcessedBy,
	}
}

func toPriceUpdate(u *domain.PendingPriceUpdate) protocol.PriceUpdate {
	return protocol.PriceUpdate{
		ID:          u.ID,
		MapID:       u.MapID,
		RequesterID: u.RequesterID,
		OldPrice:    u.OldPrice,
		NewPrice:    u.NewPrice,
		Status:      u.Status.String(),
		CreatedAt:   u.CreatedAt,
		ProcessedAt: u.ProcessedAt,
		ProcessedBy: u.ProcessedBy,
	}
}

func toActivityStats(in []domain.DailyCityActivityStat) []protocol.ActivityStat {
	out := make([]protocol.ActivityStat, len(in))
	for i, s := range in {
		out[i] = protocol.ActivityStat{
			CityID:               s.CityID,
			StatDate:             s.StatDate.Format(protocol.DateLayout),
			OneTimePurchases:     s.OneTimePurchases,
			Subscriptions:        s.Subscriptions,
			SubscriptionRenewals: s.SubscriptionRenewals,
			Views:                s.Views,
			Downloads:            s.Downloads,
		}
	}
	return out
}
