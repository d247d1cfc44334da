package client

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/citymaps-backend/internal/protocol"
)

// Client exposes one typed method per protocol request.
type Client struct {
	bridge *Bridge
}

// NewClient wraps b.
func NewClient(b *Bridge) *Client {
	return &Client{bridge: b}
}

// Close closes the underlying bridge.
func (c *Client) Close() error { return c.bridge.Close() }

func (c *Client) Login(ctx context.Context, username, password string) (*protocol.AuthResponse, error) {
	var out protocol.AuthResponse
	req := protocol.LoginRequest{Username: username, Password: password}
	if err := c.bridge.Call(ctx, protocol.ActionLoginRequest, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req protocol.RegisterRequest) (*protocol.AuthResponse, error) {
	var out protocol.AuthResponse
	if err := c.bridge.Call(ctx, protocol.ActionRegisterRequest, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCatalog lists cities whose name matches query. An empty query lists all.
func (c *Client) GetCatalog(ctx context.Context, query string) ([]protocol.CitySummary, error) {
	var out protocol.GetCatalogResponse
	if err := c.bridge.Call(ctx, protocol.ActionGetCatalogRequest, protocol.GetCatalogRequest{Query: query}, &out); err != nil {
		return nil, err
	}
	return out.Cities, nil
}

func (c *Client) GetCityDetails(ctx context.Context, cityID int64) (*protocol.GetCityDetailsResponse, error) {
	var out protocol.GetCityDetailsResponse
	if err := c.bridge.Call(ctx, protocol.ActionGetCityDetailsRequest, protocol.GetCityDetailsRequest{CityID: cityID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Purchase buys a subscription or a map. A rejected purchase is returned as
// a *RemoteError carrying the rejection reason.
func (c *Client) Purchase(ctx context.Context, req protocol.PurchaseRequest) (*protocol.PurchaseResponse, error) {
	var out protocol.PurchaseResponse
	if err := c.bridge.Call(ctx, protocol.ActionPurchaseRequest, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitContentChange(ctx context.Context, req protocol.SubmitContentRequest) (*protocol.PendingRequest, error) {
	var out protocol.SubmitContentResponse
	if err := c.bridge.Call(ctx, protocol.ActionSubmitContentRequest, req, &out); err != nil {
		return nil, err
	}
	return &out.Request, nil
}

func (c *Client) UpdatePrice(ctx context.Context, mapID int64, newPrice decimal.Decimal) (*protocol.PriceUpdate, error) {
	var out protocol.UpdatePriceResponse
	req := protocol.UpdatePriceRequest{MapID: mapID, NewPrice: newPrice}
	if err := c.bridge.Call(ctx, protocol.ActionUpdatePriceRequest, req, &out); err != nil {
		return nil, err
	}
	return &out.Update, nil
}

func (c *Client) GetPendingApprovals(ctx context.Context) (*protocol.GetPendingApprovalsResponse, error) {
	var out protocol.GetPendingApprovalsResponse
	if err := c.bridge.Call(ctx, protocol.ActionGetPendingApprovalsRequest, protocol.GetPendingApprovalsRequest{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApprovePending(ctx context.Context, kind protocol.PendingKind, id int64) (*protocol.DecisionResponse, error) {
	return c.decide(ctx, protocol.ActionApprovePendingRequest, kind, id)
}

func (c *Client) DenyPending(ctx context.Context, kind protocol.PendingKind, id int64) (*protocol.DecisionResponse, error) {
	return c.decide(ctx, protocol.ActionDenyPendingRequest, kind, id)
}

func (c *Client) decide(ctx context.Context, action protocol.Action, kind protocol.PendingKind, id int64) (*protocol.DecisionResponse, error) {
	var out protocol.DecisionResponse
	if err := c.bridge.Call(ctx, action, protocol.DecisionRequest{Kind: kind, ID: id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ViewMap(ctx context.Context, mapID int64) (*protocol.Map, error) {
	var out protocol.ViewMapResponse
	if err := c.bridge.Call(ctx, protocol.ActionViewMapRequest, protocol.MapRequest{MapID: mapID}, &out); err != nil {
		return nil, err
	}
	return &out.Map, nil
}

func (c *Client) DownloadMap(ctx context.Context, mapID int64) (*protocol.DownloadMapResponse, error) {
	var out protocol.DownloadMapResponse
	if err := c.bridge.Call(ctx, protocol.ActionDownloadMapRequest, protocol.MapRequest{MapID: mapID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActivityReport returns daily stats for the inclusive range [from, to],
// both formatted as protocol.DateLayout.
func (c *Client) GetActivityReport(ctx context.Context, cityID *int64, from, to string) ([]protocol.ActivityStat, error) {
	var out protocol.GetActivityReportResponse
	req := protocol.GetActivityReportRequest{CityID: cityID, From: from, To: to}
	if err := c.bridge.Call(ctx, protocol.ActionGetActivityReportRequest, req, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}
