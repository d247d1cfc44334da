package ws

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/protocol"
	"github.com/heartmarshall/citymaps-backend/internal/service/approval"
	"github.com/heartmarshall/citymaps-backend/internal/service/auth"
	"github.com/heartmarshall/citymaps-backend/internal/service/catalog"
	"github.com/heartmarshall/citymaps-backend/internal/service/purchase"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
}

type catalogService interface {
	GetCatalog(ctx context.Context, query string) ([]domain.CitySummary, error)
	GetCityDetails(ctx context.Context, cityID int64) (*domain.CityDetails, error)
	ViewMap(ctx context.Context, mapID int64) (*domain.Map, error)
	DownloadMap(ctx context.Context, mapID int64) (*catalog.DownloadResult, error)
}

type purchaseEngine interface {
	ProcessPurchase(ctx context.Context, req purchase.Request) purchase.Result
}

type approvalService interface {
	Submit(ctx context.Context, in approval.SubmitInput) (*domain.PendingRequest, error)
	SubmitPriceUpdate(ctx context.Context, mapID int64, newPrice decimal.Decimal) (*domain.PendingPriceUpdate, error)
	ListPending(ctx context.Context) (*approval.Pending, error)
	Approve(ctx context.Context, id int64) (*domain.PendingRequest, error)
	Deny(ctx context.Context, id int64) (*domain.PendingRequest, error)
	ApprovePriceUpdate(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error)
	DenyPriceUpdate(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error)
}

type reportService interface {
	Report(ctx context.Context, cityID *int64, from, to time.Time) ([]domain.DailyCityActivityStat, error)
	Location() *time.Location
}

// Handlers adapts the services to the envelope protocol.
type Handlers struct {
	log       *slog.Logger
	auth      authService
	catalog   catalogService
	purchases purchaseEngine
	approvals approvalService
	reports   reportService
	hub       *Hub
}

// NewHandlers creates the protocol handlers.
func NewHandlers(
	logger *slog.Logger,
	authSvc authService,
	catalogSvc catalogService,
	purchases purchaseEngine,
	approvals approvalService,
	reports reportService,
	hub *Hub,
) *Handlers {
	return &Handlers{
		log:       logger.With("component", "ws_handlers"),
		auth:      authSvc,
		catalog:   catalogSvc,
		purchases: purchases,
		approvals: approvals,
		reports:   reports,
		hub:       hub,
	}
}

// Register adds every action handler to d.
func (h *Handlers) Register(d *Dispatcher) {
	d.RegisterPublic(protocol.ActionLoginRequest, h.login)
	d.RegisterPublic(protocol.ActionRegisterRequest, h.register)

	d.Register(protocol.ActionGetCatalogRequest, h.getCatalog)
	d.Register(protocol.ActionGetCityDetailsRequest, h.getCityDetails)
	d.Register(protocol.ActionViewMapRequest, h.viewMap)
	d.Register(protocol.ActionDownloadMapRequest, h.downloadMap)
	d.Register(protocol.ActionPurchaseRequest, h.purchase)
	d.Register(protocol.ActionSubmitContentRequest, h.submitContent)
	d.Register(protocol.ActionUpdatePriceRequest, h.updatePrice)
	d.Register(protocol.ActionGetPendingApprovalsRequest, h.getPendingApprovals)
	d.Register(protocol.ActionApprovePendingRequest, h.approvePending)
	d.Register(protocol.ActionDenyPendingRequest, h.denyPending)
	d.Register(protocol.ActionGetActivityReportRequest, h.getActivityReport)
}

func decode(env protocol.Envelope, out any) error {
	if err := env.Decode(out); err != nil {
		return &Error{Reason: protocol.ReasonInvalidRequest, Message: "malformed payload"}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func (h *Handlers) login(ctx context.Context, s *Session, env protocol.Envelope) (any, error) {
	var req protocol.LoginRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}

	res, err := h.auth.Login(ctx, auth.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return nil, err
	}

	h.hub.bind(s, res.User)
	return toAuthResponse(res), nil
}

func (h *Handlers) register(ctx context.Context, s *Session, env protocol.Envelope) (any, error) {
	var req protocol.RegisterRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}

	in := auth.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}
	if req.Card != nil {
		in.Card = &auth.CardInput{
			HolderName:  req.Card.HolderName,
			CardNumber:  req.Card.CardNumber,
			ExpiryMonth: req.Card.ExpiryMonth,
			ExpiryYear:  req.Card.ExpiryYear,
		}
	}

	res, err := h.auth.Register(ctx, in)
	if err != nil {
		return nil, err
	}

	h.hub.bind(s, res.User)
	return toAuthResponse(res), nil
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func (h *Handlers) getCatalog(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	var req protocol.GetCatalogRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}

	cities, err := h.catalog.GetCatalog(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	return protocol.GetCatalogResponse{Cities: toCitySummaries(cities)}, nil
}

func (h *Handlers) getCityDetails(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	var req protocol.GetCityDetailsRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}
	if req.CityID <= 0 {
		return nil, domain.NewValidationError("cityId", "required")
	}

	details, err := h.catalog.GetCityDetails(ctx, req.CityID)
	if err != nil {
		return nil, err
	}
	return toCityDetails(details), nil
}

func (h *Handlers) viewMap(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	var req protocol.MapRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}

	m, err := h.catalog.ViewMap(ctx, req.MapID)
	if err != nil {
		return nil, err
	}
	return protocol.ViewMapResponse{Map: toMap(m)}, nil
}

func (h *Handlers) downloadMap(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	var req protocol.MapRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}

	res, err := h.catalog.DownloadMap(ctx, req.MapID)
	if err != nil {
		return nil, err
	}
	return protocol.DownloadMapResponse{Map: toMap(res.Map), Version: res.Version}, nil
}

// ---------------------------------------------------------------------------
// Purchase
// ---------------------------------------------------------------------------

// purchase answers failed purchases with an ERROR envelope carrying the
// engine's reason, so a client never mistakes a rejection for a success.
func (h *Handlers) purchase(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	var req protocol.PurchaseRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = env.ID
	}

	res := h.purchases.ProcessPurchase(ctx, purchase.Request{
		RequestID:    requestID,
		UserID:       userID,
		CityID:       req.CityID,
		MapID:        req.MapID,
		Type:         domain.PurchaseType(req.Type),
		PaymentToken: req.PaymentToken,
		MonthsToAdd:  req.MonthsToAdd,
	})
	if !res.OK() {
		msg := res.Detail
		if res.Reason == purchase.ReasonInternalError {
			// The engine has logged the cause.
			msg = "internal error"
		}
		return nil, &Error{Reason: protocol.Reason(res.Reason), Message: msg}
	}
	return toPurchaseResponse(res), nil
}

// ---------------------------------------------------------------------------
// Approvals
// ---------------------------------------------------------------------------

func (h *Handlers) submitContent(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	var req protocol.SubmitContentRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}

	pr, err := h.approvals.Submit(ctx, approval.SubmitInput{
		ActionType:  domain.ChangeAction(req.ActionType),
		ContentType: domain.ContentType(req.ContentType),
		TargetID:    req.TargetID,
		TargetName:  req.TargetName,
		Details:     req.Details,
	})
	if err != nil {
		return nil, err
	}
	return protocol.SubmitContentResponse{Request: toPendingRequest(pr)}, nil
}

func (h *Handlers) updatePrice(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	var req protocol.UpdatePriceRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}

	u, err := h.approvals.SubmitPriceUpdate(ctx, req.MapID, req.NewPrice)
	if err != nil {
		return nil, err
	}
	return protocol.UpdatePriceResponse{Update: toPriceUpdate(u)}, nil
}

func (h *Handlers) getPendingApprovals(ctx context.Context, _ *Session, _ protocol.Envelope) (any, error) {
	pending, err := h.approvals.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	resp := protocol.GetPendingApprovalsResponse{
		Requests:     make([]protocol.PendingRequest, len(pending.Requests)),
		PriceUpdates: make([]protocol.PriceUpdate, len(pending.PriceUpdates)),
	}
	for i := range pending.Requests {
		resp.Requests[i] = toPendingRequest(&pending.Requests[i])
	}
	for i := range pending.PriceUpdates {
		resp.PriceUpdates[i] = toPriceUpdate(&pending.PriceUpdates[i])
	}
	return resp, nil
}

func (h *Handlers) approvePending(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	return h.decide(ctx, env, true)
}

func (h *Handlers) denyPending(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	return h.decide(ctx, env, false)
}

func (h *Handlers) decide(ctx context.Context, env protocol.Envelope, approve bool) (any, error) {
	var req protocol.DecisionRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}
	if req.ID <= 0 {
		return nil, domain.NewValidationError("id", "required")
	}

	var status domain.ApprovalStatus
	switch req.Kind {
	case protocol.PendingKindContent:
		decide := h.approvals.Deny
		if approve {
			decide = h.approvals.Approve
		}
		pr, err := decide(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		status = pr.Status

	case protocol.PendingKindPrice:
		decide := h.approvals.DenyPriceUpdate
		if approve {
			decide = h.approvals.ApprovePriceUpdate
		}
		u, err := decide(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		status = u.Status

	default:
		return nil, domain.NewValidationError("kind", fmt.Sprintf("must be %s or %s", protocol.PendingKindContent, protocol.PendingKindPrice))
	}

	return protocol.DecisionResponse{Kind: req.Kind, ID: req.ID, Status: status.String()}, nil
}

// ---------------------------------------------------------------------------
// Reporting
// ---------------------------------------------------------------------------

func (h *Handlers) getActivityReport(ctx context.Context, _ *Session, env protocol.Envelope) (any, error) {
	var req protocol.GetActivityReportRequest
	if err := decode(env, &req); err != nil {
		return nil, err
	}

	loc := h.reports.Location()
	var errs []domain.FieldError
	from, err := time.ParseInLocation(protocol.DateLayout, req.From, loc)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "from", Message: "must be YYYY-MM-DD"})
	}
	to, err := time.ParseInLocation(protocol.DateLayout, req.To, loc)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	stats, err := h.reports.Report(ctx, req.CityID, from, to)
	if err != nil {
		return nil, err
	}
	return protocol.GetActivityReportResponse{Stats: toActivityStats(stats)}, nil
}
