package protocol

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in report payloads.
const DateLayout = "2006-01-02"

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	// Card is stored and used for later purchases when present.
	Card *PaymentCard `json:"card,omitempty"`
}

type PaymentCard struct {
	HolderName  string `json:"holderName"`
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
}

// AuthResponse answers both LOGIN and REGISTER.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

type GetCatalogRequest struct {
	Query string `json:"query,omitempty"`
}

type GetCatalogResponse struct {
	Cities []CitySummary `json:"cities"`
}

type CitySummary struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	SubscriptionPrice decimal.Decimal `json:"subscriptionPrice"`
	MapCount          int             `json:"mapCount"`
}

type GetCityDetailsRequest struct {
	CityID int64 `json:"cityId"`
}

type GetCityDetailsResponse struct {
	City  City   `json:"city"`
	Maps  []Map  `json:"maps"`
	Sites []Site `json:"sites"`
	Tours []Tour `json:"tours"`
}

type City struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	SubscriptionPrice decimal.Decimal `json:"subscriptionPrice"`
}

type Map struct {
	ID          int64           `json:"id"`
	CityID      int64           `json:"cityId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Version     int             `json:"version"`
}

type Site struct {
	ID           int64  `json:"id"`
	CityID       int64  `json:"cityId"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Accessible   bool   `json:"accessible"`
	VisitMinutes int    `json:"visitMinutes"`
}

type Tour struct {
	ID          int64   `json:"id"`
	CityID      int64   `json:"cityId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SiteIDs     []int64 `json:"siteIds"`
}

type MapRequest struct {
	MapID int64 `json:"mapId"`
}

type ViewMapResponse struct {
	Map Map `json:"map"`
}

type DownloadMapResponse struct {
	Map Map `json:"map"`
	// Version is the map version the caller is entitled to.
	Version int `json:"version"`
}

// ---------------------------------------------------------------------------
// Purchase
// ---------------------------------------------------------------------------

// PurchaseRequest asks for a subscription (CityID, MonthsToAdd) or a one-time
// map purchase (MapID). RequestID is an idempotency key; when empty the
// envelope id is used.
type PurchaseRequest struct {
	RequestID    string `json:"requestId,omitempty"`
	Type         string `json:"type"`
	CityID       *int64 `json:"cityId,omitempty"`
	MapID        *int64 `json:"mapId,omitempty"`
	PaymentToken string `json:"paymentToken,omitempty"`
	MonthsToAdd  int    `json:"monthsToAdd,omitempty"`
}

type PurchaseResponse struct {
	Reason         Reason          `json:"reason"`
	PurchaseID     int64           `json:"purchaseId"`
	PricePaid      decimal.Decimal `json:"pricePaid"`
	IsRenewal      bool            `json:"isRenewal"`
	SubscriptionID *int64          `json:"subscriptionId,omitempty"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
	SnapshotID     *int64          `json:"snapshotId,omitempty"`
	Replayed       bool            `json:"replayed,omitempty"`
}

// ---------------------------------------------------------------------------
// Approvals
// ---------------------------------------------------------------------------

// PendingKind selects which queue an approve/deny decision targets.
type PendingKind string

const (
	PendingKindContent PendingKind = "CONTENT"
	PendingKindPrice   PendingKind = "PRICE"
)

type SubmitContentRequest struct {
	ActionType  string          `json:"actionType"`
	ContentType string          `json:"contentType"`
	TargetID    *int64          `json:"targetId,omitempty"`
	TargetName  string          `json:"targetName"`
	Details     json.RawMessage `json:"details,omitempty"`
}

type SubmitContentResponse struct {
	Request PendingRequest `json:"request"`
}

type UpdatePriceRequest struct {
	MapID    int64           `json:"mapId"`
	NewPrice decimal.Decimal `json:"newPrice"`
}

type UpdatePriceResponse struct {
	Update PriceUpdate `json:"update"`
}

type GetPendingApprovalsRequest struct{}

type GetPendingApprovalsResponse struct {
	Requests     []PendingRequest `json:"requests"`
	PriceUpdates []PriceUpdate    `json:"priceUpdates"`
}

// DecisionRequest is the payload of APPROVE_PENDING and DENY_PENDING.
type DecisionRequest struct {
	Kind PendingKind `json:"kind"`
	ID   int64       `json:"id"`
}

type DecisionResponse struct {
	Kind   PendingKind `json:"kind"`
	ID     int64       `json:"id"`
	Status string      `json:"status"`
}

type PendingRequest struct {
	ID             int64           `json:"id"`
	RequesterID    int64           `json:"requesterId"`
	ActionType     string          `json:"actionType"`
	ContentType    string          `json:"contentType"`
	TargetID       *int64          `json:"targetId,omitempty"`
	TargetName     string          `json:"targetName"`
	ContentDetails json.RawMessage `json:"contentDetails,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	ProcessedAt    *time.Time      `json:"processedAt,omitempty"`
	ProcessedBy    *int64          `json:"processedBy,omitempty"`
}

type PriceUpdate struct {
	ID          int64           `json:"id"`
	MapID       int64           `json:"mapId"`
	RequesterID int64           `json:"requesterId"`
	OldPrice    decimal.Decimal `json:"oldPrice"`
	NewPrice    decimal.Decimal `json:"newPrice"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	ProcessedAt *time.Time      `json:"processedAt,omitempty"`
	ProcessedBy *int64          `json:"processedBy,omitempty"`
}

// ---------------------------------------------------------------------------
// Reporting
// ---------------------------------------------------------------------------

// GetActivityReportRequest covers the inclusive date range [From, To],
// both in DateLayout. CityID narrows the report to one city.
type GetActivityReportRequest struct {
	CityID *int64 `json:"cityId,omitempty"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type GetActivityReportResponse struct {
	Stats []ActivityStat `json:"stats"`
}

type ActivityStat struct {
	CityID               int64  `json:"cityId"`
	StatDate             string `json:"statDate"`
	OneTimePurchases     int    `json:"oneTimePurchases"`
	Subscriptions        int    `json:"subscriptions"`
	SubscriptionRenewals int    `json:"subscriptionRenewals"`
	Views                int    `json:"views"`
	Downloads            int    `json:"downloads"`
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

// Notification is the payload of a NOTIFICATION push.
type Notification struct {
	Kind    string          `json:"kind"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Notification kinds.
const (
	NotificationApprovalDecided = "APPROVAL_DECIDED"
)
