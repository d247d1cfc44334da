package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PendingRequest is a catalog change awaiting a manager's decision.
// TargetID is nil only for ADD. ProcessedAt and ProcessedBy are set iff
// Status is terminal.
type PendingRequest struct {
	ID             int64
	RequesterID    int64
	ActionType     ChangeAction
	ContentType    ContentType
	TargetID       *int64
	TargetName     string
	ContentDetails json.RawMessage
	Status         ApprovalStatus
	CreatedAt      time.Time
	ProcessedAt    *time.Time
	ProcessedBy    *int64
}

// PendingPriceUpdate is a map price change awaiting a company manager.
type PendingPriceUpdate struct {
	ID          int64
	MapID       int64
	RequesterID int64
	OldPrice    decimal.Decimal
	NewPrice    decimal.Decimal
	Status      ApprovalStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
	ProcessedBy *int64
}

// Content payloads carried in PendingRequest.ContentDetails, one per ContentType.

type CityContent struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	SubscriptionPrice decimal.Decimal `json:"subscriptionPrice"`
}

type MapContent struct {
	CityID      int64           `json:"cityId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type SiteContent struct {
	CityID       int64  `json:"cityId"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Accessible   bool   `json:"accessible"`
	VisitMinutes int    `json:"visitMinutes"`
}

type TourContent struct {
	CityID      int64   `json:"cityId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SiteIDs     []int64 `json:"siteIds"`
}
