package purchase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// Reason is the authoritative outcome of a purchase. Only ReasonSuccess
// means the purchase was applied.
type Reason string

const (
	ReasonSuccess         Reason = "SUCCESS"
	ReasonUserNotFound    Reason = "USER_NOT_FOUND"
	ReasonPaymentRejected Reason = "PAYMENT_REJECTED"
	ReasonInvalidPrice    Reason = "INVALID_PRICE"
	ReasonAlreadyOwned    Reason = "ALREADY_OWNED"
	ReasonInvalidRequest  Reason = "INVALID_REQUEST"
	ReasonInternalError   Reason = "INTERNAL_ERROR"
)

func (r Reason) String() string { return string(r) }

// Request is one purchase attempt. RequestID, when set, makes the purchase
// at-most-once: a repeated RequestID returns the recorded result.
type Request struct {
	RequestID    string
	UserID       int64
	CityID       *int64
	MapID        *int64
	Type         domain.PurchaseType
	PaymentToken string
	MonthsToAdd  int
}

// Result describes a processed purchase.
type Result struct {
	Reason Reason
	// Detail is a human-readable explanation for non-success reasons.
	Detail string

	PurchaseID     int64
	PricePaid      decimal.Decimal
	IsRenewal      bool
	SubscriptionID *int64
	ExpiresAt      *time.Time
	SnapshotID     *int64
	// Replayed is set when the result was recorded by an earlier request
	// with the same RequestID.
	Replayed bool
}

// OK reports whether the purchase succeeded.
func (r Result) OK() bool { return r.Reason == ReasonSuccess }

func fail(reason Reason, format string, args ...any) Result {
	return Result{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func replayed(p *domain.Purchase) Result {
	return Result{
		Reason:         ReasonSuccess,
		PurchaseID:     p.ID,
		PricePaid:      p.PricePaid,
		IsRenewal:      p.IsRenewal,
		SubscriptionID: p.SubscriptionID,
		ExpiresAt:      p.ExpiresAt,
		SnapshotID:     p.SnapshotID,
		Replayed:       true,
	}
}
