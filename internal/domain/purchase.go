package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpgradeDiscount is the fraction of the listed price charged when a client
// buys a new version of a map they already own.
var UpgradeDiscount = decimal.NewFromFloat(0.5)

// Subscription grants access to every map of a city until ExpiresAt.
type Subscription struct {
	ID        int64
	UserID    int64
	CityID    int64
	StartsAt  time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveAt reports whether the subscription still grants access at t.
func (s *Subscription) ActiveAt(t time.Time) bool {
	return !t.Before(s.StartsAt) && t.Before(s.ExpiresAt)
}

// AddMonths adds n calendar months to t. When the target month is shorter
// than t's day of month, the result is clamped to the target month's last day.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	first := time.Date(y, m+time.Month(n), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// Purchase is the business record of one successful purchase. RequestID, when
// set, is unique and makes the purchase at-most-once per client request.
type Purchase struct {
	ID             int64
	RequestID      *string
	UserID         int64
	CityID         int64
	MapID          *int64
	Type           PurchaseType
	PricePaid      decimal.Decimal
	Months         int
	IsRenewal      bool
	SubscriptionID *int64
	SnapshotID     *int64
	// ExpiresAt is the subscription expiry this purchase produced.
	ExpiresAt      *time.Time
	CreatedAt      time.Time
}

// PurchasedMapSnapshot binds a client to the exact map version they paid for.
// Snapshots are immutable once created.
type PurchasedMapSnapshot struct {
	ID               int64
	UserID           int64
	OriginalMapID    int64
	PurchasedVersion int
	PricePaid        decimal.Decimal
	PurchasedAt      time.Time
}
