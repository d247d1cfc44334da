package domain

import "time"

// DailyCityActivityStat is the cached rollup of one city's activity on one
// calendar day. Rows are written only by the aggregation job and can always
// be recomputed from purchases and map events.
type DailyCityActivityStat struct {
	CityID               int64
	StatDate             time.Time
	OneTimePurchases     int
	Subscriptions        int
	SubscriptionRenewals int
	Views                int
	Downloads            int
	ComputedAt           time.Time
}

// DayBounds returns the half-open interval [start, end) of the calendar day
// containing t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
