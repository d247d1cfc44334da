package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// City is a catalog city. Subscriptions are sold per city per month.
type City struct {
	ID                int64
	Name              string
	Description       string
	SubscriptionPrice decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CityPrice is the lightweight projection used for pricing. It never carries
// the city's maps, sites, or tours.
type CityPrice struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// CitySummary is a catalog listing row.
type CitySummary struct {
	ID                int64
	Name              string
	Description       string
	SubscriptionPrice decimal.Decimal
	MapCount          int
}

// CityDetails is the full content graph of one city.
type CityDetails struct {
	City  City
	Maps  []Map
	Sites []Site
	Tours []Tour
}

// Map is a purchasable map product. Version increments on every approved edit;
// purchases are bound to the version that was current at purchase time.
type Map struct {
	ID          int64
	CityID      int64
	Name        string
	Description string
	Price       decimal.Decimal
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Site is a point of interest in a city.
type Site struct {
	ID           int64
	CityID       int64
	Name         string
	Category     string
	Description  string
	Accessible   bool
	VisitMinutes int
}

// Tour is an ordered walk across sites of one city.
type Tour struct {
	ID          int64
	CityID      int64
	Name        string
	Description string
	SiteIDs     []int64
}

// MapEvent is a raw view or download event. Events feed the daily aggregates.
type MapEvent struct {
	ID        int64
	UserID    int64
	CityID    int64
	MapID     int64
	Kind      MapEventKind
	CreatedAt time.Time
}
