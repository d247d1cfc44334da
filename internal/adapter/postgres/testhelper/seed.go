package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the given role and a throwaway password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	u := domain.User{
		Username: "user-" + suffix,
		Email:    "user-" + suffix + "@example.com",
		Name:     "Test User " + suffix,
		Role:     role,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (username, email, name, role, password_hash)
		 VALUES ($1, $2, $3, $4, 'x')
		 RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.Name, string(u.Role),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return u
}

// SeedCity creates a city with the given monthly subscription price.
func SeedCity(t *testing.T, pool *pgxpool.Pool, price string) domain.City {
	t.Helper()

	c := domain.City{
		Name:              "City " + uniqueSuffix(),
		Description:       "seeded",
		SubscriptionPrice: decimal.RequireFromString(price),
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO cities (name, description, subscription_price)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.SubscriptionPrice,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedCity: %v", err)
	}

	return c
}

// SeedMap creates a version-1 map in the given city.
func SeedMap(t *testing.T, pool *pgxpool.Pool, cityID int64, price string) domain.Map {
	t.Helper()

	m := domain.Map{
		CityID:  cityID,
		Name:    "Map " + uniqueSuffix(),
		Price:   decimal.RequireFromString(price),
		Version: 1,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO maps (city_id, name, description, price, version)
		 VALUES ($1, $2, '', $3, 1)
		 RETURNING id, created_at, updated_at`,
		m.CityID, m.Name, m.Price,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedMap: %v", err)
	}

	return m
}
