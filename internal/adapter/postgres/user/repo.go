// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres"
	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var userColumns = []string{"id", "username", "email", "name", "role", "created_at", "updated_at"}

// Repo provides user, credential and payment-details persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// User operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByUsername returns a user by username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username}, username)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Eq, key any) (*domain.User, error) {
	sql, args, err := postgres.Builder().
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	u, err := scanUser(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	return u, nil
}

// Create inserts a new user with its password hash and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User, passwordHash string) (*domain.User, error) {
	sql, args, err := postgres.Builder().
		Insert("users").
		Columns("username", "email", "name", "role", "password_hash").
		Values(u.Username, u.Email, u.Name, string(u.Role), passwordHash).
		Suffix("RETURNING id, username, email, name, role, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanUser(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.Username)
	}
	return created, nil
}

// GetCredentials returns the stored password hash for a user.
func (r *Repo) GetCredentials(ctx context.Context, userID int64) (*domain.Credentials, error) {
	sql, args, err := postgres.Builder().
		Select("id", "password_hash").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var c domain.Credentials
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&c.UserID, &c.PasswordHash); err != nil {
		return nil, postgres.MapError(err, "credentials", userID)
	}
	return &c, nil
}

// ---------------------------------------------------------------------------
// Payment details
// ---------------------------------------------------------------------------

// GetPaymentDetails returns the stored card of a user, or domain.ErrNotFound.
func (r *Repo) GetPaymentDetails(ctx context.Context, userID int64) (*domain.PaymentDetails, error) {
	sql, args, err := postgres.Builder().
		Select("user_id", "holder_name", "card_number", "expiry_month", "expiry_year").
		From("payment_details").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		d           domain.PaymentDetails
		month, year int16
	)
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).
		Scan(&d.UserID, &d.HolderName, &d.CardNumber, &month, &year)
	if err != nil {
		return nil, postgres.MapError(err, "payment_details", userID)
	}
	d.ExpiryMonth = int(month)
	d.ExpiryYear = int(year)
	return &d, nil
}

// SavePaymentDetails inserts or replaces the stored card of a user.
func (r *Repo) SavePaymentDetails(ctx context.Context, d domain.PaymentDetails) error {
	sql, args, err := postgres.Builder().
		Insert("payment_details").
		Columns("user_id", "holder_name", "card_number", "expiry_month", "expiry_year").
		Values(d.UserID, d.HolderName, d.CardNumber, int16(d.ExpiryMonth), int16(d.ExpiryYear)).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			holder_name = EXCLUDED.holder_name,
			card_number = EXCLUDED.card_number,
			expiry_month = EXCLUDED.expiry_month,
			expiry_year = EXCLUDED.expiry_year,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "payment_details", d.UserID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}
