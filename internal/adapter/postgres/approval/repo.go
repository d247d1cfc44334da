// Package approval implements pending content request and price update
// persistence using PostgreSQL.
package approval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres"
	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var (
	requestColumns = []string{
		"id", "requester_id", "action_type", "content_type", "target_id", "target_name",
		"content_details", "status", "created_at", "processed_at", "processed_by",
	}
	priceUpdateColumns = []string{
		"id", "map_id", "requester_id", "old_price", "new_price", "status",
		"created_at", "processed_at", "processed_by",
	}
)

// Repo provides approval persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new approval repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// ---------------------------------------------------------------------------
// Pending content requests
// ---------------------------------------------------------------------------

// CreateRequest inserts an OPEN content request.
func (r *Repo) CreateRequest(ctx context.Context, p *domain.PendingRequest) (*domain.PendingRequest, error) {
	details := []byte(p.ContentDetails)
	if len(details) == 0 {
		details = []byte("{}")
	}

	sql, args, err := postgres.Builder().
		Insert("pending_requests").
		Columns("requester_id", "action_type", "content_type", "target_id", "target_name", "content_details").
		Values(p.RequesterID, string(p.ActionType), string(p.ContentType), p.TargetID, p.TargetName, details).
		Suffix("RETURNING " + strings.Join(requestColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanRequest(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "pending request", nil)
	}
	return created, nil
}

// GetRequestForUpdate returns a content request and locks it until the end
// of the surrounding transaction.
func (r *Repo) GetRequestForUpdate(ctx context.Context, id int64) (*domain.PendingRequest, error) {
	sql, args, err := postgres.Builder().
		Select(requestColumns...).
		From("pending_requests").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanRequest(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "pending request", id)
	}
	return p, nil
}

// MarkRequestProcessed moves an OPEN content request to a terminal status.
// It returns domain.ErrAlreadyProcessed when the request is no longer OPEN.
func (r *Repo) MarkRequestProcessed(ctx context.Context, id int64, status domain.ApprovalStatus, by int64, at time.Time) error {
	return r.markProcessed(ctx, "pending_requests", "pending request", id, status, by, at)
}

// ListOpenRequests returns every OPEN content request, oldest first.
func (r *Repo) ListOpenRequests(ctx context.Context) ([]domain.PendingRequest, error) {
	sql, args, err := postgres.Builder().
		Select(requestColumns...).
		From("pending_requests").
		Where(squirrel.Eq{"status": string(domain.ApprovalStatusOpen)}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "pending request", nil)
	}
	defer rows.Close()

	out := []domain.PendingRequest{}
	for rows.Next() {
		p, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending request: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "pending request", nil)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Pending price updates
// ---------------------------------------------------------------------------

// CreatePriceUpdate inserts an OPEN price update.
func (r *Repo) CreatePriceUpdate(ctx context.Context, u *domain.PendingPriceUpdate) (*domain.PendingPriceUpdate, error) {
	sql, args, err := postgres.Builder().
		Insert("pending_price_updates").
		Columns("map_id", "requester_id", "old_price", "new_price").
		Values(u.MapID, u.RequesterID, u.OldPrice, u.NewPrice).
		Suffix("RETURNING " + strings.Join(priceUpdateColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanPriceUpdate(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "map", u.MapID)
	}
	return created, nil
}

// GetPriceUpdateForUpdate returns a price update and locks it.
func (r *Repo) GetPriceUpdateForUpdate(ctx context.Context, id int64) (*domain.PendingPriceUpdate, error) {
	sql, args, err := postgres.Builder().
		Select(priceUpdateColumns...).
		From("pending_price_updates").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}

	u, err := scanPriceUpdate(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "price update", id)
	}
	return u, nil
}

// MarkPriceUpdateProcessed moves an OPEN price update to a terminal status.
func (r *Repo) MarkPriceUpdateProcessed(ctx context.Context, id int64, status domain.ApprovalStatus, by int64, at time.Time) error {
	return r.markProcessed(ctx, "pending_price_updates", "price update", id, status, by, at)
}

// ListOpenPriceUpdates returns every OPEN price update, oldest first.
func (r *Repo) ListOpenPriceUpdates(ctx context.Context) ([]domain.PendingPriceUpdate, error) {
	sql, args, err := postgres.Builder().
		Select(priceUpdateColumns...).
		From("pending_price_updates").
		Where(squirrel.Eq{"status": string(domain.ApprovalStatusOpen)}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "price update", nil)
	}
	defer rows.Close()

	out := []domain.PendingPriceUpdate{}
	for rows.Next() {
		u, err := scanPriceUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price update: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "price update", nil)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) markProcessed(
	ctx context.Context,
	table, entity string,
	id int64,
	status domain.ApprovalStatus,
	by int64,
	at time.Time,
) error {
	if !status.IsTerminal() {
		return fmt.Errorf("mark %s processed: status %s is not terminal", entity, status)
	}

	sql, args, err := postgres.Builder().
		Update(table).
		Set("status", string(status)).
		Set("processed_at", at).
		Set("processed_by", by).
		Where(squirrel.Eq{"id": id, "status": string(domain.ApprovalStatusOpen)}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrAlreadyProcessed)
	}
	return nil
}

func scanRequest(row pgx.Row) (*domain.PendingRequest, error) {
	var (
		p                       domain.PendingRequest
		action, content, status string
		details                 []byte
	)
	err := row.Scan(&p.ID, &p.RequesterID, &action, &content, &p.TargetID, &p.TargetName,
		&details, &status, &p.CreatedAt, &p.ProcessedAt, &p.ProcessedBy)
	if err != nil {
		return nil, err
	}
	p.ActionType = domain.ChangeAction(action)
	p.ContentType = domain.ContentType(content)
	p.Status = domain.ApprovalStatus(status)
	p.ContentDetails = details
	return &p, nil
}

func scanPriceUpdate(row pgx.Row) (*domain.PendingPriceUpdate, error) {
	var (
		u      domain.PendingPriceUpdate
		status string
	)
	err := row.Scan(&u.ID, &u.MapID, &u.RequesterID, &u.OldPrice, &u.NewPrice, &status,
		&u.CreatedAt, &u.ProcessedAt, &u.ProcessedBy)
	if err != nil {
		return nil, err
	}
	u.Status = domain.ApprovalStatus(status)
	return &u, nil
}
