package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// DefaultTxAttempts bounds how often a transaction aborted by a
// serialization failure or a deadlock is replayed.
const DefaultTxAttempts = 3

// TxManager runs functions inside a transaction carried by the context.
// Nested RunInTx calls join the outer transaction.
type TxManager struct {
	db       Beginner
	attempts int
}

// NewTxManager creates a TxManager that replays aborted transactions up to
// DefaultTxAttempts times.
func NewTxManager(db Beginner) *TxManager {
	return &TxManager{db: db, attempts: DefaultTxAttempts}
}

// RunInTx executes fn within a Read Committed transaction and commits when
// fn returns nil. fn must keep its effects inside the transaction: when
// PostgreSQL aborts it with 40001 or 40P01, fn runs again from the start.
// A panic in fn rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		err = m.runOnce(ctx, fn)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return fmt.Errorf("transaction aborted %d times: %w", m.attempts, err)
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// retryable recognizes both raw pgconn errors and the domain.ErrConflict
// that MapError produces for the same codes.
func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return errors.Is(err, domain.ErrConflict)
}
