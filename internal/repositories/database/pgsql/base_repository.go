package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/utils/dates"
)

const (
	uniqueViolation = "23505"

	// partial unique indexes from migrations/000001_create_ledger.up.sql
	reversalRefIndex = "uq_journals_reversal_ref"
	opdTokenRefIndex = "uq_journals_opd_token_ref"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, classifyError(err, "failed to begin transaction")
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return classifyError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// classifyError maps driver errors onto the application sentinels.
// Unique violations on the ledger's partial indexes become conflict or duplicate;
// connection-level failures become ErrUnavailable so callers may retry.
func classifyError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation && pgErr.ConstraintName == reversalRefIndex:
			return fmt.Errorf("%w: %s: journal already has a reversal", apperrors.ErrConflict, msg)
		case pgErr.Code == uniqueViolation:
			return fmt.Errorf("%w: %s: %s", apperrors.ErrDuplicate, msg, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == "53300", pgErr.Code == "57P01", pgErr.Code == "57P03":
			return fmt.Errorf("%w: %s: %v", apperrors.ErrUnavailable, msg, err)
		}
		return apperrors.NewAppError(500, msg, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrUnavailable, msg, err)
	}
	return apperrors.NewAppError(500, msg, err)
}

// dateParam converts an optional YYYY-MM-DD bound into a nullable DATE parameter.
func dateParam(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	t, err := dates.Parse(s)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// nullIfEmpty stores empty tags as NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// utc normalises scanned timestamps.
func utc(t time.Time) time.Time {
	return t.UTC()
}
