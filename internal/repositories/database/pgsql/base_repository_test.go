package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"second reversal", &pgconn.PgError{Code: "23505", ConstraintName: reversalRefIndex}, apperrors.ErrConflict},
		{"second token earning", &pgconn.PgError{Code: "23505", ConstraintName: opdTokenRefIndex}, apperrors.ErrDuplicate},
		{"journal id clash", &pgconn.PgError{Code: "23505", ConstraintName: "journals_pkey"}, apperrors.ErrDuplicate},
		{"connection failure", &pgconn.PgError{Code: "08006"}, apperrors.ErrUnavailable},
		{"too many connections", &pgconn.PgError{Code: "53300"}, apperrors.ErrUnavailable},
		{"deadline", fmt.Errorf("acquire: %w", context.DeadlineExceeded), apperrors.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyError(tt.err, "op"), tt.want)
		})
	}

	var appErr *apperrors.AppError
	checkViolation := classifyError(&pgconn.PgError{Code: "23514"}, "op")
	assert.True(t, errors.As(checkViolation, &appErr))
	assert.Equal(t, 500, appErr.Code)
	assert.False(t, apperrors.IsRetryable(checkViolation))

	assert.NoError(t, classifyError(nil, "op"))
}

func TestDateParam(t *testing.T) {
	v, err := dateParam("")
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = dateParam("2025/03/10")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	v, err = dateParam("2025-03-10")
	assert.NoError(t, err)
	assert.NotNil(t, v)
}
