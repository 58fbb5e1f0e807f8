package repositories

import (
	"context"

	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DoctorReader reads the doctor directory owned by the staff module.
type DoctorReader interface {
	// FindDoctorByID retrieves a doctor. Returns apperrors.ErrNotFound when absent.
	FindDoctorByID(ctx context.Context, doctorID string) (*domain.Doctor, error)
}

// TokenReader reads OPD tokens owned by the encounter module.
type TokenReader interface {
	// FindTokenByID retrieves a token. Returns apperrors.ErrNotFound when absent.
	FindTokenByID(ctx context.Context, tokenID string) (*domain.Token, error)

	// FindTokensByIDs retrieves the tokens that exist among tokenIDs, keyed by id.
	FindTokensByIDs(ctx context.Context, tokenIDs []string) (map[string]domain.Token, error)
}

// ExpenseReader reads the expense ledger owned by the accounts module.
type ExpenseReader interface {
	// SumExpensesByDate returns the expense total per date in [from, to]. Dates without expenses are absent.
	SumExpensesByDate(ctx context.Context, from, to string) (map[string]decimal.Decimal, error)
}
