package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
)

// PgxDoctorRepository reads the doctors table owned by the staff module.
type PgxDoctorRepository struct {
	BaseRepository
}

func newPgxDoctorRepository(pool *pgxpool.Pool) *PgxDoctorRepository {
	return &PgxDoctorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DoctorReader = (*PgxDoctorRepository)(nil)

// FindDoctorByID retrieves a doctor by its ID.
func (r *PgxDoctorRepository) FindDoctorByID(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	query := `SELECT doctor_id, name, COALESCE(department_id, ''), is_active FROM doctors WHERE doctor_id = $1;`
	var d domain.Doctor
	err := r.Pool.QueryRow(ctx, query, doctorID).Scan(&d.DoctorID, &d.Name, &d.DepartmentID, &d.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, classifyError(err, "failed to find doctor by ID "+doctorID)
	}
	return &d, nil
}

// PgxTokenRepository reads OPD tokens owned by the encounter module.
type PgxTokenRepository struct {
	BaseRepository
}

func newPgxTokenRepository(pool *pgxpool.Pool) *PgxTokenRepository {
	return &PgxTokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TokenReader = (*PgxTokenRepository)(nil)

const tokenColumns = `token_id, token_no, COALESCE(patient_name, ''), COALESCE(mrn, ''), COALESCE(doctor_id, ''), COALESCE(department_id, ''), created_at`

// FindTokenByID retrieves a token by its ID.
func (r *PgxTokenRepository) FindTokenByID(ctx context.Context, tokenID string) (*domain.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM opd_tokens WHERE token_id = $1;`
	var t domain.Token
	err := r.Pool.QueryRow(ctx, query, tokenID).Scan(&t.TokenID, &t.TokenNo, &t.PatientName, &t.MRN, &t.DoctorID, &t.DepartmentID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, classifyError(err, "failed to find token by ID "+tokenID)
	}
	return &t, nil
}

// FindTokensByIDs retrieves the tokens that exist among tokenIDs.
func (r *PgxTokenRepository) FindTokensByIDs(ctx context.Context, tokenIDs []string) (map[string]domain.Token, error) {
	found := make(map[string]domain.Token, len(tokenIDs))
	if len(tokenIDs) == 0 {
		return found, nil
	}
	query := `SELECT ` + tokenColumns + ` FROM opd_tokens WHERE token_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, tokenIDs)
	if err != nil {
		return nil, classifyError(err, "failed to query tokens")
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Token
		if err := rows.Scan(&t.TokenID, &t.TokenNo, &t.PatientName, &t.MRN, &t.DoctorID, &t.DepartmentID, &t.CreatedAt); err != nil {
			return nil, classifyError(err, "failed to scan token row")
		}
		found[t.TokenID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "error iterating token rows")
	}
	return found, nil
}

// PgxExpenseRepository reads the expense ledger owned by the accounts module.
type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseReader = (*PgxExpenseRepository)(nil)

// SumExpensesByDate returns the expense total per date in [from, to].
func (r *PgxExpenseRepository) SumExpensesByDate(ctx context.Context, from, to string) (map[string]decimal.Decimal, error) {
	fromParam, err := dateParam(from)
	if err != nil {
		return nil, err
	}
	toParam, err := dateParam(to)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT to_char(expense_date, 'YYYY-MM-DD'), SUM(amount)
		FROM expenses
		WHERE expense_date BETWEEN $1::date AND $2::date
		GROUP BY expense_date;
	`
	rows, err := r.Pool.Query(ctx, query, fromParam, toParam)
	if err != nil {
		return nil, classifyError(err, "failed to query expenses")
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var date string
		var amount decimal.Decimal
		if err := rows.Scan(&date, &amount); err != nil {
			return nil, classifyError(err, "failed to scan expense row")
		}
		totals[date] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "error iterating expense rows")
	}
	return totals, nil
}
