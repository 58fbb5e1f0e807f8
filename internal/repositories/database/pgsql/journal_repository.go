package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/hospital_ledger/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journals and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `j.journal_id, to_char(j.journal_date, 'YYYY-MM-DD'), j.ref_type, j.ref_id, j.memo, j.created_at, j.created_by`

const insertJournalQuery = `
	INSERT INTO journals (journal_id, journal_date, ref_type, ref_id, memo, created_at, created_by)
	VALUES ($1, $2::date, $3, $4, $5, $6, $7);
`

const insertLineQuery = `
	INSERT INTO journal_lines (journal_id, line_no, account, debit, credit, doctor_id, department_id, token_id, patient_name, mrn)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// SaveJournal inserts a journal and its lines within a DB transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	return r.insert(ctx, journal)
}

// SaveReversal relies on the partial unique index on ref_id for reversals;
// a concurrent second reversal fails the insert and rolls back.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.Journal) error {
	if reversal.RefType != domain.RefReversal {
		return fmt.Errorf("%w: journal %s is not a reversal", apperrors.ErrValidation, reversal.JournalID)
	}
	return r.insert(ctx, reversal)
}

func (r *PgxJournalRepository) insert(ctx context.Context, journal domain.Journal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once committed
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, insertJournalQuery,
		journal.JournalID,
		journal.DateISO,
		string(journal.RefType),
		journal.RefID,
		journal.Memo,
		journal.CreatedAt,
		journal.CreatedBy,
	)
	if err != nil {
		return classifyError(err, "failed to insert journal "+journal.JournalID)
	}

	batch := &pgx.Batch{}
	for i, l := range journal.Lines {
		batch.Queue(insertLineQuery,
			journal.JournalID,
			i+1,
			string(l.Account),
			l.Debit,
			l.Credit,
			nullIfEmpty(l.Tags.DoctorID),
			nullIfEmpty(l.Tags.DepartmentID),
			nullIfEmpty(l.Tags.TokenID),
			nullIfEmpty(l.Tags.PatientName),
			nullIfEmpty(l.Tags.MRN),
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return classifyError(err, "failed to insert lines for journal "+journal.JournalID)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal with its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals j WHERE j.journal_id = $1;`
	journals, err := r.queryJournals(ctx, query, journalID)
	if err != nil {
		return nil, err
	}
	if len(journals) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &journals[0], nil
}

// FindReversalOf retrieves the reversal journal for journalID.
func (r *PgxJournalRepository) FindReversalOf(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals j WHERE j.ref_type = 'reversal' AND j.ref_id = $1;`
	journals, err := r.queryJournals(ctx, query, journalID)
	if err != nil {
		return nil, err
	}
	if len(journals) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &journals[0], nil
}

// ListEarningJournals returns earning journals that credit DOCTOR_PAYABLE.
func (r *PgxJournalRepository) ListEarningJournals(ctx context.Context, filter domain.EarningsFilter) ([]domain.Journal, error) {
	from, err := dateParam(filter.From)
	if err != nil {
		return nil, err
	}
	to, err := dateParam(filter.To)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + journalColumns + `
		FROM journals j
		WHERE j.ref_type IN ('opd_token', 'manual_doctor_earning')
		  AND ($2::date IS NULL OR j.journal_date >= $2::date)
		  AND ($3::date IS NULL OR j.journal_date <= $3::date)
		  AND EXISTS (
		      SELECT 1 FROM journal_lines l
		      WHERE l.journal_id = j.journal_id
		        AND l.account = 'DOCTOR_PAYABLE'
		        AND l.credit > 0
		        AND ($1 = '' OR l.doctor_id = $1)
		  )
		ORDER BY j.journal_date DESC, j.created_at DESC;
	`
	return r.queryJournals(ctx, query, filter.DoctorID, from, to)
}

// FindReversedJournalIDs returns the subset of journalIDs that have a reversal.
func (r *PgxJournalRepository) FindReversedJournalIDs(ctx context.Context, journalIDs []string) (map[string]bool, error) {
	reversed := make(map[string]bool)
	if len(journalIDs) == 0 {
		return reversed, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT ref_id FROM journals WHERE ref_type = 'reversal' AND ref_id = ANY($1);`, journalIDs)
	if err != nil {
		return nil, classifyError(err, "failed to query reversals")
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classifyError(err, "failed to scan reversal row")
		}
		reversed[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "error iterating reversal rows")
	}
	return reversed, nil
}

// SumDoctorPayable sums DOCTOR_PAYABLE lines tagged with doctorID across every journal type.
func (r *PgxJournalRepository) SumDoctorPayable(ctx context.Context, doctorID string, from, to string) (domain.PayableTotals, error) {
	fromParam, err := dateParam(from)
	if err != nil {
		return domain.PayableTotals{}, err
	}
	toParam, err := dateParam(to)
	if err != nil {
		return domain.PayableTotals{}, err
	}

	query := `
		SELECT COALESCE(SUM(l.credit), 0), COALESCE(SUM(l.debit), 0)
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE l.account = 'DOCTOR_PAYABLE'
		  AND l.doctor_id = $1
		  AND ($2::date IS NULL OR j.journal_date >= $2::date)
		  AND ($3::date IS NULL OR j.journal_date <= $3::date);
	`
	var totals domain.PayableTotals
	if err := r.Pool.QueryRow(ctx, query, doctorID, fromParam, toParam).Scan(&totals.Credits, &totals.Debits); err != nil {
		return domain.PayableTotals{}, classifyError(err, "failed to sum payable for doctor "+doctorID)
	}
	return totals, nil
}

// ListDoctorPayoutJournals retrieves payout journals for a doctor using token-based pagination.
func (r *PgxJournalRepository) ListDoctorPayoutJournals(ctx context.Context, doctorID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	var cursorDate, cursorCreatedAt, cursorID any
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursorDate, _ = dateParam(cursor.DateISO)
		cursorCreatedAt = cursor.CreatedAt
		cursorID = cursor.JournalID
	}

	query := `
		SELECT ` + journalColumns + `
		FROM journals j
		WHERE j.ref_type = 'doctor_payout'
		  AND j.ref_id = $1
		  AND ($2::date IS NULL OR (j.journal_date, j.created_at, j.journal_id) < ($2::date, $3::timestamptz, $4::text))
		ORDER BY j.journal_date DESC, j.created_at DESC, j.journal_id DESC
		LIMIT $5;
	`
	journals, err := r.queryJournals(ctx, query, doctorID, cursorDate, cursorCreatedAt, cursorID, fetchLimit)
	if err != nil {
		return nil, nil, err
	}

	if len(journals) <= limit {
		return journals, nil, nil
	}
	// The token points to the last item included in this page.
	last := journals[limit-1]
	token := pagination.EncodeToken(last.DateISO, last.CreatedAt, last.JournalID)
	return journals[:limit], &token, nil
}

// SumByDateAccountRefType groups line totals by date, account and ref type.
func (r *PgxJournalRepository) SumByDateAccountRefType(ctx context.Context, from, to string) ([]domain.AccountDayTotal, error) {
	fromParam, err := dateParam(from)
	if err != nil {
		return nil, err
	}
	toParam, err := dateParam(to)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT to_char(j.journal_date, 'YYYY-MM-DD'), l.account, j.ref_type, SUM(l.debit), SUM(l.credit)
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE j.journal_date BETWEEN $1::date AND $2::date
		GROUP BY j.journal_date, l.account, j.ref_type
		ORDER BY j.journal_date;
	`
	rows, err := r.Pool.Query(ctx, query, fromParam, toParam)
	if err != nil {
		return nil, classifyError(err, "failed to query ledger totals")
	}
	defer rows.Close()

	totals := make([]domain.AccountDayTotal, 0)
	for rows.Next() {
		var t domain.AccountDayTotal
		var account, refType string
		if err := rows.Scan(&t.DateISO, &account, &refType, &t.Debit, &t.Credit); err != nil {
			return nil, classifyError(err, "failed to scan ledger total row")
		}
		t.Account = domain.Account(account)
		t.RefType = domain.RefType(refType)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "error iterating ledger total rows")
	}
	return totals, nil
}

// queryJournals runs a journal header query and attaches each journal's lines in order.
func (r *PgxJournalRepository) queryJournals(ctx context.Context, query string, args ...any) ([]domain.Journal, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err, "failed to query journals")
	}
	defer rows.Close()

	journals := make([]domain.Journal, 0)
	for rows.Next() {
		var j domain.Journal
		var refType string
		if err := rows.Scan(&j.JournalID, &j.DateISO, &refType, &j.RefID, &j.Memo, &j.CreatedAt, &j.CreatedBy); err != nil {
			return nil, classifyError(err, "failed to scan journal row")
		}
		j.RefType = domain.RefType(refType)
		j.CreatedAt = utc(j.CreatedAt)
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "error iterating journal rows")
	}
	if len(journals) == 0 {
		return journals, nil
	}

	ids := make([]string, len(journals))
	for i, j := range journals {
		ids[i] = j.JournalID
	}
	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range journals {
		journals[i].Lines = lines[journals[i].JournalID]
	}
	return journals, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	query := `
		SELECT journal_id, account, debit, credit,
		       COALESCE(doctor_id, ''), COALESCE(department_id, ''), COALESCE(token_id, ''),
		       COALESCE(patient_name, ''), COALESCE(mrn, '')
		FROM journal_lines
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, classifyError(err, "failed to query journal lines")
	}
	defer rows.Close()

	lines := make(map[string][]domain.JournalLine, len(journalIDs))
	for rows.Next() {
		var journalID, account string
		var debit, credit decimal.Decimal
		var tags domain.Tags
		if err := rows.Scan(&journalID, &account, &debit, &credit,
			&tags.DoctorID, &tags.DepartmentID, &tags.TokenID, &tags.PatientName, &tags.MRN); err != nil {
			return nil, classifyError(err, "failed to scan journal line row")
		}
		lines[journalID] = append(lines[journalID], domain.JournalLine{
			Account: domain.Account(account),
			Debit:   debit,
			Credit:  credit,
			Tags:    tags,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "error iterating journal line rows")
	}
	return lines, nil
}
