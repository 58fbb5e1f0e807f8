package repositories

import (
	"context"

	"github.com/SscSPs/hospital_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a journal with its lines. Returns apperrors.ErrNotFound when absent.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindReversalOf retrieves the reversal journal whose refId is journalID, or apperrors.ErrNotFound.
	FindReversalOf(ctx context.Context, journalID string) (*domain.Journal, error)
}

// JournalWriter defines the append-only write operations. There is no update or delete.
type JournalWriter interface {
	// SaveJournal persists a journal and its lines atomically.
	// A second opd_token journal for the same refId fails with apperrors.ErrDuplicate.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// SaveReversal persists a reversal journal as a conditional insert: it fails with
	// apperrors.ErrConflict if a reversal with the same refId already exists.
	SaveReversal(ctx context.Context, reversal domain.Journal) error
}

// EarningsQueries are the typed read queries behind the earnings and payable views.
type EarningsQueries interface {
	// ListEarningJournals returns opd_token and manual_doctor_earning journals that credit
	// DOCTOR_PAYABLE (for filter.DoctorID when set) within the optional date range.
	ListEarningJournals(ctx context.Context, filter domain.EarningsFilter) ([]domain.Journal, error)

	// FindReversedJournalIDs returns the subset of journalIDs that have a reversal.
	FindReversedJournalIDs(ctx context.Context, journalIDs []string) (map[string]bool, error)

	// SumDoctorPayable sums credits and debits of DOCTOR_PAYABLE lines tagged with doctorID
	// across every journal type. Empty from/to leave that side of the range open.
	SumDoctorPayable(ctx context.Context, doctorID string, from, to string) (domain.PayableTotals, error)

	// ListDoctorPayoutJournals returns doctor_payout journals for doctorID, newest first,
	// using token-based pagination.
	ListDoctorPayoutJournals(ctx context.Context, doctorID string, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// RollupQueries are the typed read queries behind the periodic rollups.
type RollupQueries interface {
	// SumByDateAccountRefType groups line totals by date, account and ref type in [from, to].
	SumByDateAccountRefType(ctx context.Context, from, to string) ([]domain.AccountDayTotal, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EarningsQueries
	RollupQueries
}
