package services

import (
	"context"

	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	"github.com/SscSPs/hospital_ledger/internal/dto"
)

// PostingSvc builds and appends balanced journals from domain events.
type PostingSvc interface {
	// PostManualDoctorEarning records money received for a doctor's service and the doctor's share.
	PostManualDoctorEarning(ctx context.Context, req dto.PostManualDoctorEarningRequest, settings domain.LedgerSettings, userID string) (*domain.Journal, error)

	// PostOPDTokenEarning records the earning for an OPD token; attribution is read from the token.
	PostOPDTokenEarning(ctx context.Context, req dto.PostOPDTokenEarningRequest, settings domain.LedgerSettings, userID string) (*domain.Journal, error)

	// CreateDoctorPayout records money paid out to a doctor against DOCTOR_PAYABLE.
	CreateDoctorPayout(ctx context.Context, req dto.PostDoctorPayoutRequest, settings domain.LedgerSettings, userID string) (*domain.Journal, error)
}

// ReversalSvc appends compensating journals. Originals are never touched.
type ReversalSvc interface {
	// ReverseJournalByID creates the reversal of journalID.
	ReverseJournalByID(ctx context.Context, journalID string, memo string, settings domain.LedgerSettings, userID string) (*domain.Journal, error)
}

// EarningsSvc answers the doctor earnings, payable and payout read views.
type EarningsSvc interface {
	// GetJournal returns a journal and the id of its reversal, if any.
	GetJournal(ctx context.Context, journalID string) (*dto.JournalResponse, error)

	// ListDoctorEarnings lists non-reversed earnings, most recent first.
	ListDoctorEarnings(ctx context.Context, filter domain.EarningsFilter) ([]domain.DoctorEarning, error)

	// GetDoctorBalance computes the running payable balance for a doctor.
	GetDoctorBalance(ctx context.Context, doctorID string) (*domain.DoctorBalance, error)

	// GetDoctorAccruals sums DOCTOR_PAYABLE movement for a doctor in [from, to].
	GetDoctorAccruals(ctx context.Context, doctorID string, from, to string) (*domain.DoctorAccruals, error)

	// ListDoctorPayouts lists payout journals for a doctor, newest first.
	ListDoctorPayouts(ctx context.Context, doctorID string, params dto.ListDoctorPayoutsParams) (*dto.ListDoctorPayoutsResponse, error)
}

// RollupSvc produces the daily and weekly financial summaries.
type RollupSvc interface {
	LedgerDaily(ctx context.Context, from, to string, settings domain.LedgerSettings) (*domain.LedgerDailyReport, error)
	LedgerWeekly(ctx context.Context, from, to string, settings domain.LedgerSettings) (*domain.LedgerWeeklyReport, error)
}
