package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hospital_ledger/internal/core/ports/services"
	"github.com/SscSPs/hospital_ledger/internal/dto"
	"github.com/SscSPs/hospital_ledger/internal/utils/dates"
)

const (
	defaultPayoutLimit = 20
	maxPayoutLimit     = 200
)

// earningsService answers the doctor earnings, payable and payout read views.
type earningsService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	tokenRepo   portsrepo.TokenReader
}

// NewEarningsService creates a new earnings service with the provided options
func NewEarningsService(journalRepo portsrepo.JournalRepositoryFacade, tokenRepo portsrepo.TokenReader, options ...Option) portssvc.EarningsSvc {
	svc := &earningsService{journalRepo: journalRepo, tokenRepo: tokenRepo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.EarningsSvc = (*earningsService)(nil)

func (s *earningsService) GetJournal(ctx context.Context, journalID string) (*dto.JournalResponse, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal %s not found", journalID))
		}
		s.LogError(ctx, err, "Failed to get journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to get journal: %w", err)
	}

	resp := dto.ToJournalResponse(journal)
	reversal, err := s.journalRepo.FindReversalOf(ctx, journalID)
	switch {
	case err == nil:
		resp.ReversedBy = &reversal.JournalID
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up reversal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to look up reversal: %w", err)
	}
	return &resp, nil
}

func (s *earningsService) ListDoctorEarnings(ctx context.Context, filter domain.EarningsFilter) ([]domain.DoctorEarning, error) {
	var err error
	if filter.From, err = dates.ParseOptional(filter.From); err != nil {
		return nil, err
	}
	if filter.To, err = dates.ParseOptional(filter.To); err != nil {
		return nil, err
	}

	journals, err := s.journalRepo.ListEarningJournals(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list earning journals", slog.String("doctor_id", filter.DoctorID))
		return nil, fmt.Errorf("failed to list earnings: %w", err)
	}
	if len(journals) == 0 {
		return []domain.DoctorEarning{}, nil
	}

	ids := make([]string, len(journals))
	for i, j := range journals {
		ids[i] = j.JournalID
	}
	reversed, err := s.journalRepo.FindReversedJournalIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to find reversed earnings")
		return nil, fmt.Errorf("failed to list earnings: %w", err)
	}

	earnings := make([]domain.DoctorEarning, 0, len(journals))
	for _, j := range journals {
		if reversed[j.JournalID] {
			continue
		}
		earnings = append(earnings, EarningRows(j, filter.DoctorID)...)
	}

	s.enrichFromTokens(ctx, earnings)

	sort.SliceStable(earnings, func(a, b int) bool {
		if earnings[a].DateISO != earnings[b].DateISO {
			return earnings[a].DateISO > earnings[b].DateISO
		}
		return earnings[a].CreatedAt.After(earnings[b].CreatedAt)
	})
	return earnings, nil
}

// EarningRows extracts one row per DOCTOR_PAYABLE credit line of an earning journal.
// An empty doctorID keeps every doctor's lines.
func EarningRows(j domain.Journal, doctorID string) []domain.DoctorEarning {
	earningType := string(j.RefType)
	for _, l := range j.Lines {
		if l.Account.IsRevenue() && l.Side() == domain.Credit {
			earningType = string(l.Account)
			break
		}
	}

	var rows []domain.DoctorEarning
	for _, l := range j.Lines {
		if l.Account != domain.DoctorPayable || l.Side() != domain.Credit {
			continue
		}
		if doctorID != "" && l.Tags.DoctorID != doctorID {
			continue
		}
		tokenID := l.Tags.TokenID
		if tokenID == "" && j.RefType == domain.RefOPDToken {
			tokenID = j.RefID
		}
		rows = append(rows, domain.DoctorEarning{
			JournalID:    j.JournalID,
			DateISO:      j.DateISO,
			DoctorID:     l.Tags.DoctorID,
			DepartmentID: l.Tags.DepartmentID,
			TokenID:      tokenID,
			Type:         earningType,
			RefType:      j.RefType,
			Amount:       l.Credit,
			Memo:         j.Memo,
			PatientName:  l.Tags.PatientName,
			MRN:          l.Tags.MRN,
			CreatedAt:    j.CreatedAt,
		})
	}
	return rows
}

// enrichFromTokens overlays live token details on the rows. Tag snapshots stay when the token is gone.
func (s *earningsService) enrichFromTokens(ctx context.Context, earnings []domain.DoctorEarning) {
	if s.tokenRepo == nil {
		return
	}
	seen := make(map[string]struct{})
	tokenIDs := make([]string, 0)
	for _, e := range earnings {
		if e.TokenID == "" {
			continue
		}
		if _, ok := seen[e.TokenID]; !ok {
			seen[e.TokenID] = struct{}{}
			tokenIDs = append(tokenIDs, e.TokenID)
		}
	}
	if len(tokenIDs) == 0 {
		return
	}

	tokens, err := s.tokenRepo.FindTokensByIDs(ctx, tokenIDs)
	if err != nil {
		s.LogWarn(ctx, "Token enrichment unavailable, using tag snapshots", slog.String("error", err.Error()))
		return
	}
	for i := range earnings {
		t, ok := tokens[earnings[i].TokenID]
		if !ok {
			continue
		}
		if t.PatientName != "" {
			earnings[i].PatientName = t.PatientName
		}
		if t.MRN != "" {
			earnings[i].MRN = t.MRN
		}
		tokenNo := t.TokenNo
		earnings[i].TokenNo = &tokenNo
	}
}

func (s *earningsService) GetDoctorBalance(ctx context.Context, doctorID string) (*domain.DoctorBalance, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("%w: doctorId is required", apperrors.ErrValidation)
	}
	totals, err := s.journalRepo.SumDoctorPayable(ctx, doctorID, "", "")
	if err != nil {
		s.LogError(ctx, err, "Failed to compute doctor balance", slog.String("doctor_id", doctorID))
		return nil, fmt.Errorf("failed to compute doctor balance: %w", err)
	}
	return &domain.DoctorBalance{
		DoctorID: doctorID,
		Payable:  totals.Credits.Sub(totals.Debits),
	}, nil
}

func (s *earningsService) GetDoctorAccruals(ctx context.Context, doctorID string, from, to string) (*domain.DoctorAccruals, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("%w: doctorId is required", apperrors.ErrValidation)
	}
	fromTime, toTime, err := dates.ParseRange(from, to)
	if err != nil {
		return nil, err
	}
	fromDate, toDate := fromTime.Format(dates.Layout), toTime.Format(dates.Layout)

	totals, err := s.journalRepo.SumDoctorPayable(ctx, doctorID, fromDate, toDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute doctor accruals", slog.String("doctor_id", doctorID))
		return nil, fmt.Errorf("failed to compute doctor accruals: %w", err)
	}
	return &domain.DoctorAccruals{
		DoctorID:  doctorID,
		From:      fromDate,
		To:        toDate,
		Accruals:  totals.Credits,
		Debits:    totals.Debits,
		Suggested: decimal.Max(totals.Credits.Sub(totals.Debits), decimal.Zero),
	}, nil
}

func (s *earningsService) ListDoctorPayouts(ctx context.Context, doctorID string, params dto.ListDoctorPayoutsParams) (*dto.ListDoctorPayoutsResponse, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("%w: doctorId is required", apperrors.ErrValidation)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPayoutLimit
	}
	if limit > maxPayoutLimit {
		limit = maxPayoutLimit
	}

	journals, nextToken, err := s.journalRepo.ListDoctorPayoutJournals(ctx, doctorID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list doctor payouts", slog.String("doctor_id", doctorID))
		return nil, fmt.Errorf("failed to list doctor payouts: %w", err)
	}

	payouts := make([]domain.DoctorPayout, 0, len(journals))
	for _, j := range journals {
		payouts = append(payouts, PayoutRow(j))
	}
	return &dto.ListDoctorPayoutsResponse{Payouts: payouts, NextToken: nextToken}, nil
}

// PayoutRow reduces a payout journal to its display amount: the CASH or BANK credit,
// falling back to the DOCTOR_PAYABLE debit.
func PayoutRow(j domain.Journal) domain.DoctorPayout {
	row := domain.DoctorPayout{
		JournalID: j.JournalID,
		RefID:     j.RefID,
		DateISO:   j.DateISO,
		Memo:      j.Memo,
		Amount:    decimal.Zero,
		CreatedAt: j.CreatedAt,
	}
	for _, account := range []domain.Account{domain.Cash, domain.Bank} {
		if l, ok := j.FirstLine(account, domain.Credit); ok {
			row.Amount = l.Credit
			row.Method = account
			return row
		}
	}
	if l, ok := j.FirstLine(domain.DoctorPayable, domain.Debit); ok {
		row.Amount = l.Debit
	}
	return row
}
