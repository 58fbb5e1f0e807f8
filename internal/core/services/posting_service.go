package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hospital_ledger/internal/core/ports/services"
	"github.com/SscSPs/hospital_ledger/internal/dto"
)

var hundred = decimal.NewFromInt(100)

// postingService builds balanced journals from earning and payout events.
type postingService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	doctorRepo  portsrepo.DoctorReader
	tokenRepo   portsrepo.TokenReader
}

// NewPostingService creates a new posting service with the provided options
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade, doctorRepo portsrepo.DoctorReader, tokenRepo portsrepo.TokenReader, options ...Option) portssvc.PostingSvc {
	svc := &postingService{
		journalRepo: journalRepo,
		doctorRepo:  doctorRepo,
		tokenRepo:   tokenRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.PostingSvc = (*postingService)(nil)

// earningInput is the common shape of manual and OPD-token earnings after attribution is resolved.
type earningInput struct {
	refType        domain.RefType
	refID          string
	dateISO        string
	amount         decimal.Decimal
	revenueAccount *string
	paidMethod     *string
	sharePercent   *decimal.Decimal
	memo           string
	payableTags    domain.Tags
	otherTags      domain.Tags
}

func (s *postingService) PostManualDoctorEarning(ctx context.Context, req dto.PostManualDoctorEarningRequest, settings domain.LedgerSettings, userID string) (*domain.Journal, error) {
	if req.DoctorID == "" {
		return nil, fmt.Errorf("%w: doctorId is required", apperrors.ErrValidation)
	}
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}
	doctor, err := s.activeDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	departmentID := req.DepartmentID
	if departmentID == "" {
		departmentID = doctor.DepartmentID
	}

	return s.postEarning(ctx, earningInput{
		refType:        domain.RefManualDoctorEarning,
		refID:          uuid.NewString(),
		dateISO:        req.DateISO,
		amount:         req.Amount,
		revenueAccount: req.RevenueAccount,
		paidMethod:     req.PaidMethod,
		sharePercent:   req.SharePercent,
		memo:           req.Memo,
		payableTags: domain.Tags{
			DoctorID:     doctor.DoctorID,
			DepartmentID: departmentID,
			PatientName:  req.PatientName,
			MRN:          req.MRN,
		},
		otherTags: domain.Tags{DepartmentID: departmentID},
	}, settings, userID)
}

func (s *postingService) PostOPDTokenEarning(ctx context.Context, req dto.PostOPDTokenEarningRequest, settings domain.LedgerSettings, userID string) (*domain.Journal, error) {
	if req.TokenID == "" {
		return nil, fmt.Errorf("%w: tokenId is required", apperrors.ErrValidation)
	}
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}
	token, err := s.tokenRepo.FindTokenByID(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("token %s not found", req.TokenID))
		}
		s.LogError(ctx, err, "Failed to load token for earning", slog.String("token_id", req.TokenID))
		return nil, fmt.Errorf("failed to load token %s: %w", req.TokenID, err)
	}
	if token.DoctorID == "" {
		return nil, fmt.Errorf("%w: token %s has no doctor assigned", apperrors.ErrValidation, req.TokenID)
	}
	if _, err := s.activeDoctor(ctx, token.DoctorID); err != nil {
		return nil, err
	}

	memo := req.Memo
	if memo == "" {
		memo = fmt.Sprintf("OPD token #%d", token.TokenNo)
	}

	return s.postEarning(ctx, earningInput{
		refType:        domain.RefOPDToken,
		refID:          token.TokenID,
		dateISO:        req.DateISO,
		amount:         req.Amount,
		revenueAccount: req.RevenueAccount,
		paidMethod:     req.PaidMethod,
		sharePercent:   req.SharePercent,
		memo:           memo,
		payableTags: domain.Tags{
			DoctorID:     token.DoctorID,
			DepartmentID: token.DepartmentID,
			TokenID:      token.TokenID,
			PatientName:  token.PatientName,
			MRN:          token.MRN,
		},
		otherTags: domain.Tags{DepartmentID: token.DepartmentID, TokenID: token.TokenID},
	}, settings, userID)
}

func (s *postingService) CreateDoctorPayout(ctx context.Context, req dto.PostDoctorPayoutRequest, settings domain.LedgerSettings, userID string) (*domain.Journal, error) {
	if req.DoctorID == "" {
		return nil, fmt.Errorf("%w: doctorId is required", apperrors.ErrValidation)
	}
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}
	method := domain.PaidCash
	if req.Method != nil && *req.Method != "" {
		m, err := domain.ParsePaidMethod(*req.Method)
		if err != nil {
			return nil, err
		}
		method = m
	}
	if method == domain.PaidAR {
		return nil, fmt.Errorf("%w: payouts must be made in Cash or Bank", apperrors.ErrValidation)
	}
	dateISO, err := s.postingDate(req.DateISO, settings)
	if err != nil {
		return nil, err
	}
	if _, err := s.findDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	memo := req.Memo
	if memo == "" {
		memo = fmt.Sprintf("Payout to doctor %s", req.DoctorID)
	}

	journal := domain.Journal{
		JournalID: uuid.NewString(),
		DateISO:   dateISO,
		RefType:   domain.RefDoctorPayout,
		RefID:     req.DoctorID,
		Memo:      memo,
		Lines: []domain.JournalLine{
			domain.DebitLine(domain.DoctorPayable, req.Amount, domain.Tags{DoctorID: req.DoctorID}),
			domain.CreditLine(method.Account(), req.Amount, domain.Tags{}),
		},
		CreatedAt: s.Now().UTC(),
		CreatedBy: userID,
	}
	if err := s.save(ctx, journal); err != nil {
		return nil, err
	}

	totals, err := s.journalRepo.SumDoctorPayable(ctx, req.DoctorID, "", "")
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance after payout", slog.String("doctor_id", req.DoctorID))
		return &journal, nil
	}
	if balance := totals.Credits.Sub(totals.Debits); balance.IsNegative() {
		s.LogWarn(ctx, "Doctor payout exceeds payable balance",
			slog.String("doctor_id", req.DoctorID),
			slog.String("journal_id", journal.JournalID),
			slog.String("balance", balance.String()))
	}
	return &journal, nil
}

func (s *postingService) postEarning(ctx context.Context, in earningInput, settings domain.LedgerSettings, userID string) (*domain.Journal, error) {
	revenueAccount := settings.DefaultRevenueAccount
	if in.revenueAccount != nil && *in.revenueAccount != "" {
		a, err := domain.ParseRevenueAccount(*in.revenueAccount)
		if err != nil {
			return nil, err
		}
		revenueAccount = a
	}
	if !revenueAccount.IsRevenue() {
		revenueAccount = domain.OPDRevenue
	}

	paidMethod := settings.DefaultPaidMethod
	if in.paidMethod != nil && *in.paidMethod != "" {
		m, err := domain.ParsePaidMethod(*in.paidMethod)
		if err != nil {
			return nil, err
		}
		paidMethod = m
	}

	sharePercent := in.sharePercent
	if sharePercent == nil {
		sharePercent = settings.DefaultSharePercent
	}
	doctorShare, err := DoctorShare(in.amount, sharePercent)
	if err != nil {
		return nil, err
	}
	retained := in.amount.Sub(doctorShare)

	dateISO, err := s.postingDate(in.dateISO, settings)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{domain.DebitLine(paidMethod.Account(), in.amount, in.otherTags)}
	if retained.IsPositive() {
		lines = append(lines, domain.CreditLine(revenueAccount, retained, in.otherTags))
	}
	if doctorShare.IsPositive() {
		lines = append(lines, domain.CreditLine(domain.DoctorPayable, doctorShare, in.payableTags))
	}

	journal := domain.Journal{
		JournalID: uuid.NewString(),
		DateISO:   dateISO,
		RefType:   in.refType,
		RefID:     in.refID,
		Memo:      in.memo,
		Lines:     lines,
		CreatedAt: s.Now().UTC(),
		CreatedBy: userID,
	}
	if err := s.save(ctx, journal); err != nil {
		return nil, err
	}
	return &journal, nil
}

// DoctorShare computes the doctor's portion of amount, rounded to 2 places.
// A nil percent gives the doctor the full amount. The share never exceeds amount.
func DoctorShare(amount decimal.Decimal, sharePercent *decimal.Decimal) (decimal.Decimal, error) {
	if sharePercent == nil {
		return amount, nil
	}
	if sharePercent.IsNegative() || sharePercent.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("%w: sharePercent must be between 0 and 100, got %s", apperrors.ErrValidation, sharePercent.String())
	}
	return decimal.Min(amount.Mul(*sharePercent).Div(hundred).Round(2), amount), nil
}

// amountScale is the number of decimal places the journal_lines NUMERIC column stores.
const amountScale = 4

func validAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if !amount.Equal(amount.Round(amountScale)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrValidation, amount.String(), amountScale)
	}
	return nil
}

func (s *postingService) save(ctx context.Context, journal domain.Journal) error {
	if err := journal.Validate(); err != nil {
		s.LogError(ctx, err, "Refusing to persist invalid journal", slog.String("ref_type", string(journal.RefType)))
		return err
	}
	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.metrics.WriteRejected("duplicate")
			s.LogWarn(ctx, "Earning already posted", slog.String("ref_type", string(journal.RefType)), slog.String("ref_id", journal.RefID))
			return fmt.Errorf("%w: %s %s has already been posted", apperrors.ErrDuplicate, journal.RefType, journal.RefID)
		}
		s.LogError(ctx, err, "Failed to save journal", slog.String("journal_id", journal.JournalID))
		return fmt.Errorf("failed to save journal: %w", err)
	}
	s.metrics.JournalPosted(string(journal.RefType), journal.TotalDebit())
	s.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("ref_type", string(journal.RefType)),
		slog.String("ref_id", journal.RefID),
		slog.String("amount", journal.TotalDebit().String()))
	return nil
}

func (s *postingService) postingDate(dateISO string, settings domain.LedgerSettings) (string, error) {
	if dateISO == "" {
		return settings.Today(s.Now()), nil
	}
	return validDate(dateISO)
}

func (s *postingService) findDoctor(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	doctor, err := s.doctorRepo.FindDoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor %s not found", doctorID))
		}
		s.LogError(ctx, err, "Failed to load doctor", slog.String("doctor_id", doctorID))
		return nil, fmt.Errorf("failed to load doctor %s: %w", doctorID, err)
	}
	return doctor, nil
}

func (s *postingService) activeDoctor(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	doctor, err := s.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsActive {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor %s is not active", doctorID))
	}
	return doctor, nil
}
