package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hospital_ledger/internal/core/ports/services"
)

// reversalService appends compensating journals.
type reversalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewReversalService creates a new reversal service with the provided options
func NewReversalService(journalRepo portsrepo.JournalRepositoryFacade, options ...Option) portssvc.ReversalSvc {
	svc := &reversalService{journalRepo: journalRepo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.ReversalSvc = (*reversalService)(nil)

// validateReversalAndGetOriginal loads the journal to reverse and checks it may be reversed.
func (s *reversalService) validateReversalAndGetOriginal(ctx context.Context, journalID string) (*domain.Journal, error) {
	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Original journal not found for reversal", slog.String("journal_id", journalID))
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal %s not found", journalID))
		}
		s.LogError(ctx, err, "Failed to fetch original journal for reversal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve original journal: %w", err)
	}

	if original.RefType == domain.RefReversal {
		s.LogWarn(ctx, "Attempted to reverse a journal that is already a reversal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("%w: journal %s is a reversal and cannot be reversed", apperrors.ErrConflict, journalID)
	}

	existing, err := s.journalRepo.FindReversalOf(ctx, journalID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: journal %s was already reversed by %s", apperrors.ErrConflict, journalID, existing.JournalID)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for existing reversal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to check for existing reversal: %w", err)
	}
	return original, nil
}

func (s *reversalService) ReverseJournalByID(ctx context.Context, journalID string, memo string, settings domain.LedgerSettings, userID string) (*domain.Journal, error) {
	if journalID == "" {
		return nil, fmt.Errorf("%w: journal id is required", apperrors.ErrValidation)
	}
	original, err := s.validateReversalAndGetOriginal(ctx, journalID)
	if err != nil {
		return nil, err
	}

	if memo == "" {
		memo = ReversalMemo(*original)
	}
	reversal := domain.Journal{
		JournalID: uuid.NewString(),
		DateISO:   settings.Today(s.Now()),
		RefType:   domain.RefReversal,
		RefID:     original.JournalID,
		Memo:      memo,
		Lines:     original.ReversalLines(),
		CreatedAt: s.Now().UTC(),
		CreatedBy: userID,
	}
	if err := reversal.Validate(); err != nil {
		s.LogError(ctx, err, "Reversal of journal would be invalid", slog.String("journal_id", journalID))
		return nil, err
	}
	if err := cancelsOut(*original, reversal); err != nil {
		s.LogError(ctx, err, "Reversal does not cancel the original", slog.String("journal_id", journalID))
		return nil, err
	}

	// The store's conditional insert is the authority; the lookup above only gives a friendlier message.
	if err := s.journalRepo.SaveReversal(ctx, reversal); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.metrics.WriteRejected("conflict")
			s.LogWarn(ctx, "Concurrent reversal rejected", slog.String("journal_id", journalID))
			return nil, fmt.Errorf("%w: journal %s was already reversed", apperrors.ErrConflict, journalID)
		}
		s.LogError(ctx, err, "Failed to save reversal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	s.metrics.JournalPosted(string(reversal.RefType), reversal.TotalDebit())
	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("reversal_id", reversal.JournalID),
		slog.String("user_id", userID))
	return &reversal, nil
}

// ReversalMemo is the default description of a reversal.
func ReversalMemo(original domain.Journal) string {
	if original.Memo == "" {
		return fmt.Sprintf("Reversal of %s", original.JournalID)
	}
	return fmt.Sprintf("Reversal of %s: %s", original.JournalID, original.Memo)
}

// cancelsOut checks that every account touched by original nets to zero once reversal is applied.
func cancelsOut(original, reversal domain.Journal) error {
	lines := append(append([]domain.JournalLine{}, original.Lines...), reversal.Lines...)
	net, err := domain.NetByAccount(lines)
	if err != nil {
		return err
	}
	for account, amount := range net {
		if !amount.IsZero() {
			return fmt.Errorf("%w: account %s is left at %s after reversal", apperrors.ErrValidation, account, amount.String())
		}
	}
	return nil
}
