package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/hospital_ledger/internal/utils/pagination"
)

// Store is an append-only in-process ledger plus the read-only collaborator directories.
type Store struct {
	mu sync.RWMutex

	// journals in insertion order
	journals []domain.Journal
	byID     map[string]int

	// reversal journal index keyed by the reversed journal's id
	reversals map[string]int

	// opd_token earnings keyed by token id
	tokenEarnings map[string]int

	doctors  map[string]domain.Doctor
	tokens   map[string]domain.Token
	expenses map[string]decimal.Decimal
}

func New() *Store {
	return &Store{
		journals:      make([]domain.Journal, 0),
		byID:          make(map[string]int),
		reversals:     make(map[string]int),
		tokenEarnings: make(map[string]int),
		doctors:       make(map[string]domain.Doctor),
		tokens:        make(map[string]domain.Token),
		expenses:      make(map[string]decimal.Decimal),
	}
}

var (
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
	_ portsrepo.DoctorReader            = (*Store)(nil)
	_ portsrepo.TokenReader             = (*Store)(nil)
	_ portsrepo.ExpenseReader           = (*Store)(nil)
)

// NewRepositoryProvider wires a single Store into every repository slot.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo: s,
		DoctorRepo:  s,
		TokenRepo:   s,
		ExpenseRepo: s,
	}
}

// Collaborator seeding

func (s *Store) PutDoctor(d domain.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors[d.DoctorID] = d
}

func (s *Store) PutToken(t domain.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[t.TokenID] = t
}

// AddExpense accumulates an expense amount on a date.
func (s *Store) AddExpense(dateISO string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[dateISO] = s.expenses[dateISO].Add(amount)
}

// Journal writes

func (s *Store) SaveJournal(_ context.Context, journal domain.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if journal.RefType == domain.RefReversal {
		return s.insertReversal(journal)
	}
	if _, exists := s.byID[journal.JournalID]; exists {
		return fmt.Errorf("%w: journal %s", apperrors.ErrDuplicate, journal.JournalID)
	}
	if journal.RefType == domain.RefOPDToken {
		if _, exists := s.tokenEarnings[journal.RefID]; exists {
			return fmt.Errorf("%w: opd_token earning for %s", apperrors.ErrDuplicate, journal.RefID)
		}
		s.tokenEarnings[journal.RefID] = s.append(journal)
		return nil
	}
	s.append(journal)
	return nil
}

func (s *Store) SaveReversal(_ context.Context, reversal domain.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertReversal(reversal)
}

// insertReversal performs the check and insert under the caller's write lock.
func (s *Store) insertReversal(reversal domain.Journal) error {
	if reversal.RefType != domain.RefReversal {
		return fmt.Errorf("%w: journal %s is not a reversal", apperrors.ErrValidation, reversal.JournalID)
	}
	if _, exists := s.reversals[reversal.RefID]; exists {
		return fmt.Errorf("%w: journal %s already has a reversal", apperrors.ErrConflict, reversal.RefID)
	}
	if _, exists := s.byID[reversal.JournalID]; exists {
		return fmt.Errorf("%w: journal %s", apperrors.ErrDuplicate, reversal.JournalID)
	}
	s.reversals[reversal.RefID] = s.append(reversal)
	return nil
}

func (s *Store) append(journal domain.Journal) int {
	s.journals = append(s.journals, cloneJournal(journal))
	i := len(s.journals) - 1
	s.byID[journal.JournalID] = i
	return i
}

// Journal reads

func (s *Store) FindJournalByID(_ context.Context, journalID string) (*domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.byID[journalID]; ok {
		j := cloneJournal(s.journals[i])
		return &j, nil
	}
	return nil, apperrors.NewNotFoundError("journal " + journalID)
}

func (s *Store) FindReversalOf(_ context.Context, journalID string) (*domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.reversals[journalID]; ok {
		j := cloneJournal(s.journals[i])
		return &j, nil
	}
	return nil, apperrors.NewNotFoundError("reversal of journal " + journalID)
}

func (s *Store) ListEarningJournals(_ context.Context, filter domain.EarningsFilter) ([]domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Journal, 0)
	for _, j := range s.journals {
		if !j.RefType.IsEarning() || !inRange(j.DateISO, filter.From, filter.To) {
			continue
		}
		if hasPayableCredit(j, filter.DoctorID) {
			result = append(result, cloneJournal(j))
		}
	}
	return result, nil
}

func (s *Store) FindReversedJournalIDs(_ context.Context, journalIDs []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reversed := make(map[string]bool)
	for _, id := range journalIDs {
		if _, ok := s.reversals[id]; ok {
			reversed[id] = true
		}
	}
	return reversed, nil
}

func (s *Store) SumDoctorPayable(_ context.Context, doctorID string, from, to string) (domain.PayableTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := domain.PayableTotals{Credits: decimal.Zero, Debits: decimal.Zero}
	for _, j := range s.journals {
		if !inRange(j.DateISO, from, to) {
			continue
		}
		for _, l := range j.Lines {
			if l.Account != domain.DoctorPayable || l.Tags.DoctorID != doctorID {
				continue
			}
			totals.Credits = totals.Credits.Add(l.Credit)
			totals.Debits = totals.Debits.Add(l.Debit)
		}
	}
	return totals, nil
}

func (s *Store) ListDoctorPayoutJournals(_ context.Context, doctorID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursor = &c
	}

	s.mu.RLock()
	payouts := make([]domain.Journal, 0)
	for _, j := range s.journals {
		if j.RefType != domain.RefDoctorPayout || j.RefID != doctorID {
			continue
		}
		if cursor != nil && !cursor.Before(j.DateISO, j.CreatedAt, j.JournalID) {
			continue
		}
		payouts = append(payouts, cloneJournal(j))
	}
	s.mu.RUnlock()

	sort.Slice(payouts, func(a, b int) bool {
		pa, pb := payouts[a], payouts[b]
		if pa.DateISO != pb.DateISO {
			return pa.DateISO > pb.DateISO
		}
		if !pa.CreatedAt.Equal(pb.CreatedAt) {
			return pa.CreatedAt.After(pb.CreatedAt)
		}
		return pa.JournalID > pb.JournalID
	})

	if limit <= 0 || len(payouts) <= limit {
		return payouts, nil, nil
	}
	page := payouts[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.DateISO, last.CreatedAt, last.JournalID)
	return page, &token, nil
}

func (s *Store) SumByDateAccountRefType(_ context.Context, from, to string) ([]domain.AccountDayTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		date    string
		account domain.Account
		refType domain.RefType
	}
	sums := make(map[key]*domain.AccountDayTotal)
	order := make([]key, 0)
	for _, j := range s.journals {
		if !inRange(j.DateISO, from, to) {
			continue
		}
		for _, l := range j.Lines {
			k := key{j.DateISO, l.Account, j.RefType}
			t, ok := sums[k]
			if !ok {
				t = &domain.AccountDayTotal{DateISO: j.DateISO, Account: l.Account, RefType: j.RefType, Debit: decimal.Zero, Credit: decimal.Zero}
				sums[k] = t
				order = append(order, k)
			}
			t.Debit = t.Debit.Add(l.Debit)
			t.Credit = t.Credit.Add(l.Credit)
		}
	}

	result := make([]domain.AccountDayTotal, 0, len(order))
	for _, k := range order {
		result = append(result, *sums[k])
	}
	sort.SliceStable(result, func(a, b int) bool { return result[a].DateISO < result[b].DateISO })
	return result, nil
}

// Collaborator reads

func (s *Store) FindDoctorByID(_ context.Context, doctorID string) (*domain.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.doctors[doctorID]; ok {
		return &d, nil
	}
	return nil, apperrors.NewNotFoundError("doctor " + doctorID)
}

func (s *Store) FindTokenByID(_ context.Context, tokenID string) (*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.tokens[tokenID]; ok {
		return &t, nil
	}
	return nil, apperrors.NewNotFoundError("token " + tokenID)
}

func (s *Store) FindTokensByIDs(_ context.Context, tokenIDs []string) (map[string]domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]domain.Token, len(tokenIDs))
	for _, id := range tokenIDs {
		if t, ok := s.tokens[id]; ok {
			found[id] = t
		}
	}
	return found, nil
}

func (s *Store) SumExpensesByDate(_ context.Context, from, to string) (map[string]decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]decimal.Decimal)
	for date, amount := range s.expenses {
		if inRange(date, from, to) {
			result[date] = amount
		}
	}
	return result, nil
}

// inRange compares YYYY-MM-DD strings lexically; empty bounds are open.
func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

func hasPayableCredit(j domain.Journal, doctorID string) bool {
	for _, l := range j.Lines {
		if l.Account == domain.DoctorPayable && l.Credit.IsPositive() && (doctorID == "" || l.Tags.DoctorID == doctorID) {
			return true
		}
	}
	return false
}

func cloneJournal(j domain.Journal) domain.Journal {
	lines := make([]domain.JournalLine, len(j.Lines))
	copy(lines, j.Lines)
	j.Lines = lines
	return j
}
