package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/hospital_ledger/internal/core/services"
	"github.com/SscSPs/hospital_ledger/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindReversalOf(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.Journal) error {
	args := m.Called(ctx, reversal)
	return args.Error(0)
}

func (m *MockJournalRepository) ListEarningJournals(ctx context.Context, filter domain.EarningsFilter) ([]domain.Journal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindReversedJournalIDs(ctx context.Context, journalIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, journalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockJournalRepository) SumDoctorPayable(ctx context.Context, doctorID string, from, to string) (domain.PayableTotals, error) {
	args := m.Called(ctx, doctorID, from, to)
	return args.Get(0).(domain.PayableTotals), args.Error(1)
}

func (m *MockJournalRepository) ListDoctorPayoutJournals(ctx context.Context, doctorID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, doctorID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SumByDateAccountRefType(ctx context.Context, from, to string) ([]domain.AccountDayTotal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountDayTotal), args.Error(1)
}

// --- Mock collaborators ---
type MockDoctorReader struct {
	mock.Mock
}

var _ portsrepo.DoctorReader = (*MockDoctorReader)(nil)

func (m *MockDoctorReader) FindDoctorByID(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Doctor), args.Error(1)
}

type MockTokenReader struct {
	mock.Mock
}

var _ portsrepo.TokenReader = (*MockTokenReader)(nil)

func (m *MockTokenReader) FindTokenByID(ctx context.Context, tokenID string) (*domain.Token, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Token), args.Error(1)
}

func (m *MockTokenReader) FindTokensByIDs(ctx context.Context, tokenIDs []string) (map[string]domain.Token, error) {
	args := m.Called(ctx, tokenIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Token), args.Error(1)
}

type MockExpenseReader struct {
	mock.Mock
}

var _ portsrepo.ExpenseReader = (*MockExpenseReader)(nil)

func (m *MockExpenseReader) SumExpensesByDate(ctx context.Context, from, to string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---

type StoreFailureTestSuite struct {
	suite.Suite
	ctx         context.Context
	journalRepo *MockJournalRepository
	doctorRepo  *MockDoctorReader
	tokenRepo   *MockTokenReader
	expenseRepo *MockExpenseReader
	settings    domain.LedgerSettings
	clock       services.Option
}

func (suite *StoreFailureTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.journalRepo = new(MockJournalRepository)
	suite.doctorRepo = new(MockDoctorReader)
	suite.tokenRepo = new(MockTokenReader)
	suite.expenseRepo = new(MockExpenseReader)
	suite.settings = domain.DefaultLedgerSettings()
	fixed := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	suite.clock = services.WithClock(func() time.Time { return fixed })
}

func (suite *StoreFailureTestSuite) unavailable() error {
	return fmt.Errorf("%w: connection refused", apperrors.ErrUnavailable)
}

func earningJournal(id string) domain.Journal {
	return domain.Journal{
		JournalID: id,
		DateISO:   "2025-03-10",
		RefType:   domain.RefManualDoctorEarning,
		RefID:     "ref-" + id,
		Memo:      "consultation",
		Lines: []domain.JournalLine{
			domain.DebitLine(domain.Cash, decimal.NewFromInt(100), domain.Tags{}),
			domain.CreditLine(domain.DoctorPayable, decimal.NewFromInt(100), domain.Tags{DoctorID: "D1", TokenID: "T1", PatientName: "Snapshot Name"}),
		},
		CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *StoreFailureTestSuite) TestGetDoctorBalance_Unavailable() {
	suite.journalRepo.On("SumDoctorPayable", suite.ctx, "D1", "", "").Return(domain.PayableTotals{}, suite.unavailable()).Once()

	svc := services.NewEarningsService(suite.journalRepo, suite.tokenRepo)
	balance, err := svc.GetDoctorBalance(suite.ctx, "D1")

	suite.Require().Error(err)
	suite.Nil(balance)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
	suite.True(apperrors.IsRetryable(err))
	suite.journalRepo.AssertExpectations(suite.T())
}

func (suite *StoreFailureTestSuite) TestPostManualDoctorEarning_SaveError() {
	suite.doctorRepo.On("FindDoctorByID", suite.ctx, "D1").Return(&domain.Doctor{DoctorID: "D1", IsActive: true}, nil).Once()
	suite.journalRepo.On("SaveJournal", suite.ctx, mock.AnythingOfType("domain.Journal")).Return(suite.unavailable()).Once()

	svc := services.NewPostingService(suite.journalRepo, suite.doctorRepo, suite.tokenRepo, suite.clock)
	journal, err := svc.PostManualDoctorEarning(suite.ctx, dto.PostManualDoctorEarningRequest{
		DoctorID: "D1", Amount: decimal.NewFromInt(100),
	}, suite.settings, userID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.True(apperrors.IsRetryable(err))
	suite.journalRepo.AssertExpectations(suite.T())
	suite.doctorRepo.AssertExpectations(suite.T())
}

func (suite *StoreFailureTestSuite) TestPostManualDoctorEarning_ValidationBeforeWrite() {
	svc := services.NewPostingService(suite.journalRepo, suite.doctorRepo, suite.tokenRepo, suite.clock)
	_, err := svc.PostManualDoctorEarning(suite.ctx, dto.PostManualDoctorEarningRequest{
		DoctorID: "D1", Amount: decimal.NewFromInt(-1),
	}, suite.settings, userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.journalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
	suite.doctorRepo.AssertNotCalled(suite.T(), "FindDoctorByID", mock.Anything, mock.Anything)
}

func (suite *StoreFailureTestSuite) TestCreateDoctorPayout_BalanceLookupFailureStillPosts() {
	suite.doctorRepo.On("FindDoctorByID", suite.ctx, "D1").Return(&domain.Doctor{DoctorID: "D1"}, nil).Once()
	suite.journalRepo.On("SaveJournal", suite.ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.RefType == domain.RefDoctorPayout && j.RefID == "D1" && j.DateISO == "2025-03-10"
	})).Return(nil).Once()
	suite.journalRepo.On("SumDoctorPayable", suite.ctx, "D1", "", "").Return(domain.PayableTotals{}, suite.unavailable()).Once()

	svc := services.NewPostingService(suite.journalRepo, suite.doctorRepo, suite.tokenRepo, suite.clock)
	journal, err := svc.CreateDoctorPayout(suite.ctx, dto.PostDoctorPayoutRequest{
		DoctorID: "D1", Amount: decimal.NewFromInt(50),
	}, suite.settings, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.Equal("Payout to doctor D1", journal.Memo)
	suite.journalRepo.AssertExpectations(suite.T())
}

func (suite *StoreFailureTestSuite) TestReverseJournal_LosesRace() {
	original := earningJournal("j1")
	suite.journalRepo.On("FindJournalByID", suite.ctx, "j1").Return(&original, nil).Once()
	suite.journalRepo.On("FindReversalOf", suite.ctx, "j1").Return(nil, apperrors.ErrNotFound).Once()
	suite.journalRepo.On("SaveReversal", suite.ctx, mock.MatchedBy(func(r domain.Journal) bool {
		return r.RefType == domain.RefReversal && r.RefID == "j1" && domain.IsBalanced(r.Lines)
	})).Return(fmt.Errorf("%w: unique violation", apperrors.ErrConflict)).Once()

	svc := services.NewReversalService(suite.journalRepo, suite.clock)
	reversal, err := svc.ReverseJournalByID(suite.ctx, "j1", "", suite.settings, userID)

	suite.Nil(reversal)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.journalRepo.AssertExpectations(suite.T())
}

func (suite *StoreFailureTestSuite) TestReverseJournal_LookupUnavailable() {
	suite.journalRepo.On("FindJournalByID", suite.ctx, "j1").Return(nil, suite.unavailable()).Once()

	svc := services.NewReversalService(suite.journalRepo, suite.clock)
	_, err := svc.ReverseJournalByID(suite.ctx, "j1", "", suite.settings, userID)

	suite.ErrorIs(err, apperrors.ErrUnavailable)
	suite.journalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything)
}

func (suite *StoreFailureTestSuite) TestListDoctorEarnings_TokenLookupFailureFallsBackToSnapshot() {
	filter := domain.EarningsFilter{DoctorID: "D1"}
	suite.journalRepo.On("ListEarningJournals", suite.ctx, filter).Return([]domain.Journal{earningJournal("j1")}, nil).Once()
	suite.journalRepo.On("FindReversedJournalIDs", suite.ctx, []string{"j1"}).Return(map[string]bool{}, nil).Once()
	suite.tokenRepo.On("FindTokensByIDs", suite.ctx, []string{"T1"}).Return(nil, assert.AnError).Once()

	svc := services.NewEarningsService(suite.journalRepo, suite.tokenRepo)
	earnings, err := svc.ListDoctorEarnings(suite.ctx, filter)

	suite.Require().NoError(err)
	suite.Require().Len(earnings, 1)
	suite.Equal("Snapshot Name", earnings[0].PatientName)
	suite.Nil(earnings[0].TokenNo)
	suite.Equal(string(domain.RefManualDoctorEarning), earnings[0].Type)
	suite.tokenRepo.AssertExpectations(suite.T())
}

func (suite *StoreFailureTestSuite) TestListDoctorEarnings_ReversalLookupUnavailable() {
	filter := domain.EarningsFilter{}
	suite.journalRepo.On("ListEarningJournals", suite.ctx, filter).Return([]domain.Journal{earningJournal("j1")}, nil).Once()
	suite.journalRepo.On("FindReversedJournalIDs", suite.ctx, []string{"j1"}).Return(nil, suite.unavailable()).Once()

	svc := services.NewEarningsService(suite.journalRepo, suite.tokenRepo)
	earnings, err := svc.ListDoctorEarnings(suite.ctx, filter)

	suite.Nil(earnings)
	suite.True(apperrors.IsRetryable(err))
}

func (suite *StoreFailureTestSuite) TestListDoctorPayouts_LimitClamped() {
	suite.journalRepo.On("ListDoctorPayoutJournals", suite.ctx, "D1", 200, (*string)(nil)).Return([]domain.Journal{}, "next", nil).Once()

	svc := services.NewEarningsService(suite.journalRepo, suite.tokenRepo)
	resp, err := svc.ListDoctorPayouts(suite.ctx, "D1", dto.ListDoctorPayoutsParams{Limit: 5000})

	suite.Require().NoError(err)
	suite.Empty(resp.Payouts)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next", *resp.NextToken)
	suite.journalRepo.AssertExpectations(suite.T())
}

func (suite *StoreFailureTestSuite) TestLedgerDaily_ExpenseFailure() {
	suite.journalRepo.On("SumByDateAccountRefType", suite.ctx, "2025-03-01", "2025-03-07").Return([]domain.AccountDayTotal{}, nil).Once()
	suite.expenseRepo.On("SumExpensesByDate", suite.ctx, "2025-03-01", "2025-03-07").Return(nil, suite.unavailable()).Once()

	svc := services.NewRollupService(suite.journalRepo, suite.expenseRepo)
	report, err := svc.LedgerDaily(suite.ctx, "2025-03-01", "2025-03-07", suite.settings)

	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
	suite.expenseRepo.AssertExpectations(suite.T())
}

func (suite *StoreFailureTestSuite) TestLedgerDaily_EmptyRangeSkipsStore() {
	svc := services.NewRollupService(suite.journalRepo, suite.expenseRepo)
	report, err := svc.LedgerDaily(suite.ctx, "2025-03-07", "2025-03-01", suite.settings)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.journalRepo.AssertNotCalled(suite.T(), "SumByDateAccountRefType", mock.Anything, mock.Anything, mock.Anything)
}

func TestStoreFailureTestSuite(t *testing.T) {
	suite.Run(t, new(StoreFailureTestSuite))
}

func TestPayoutRow_FallsBackToPayableDebit(t *testing.T) {
	j := domain.Journal{
		JournalID: "p1",
		RefType:   domain.RefDoctorPayout,
		RefID:     "D1",
		Lines: []domain.JournalLine{
			domain.DebitLine(domain.DoctorPayable, decimal.NewFromInt(75), domain.Tags{DoctorID: "D1"}),
			domain.CreditLine(domain.AR, decimal.NewFromInt(75), domain.Tags{}),
		},
	}
	row := services.PayoutRow(j)
	assert.True(t, row.Amount.Equal(decimal.NewFromInt(75)))
	assert.Empty(t, row.Method)

	j.Lines[1] = domain.CreditLine(domain.Bank, decimal.NewFromInt(75), domain.Tags{})
	row = services.PayoutRow(j)
	assert.Equal(t, domain.Bank, row.Method)
}
