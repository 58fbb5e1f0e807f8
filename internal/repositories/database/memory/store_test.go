package memory_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	"github.com/SscSPs/hospital_ledger/internal/repositories/database/memory"
)

func amt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func earning(id, date, doctorID string, amount int64) domain.Journal {
	return domain.Journal{
		JournalID: id,
		DateISO:   date,
		RefType:   domain.RefManualDoctorEarning,
		RefID:     "ref-" + id,
		Lines: []domain.JournalLine{
			domain.DebitLine(domain.Cash, amt(amount), domain.Tags{}),
			domain.CreditLine(domain.DoctorPayable, amt(amount), domain.Tags{DoctorID: doctorID}),
		},
		CreatedAt: time.Now(),
	}
}

func payout(id, date, doctorID string, amount int64, at time.Time) domain.Journal {
	return domain.Journal{
		JournalID: id,
		DateISO:   date,
		RefType:   domain.RefDoctorPayout,
		RefID:     doctorID,
		Lines: []domain.JournalLine{
			domain.DebitLine(domain.DoctorPayable, amt(amount), domain.Tags{DoctorID: doctorID}),
			domain.CreditLine(domain.Cash, amt(amount), domain.Tags{}),
		},
		CreatedAt: at,
	}
}

func reversalOf(j domain.Journal, id string) domain.Journal {
	return domain.Journal{
		JournalID: id,
		DateISO:   j.DateISO,
		RefType:   domain.RefReversal,
		RefID:     j.JournalID,
		Lines:     j.ReversalLines(),
		CreatedAt: time.Now(),
	}
}

func TestSaveReversal_OnlyOneWinsUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	original := earning("j1", "2025-03-10", "D1", 500)
	require.NoError(t, store.SaveJournal(ctx, original))

	var wg sync.WaitGroup
	var wins, conflicts int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.SaveReversal(ctx, reversalOf(original, fmt.Sprintf("r%d", i)))
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case assert.ErrorIs(t, err, apperrors.ErrConflict):
				atomic.AddInt32(&conflicts, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(19), conflicts)

	rev, err := store.FindReversalOf(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, "j1", rev.RefID)
}

func TestSaveJournal_DuplicateOPDToken(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	first := earning("j1", "2025-03-10", "D1", 100)
	first.RefType = domain.RefOPDToken
	first.RefID = "T-1"
	require.NoError(t, store.SaveJournal(ctx, first))

	second := first
	second.JournalID = "j2"
	assert.ErrorIs(t, store.SaveJournal(ctx, second), apperrors.ErrDuplicate)
}

func TestFindJournalByID_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.SaveJournal(ctx, earning("j1", "2025-03-10", "D1", 100)))

	got, err := store.FindJournalByID(ctx, "j1")
	require.NoError(t, err)
	got.Lines[0].Debit = amt(999)

	again, err := store.FindJournalByID(ctx, "j1")
	require.NoError(t, err)
	assert.True(t, again.Lines[0].Debit.Equal(amt(100)))

	_, err = store.FindJournalByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSumDoctorPayable_RangeAndDoctor(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveJournal(ctx, earning("j1", "2025-03-01", "D1", 1000)))
	require.NoError(t, store.SaveJournal(ctx, earning("j2", "2025-03-05", "D2", 700)))
	require.NoError(t, store.SaveJournal(ctx, payout("p1", "2025-03-06", "D1", 1500, at)))

	all, err := store.SumDoctorPayable(ctx, "D1", "", "")
	require.NoError(t, err)
	assert.True(t, all.Credits.Equal(amt(1000)))
	assert.True(t, all.Debits.Equal(amt(1500)))

	march2on, err := store.SumDoctorPayable(ctx, "D1", "2025-03-02", "2025-03-31")
	require.NoError(t, err)
	assert.True(t, march2on.Credits.IsZero())
	assert.True(t, march2on.Debits.Equal(amt(1500)))
}

func TestListDoctorPayoutJournals_Paginates(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		date := base.AddDate(0, 0, i).Format(domain.DateLayout)
		require.NoError(t, store.SaveJournal(ctx, payout(fmt.Sprintf("p%d", i), date, "D1", 10, base.AddDate(0, 0, i))))
	}
	require.NoError(t, store.SaveJournal(ctx, payout("other", "2025-03-09", "D2", 10, base)))

	page1, next, err := store.ListDoctorPayoutJournals(ctx, "D1", 2, nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	require.Len(t, page1, 2)
	assert.Equal(t, "p4", page1[0].JournalID)
	assert.Equal(t, "p3", page1[1].JournalID)

	page2, next, err := store.ListDoctorPayoutJournals(ctx, "D1", 2, next)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "p2", page2[0].JournalID)
	assert.Equal(t, "p1", page2[1].JournalID)

	page3, next, err := store.ListDoctorPayoutJournals(ctx, "D1", 2, next)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, page3, 1)
	assert.Equal(t, "p0", page3[0].JournalID)

	bad := "not-a-token"
	_, _, err = store.ListDoctorPayoutJournals(ctx, "D1", 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSumByDateAccountRefType_Groups(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveJournal(ctx, earning("j1", "2025-03-10", "D1", 100)))
	require.NoError(t, store.SaveJournal(ctx, earning("j2", "2025-03-10", "D2", 50)))
	require.NoError(t, store.SaveJournal(ctx, payout("p1", "2025-03-10", "D1", 30, at)))
	require.NoError(t, store.SaveJournal(ctx, earning("j3", "2025-04-01", "D1", 100)))

	totals, err := store.SumByDateAccountRefType(ctx, "2025-03-01", "2025-03-31")
	require.NoError(t, err)

	byKey := make(map[string]domain.AccountDayTotal)
	for _, tot := range totals {
		byKey[fmt.Sprintf("%s/%s/%s", tot.DateISO, tot.Account, tot.RefType)] = tot
	}
	assert.Len(t, byKey, 4)
	assert.True(t, byKey["2025-03-10/CASH/manual_doctor_earning"].Debit.Equal(amt(150)))
	assert.True(t, byKey["2025-03-10/CASH/doctor_payout"].Credit.Equal(amt(30)))
	assert.True(t, byKey["2025-03-10/DOCTOR_PAYABLE/doctor_payout"].Debit.Equal(amt(30)))
	assert.True(t, byKey["2025-03-10/DOCTOR_PAYABLE/manual_doctor_earning"].Credit.Equal(amt(150)))
}

func TestCollaborators(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	store.PutDoctor(domain.Doctor{DoctorID: "D1", Name: "Dr. Ayesha", IsActive: true})
	store.PutToken(domain.Token{TokenID: "T1", TokenNo: 7})
	store.AddExpense("2025-03-10", amt(20))
	store.AddExpense("2025-03-10", amt(5))
	store.AddExpense("2025-04-10", amt(1))

	d, err := store.FindDoctorByID(ctx, "D1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ayesha", d.Name)

	tokens, err := store.FindTokensByIDs(ctx, []string{"T1", "T2"})
	require.NoError(t, err)
	assert.Len(t, tokens, 1)

	_, err = store.FindTokenByID(ctx, "T9")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	expenses, err := store.SumExpensesByDate(ctx, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
	assert.True(t, expenses["2025-03-10"].Equal(amt(25)))
}
