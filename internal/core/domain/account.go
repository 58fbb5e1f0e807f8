package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Account is one of the fixed ledger buckets.
type Account string

const (
	Cash             Account = "CASH"
	Bank             Account = "BANK"
	AR               Account = "AR" // accounts receivable
	OPDRevenue       Account = "OPD_REVENUE"
	IPDRevenue       Account = "IPD_REVENUE"
	ProcedureRevenue Account = "PROCEDURE_REVENUE"
	DoctorPayable    Account = "DOCTOR_PAYABLE"
)

// Side indicates whether a movement is a debit or a credit.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// normalSides is the closed account set with the side on which each account increases.
var normalSides = map[Account]Side{
	Cash:             Debit,
	Bank:             Debit,
	AR:               Debit,
	OPDRevenue:       Credit,
	IPDRevenue:       Credit,
	ProcedureRevenue: Credit,
	DoctorPayable:    Credit,
}

// Accounts returns the full account set in a stable order.
func Accounts() []Account {
	return []Account{Cash, Bank, AR, OPDRevenue, IPDRevenue, ProcedureRevenue, DoctorPayable}
}

// Valid reports whether a is part of the account set.
func (a Account) Valid() bool {
	_, ok := normalSides[a]
	return ok
}

// IsRevenue reports whether a is one of the *_REVENUE accounts.
func (a Account) IsRevenue() bool {
	return a == OPDRevenue || a == IPDRevenue || a == ProcedureRevenue
}

// NormalSide returns the side on which the account increases.
func NormalSide(a Account) (Side, error) {
	side, ok := normalSides[a]
	if !ok {
		return "", fmt.Errorf("%w: unknown account '%s'", apperrors.ErrValidation, a)
	}
	return side, nil
}

// ParseRevenueAccount accepts OPD_REVENUE, IPD_REVENUE or PROCEDURE_REVENUE (case-insensitive).
func ParseRevenueAccount(s string) (Account, error) {
	a := Account(strings.ToUpper(strings.TrimSpace(s)))
	if !a.IsRevenue() {
		return "", fmt.Errorf("%w: revenue account must be one of OPD_REVENUE, IPD_REVENUE, PROCEDURE_REVENUE, got '%s'", apperrors.ErrValidation, s)
	}
	return a, nil
}

// PaidMethod is how money for an earning was received, or how a payout left the hospital.
type PaidMethod string

const (
	PaidCash PaidMethod = "Cash"
	PaidBank PaidMethod = "Bank"
	PaidAR   PaidMethod = "AR"
)

// ParsePaidMethod normalises "cash", "BANK", "ar" etc. into a PaidMethod.
func ParsePaidMethod(s string) (PaidMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaidCash, nil
	case "bank":
		return PaidBank, nil
	case "ar":
		return PaidAR, nil
	}
	return "", fmt.Errorf("%w: unknown payment method '%s'", apperrors.ErrValidation, s)
}

// Account maps the method onto the asset account it moves.
func (m PaidMethod) Account() Account {
	switch m {
	case PaidBank:
		return Bank
	case PaidAR:
		return AR
	default:
		return Cash
	}
}

// SignedAmount returns the line's effect on its account in the account's normal direction:
// positive when the account grows, negative when it shrinks.
func SignedAmount(line JournalLine) (decimal.Decimal, error) {
	side, err := NormalSide(line.Account)
	if err != nil {
		return decimal.Zero, err
	}
	if side == Debit {
		return line.Debit.Sub(line.Credit), nil
	}
	return line.Credit.Sub(line.Debit), nil
}

// IsBalanced reports whether the lines are non-empty and total debits equal total credits.
func IsBalanced(lines []JournalLine) bool {
	if len(lines) == 0 {
		return false
	}
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits.Equal(credits)
}

// NetByAccount sums each account's movement in its normal direction.
func NetByAccount(lines []JournalLine) (map[Account]decimal.Decimal, error) {
	net := make(map[Account]decimal.Decimal)
	for _, l := range lines {
		amount, err := SignedAmount(l)
		if err != nil {
			return nil, err
		}
		net[l.Account] = net[l.Account].Add(amount)
	}
	return net, nil
}
