package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for journal dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// RefType identifies the kind of domain event a journal was posted for.
type RefType string

const (
	RefOPDToken            RefType = "opd_token"
	RefManualDoctorEarning RefType = "manual_doctor_earning"
	RefDoctorPayout        RefType = "doctor_payout"
	RefReversal            RefType = "reversal"
)

// Valid reports whether r is a known reference type.
func (r RefType) Valid() bool {
	switch r {
	case RefOPDToken, RefManualDoctorEarning, RefDoctorPayout, RefReversal:
		return true
	}
	return false
}

// IsEarning reports whether journals of this type accrue doctor compensation.
func (r RefType) IsEarning() bool {
	return r == RefOPDToken || r == RefManualDoctorEarning
}

// Tags is the optional attribution carried by a journal line.
// PatientName and MRN are point-in-time snapshots captured at posting.
type Tags struct {
	DoctorID     string `json:"doctorId,omitempty"`
	DepartmentID string `json:"departmentId,omitempty"`
	TokenID      string `json:"tokenId,omitempty"`
	PatientName  string `json:"patientName,omitempty"`
	MRN          string `json:"mrn,omitempty"`
}

// JournalLine is one account movement within a Journal.
type JournalLine struct {
	Account Account         `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Tags    Tags            `json:"tags"`
}

// DebitLine builds a debit movement.
func DebitLine(account Account, amount decimal.Decimal, tags Tags) JournalLine {
	return JournalLine{Account: account, Debit: amount, Credit: decimal.Zero, Tags: tags}
}

// CreditLine builds a credit movement.
func CreditLine(account Account, amount decimal.Decimal, tags Tags) JournalLine {
	return JournalLine{Account: account, Debit: decimal.Zero, Credit: amount, Tags: tags}
}

// Side returns which side of the line carries the value.
func (l JournalLine) Side() Side {
	if l.Debit.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount returns the value of the populated side.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// Swapped returns a copy of the line with debit and credit exchanged.
func (l JournalLine) Swapped() JournalLine {
	return JournalLine{Account: l.Account, Debit: l.Credit, Credit: l.Debit, Tags: l.Tags}
}

// Validate checks that the line moves a known account by a positive value on exactly one side.
func (l JournalLine) Validate() error {
	if !l.Account.Valid() {
		return fmt.Errorf("%w: unknown account '%s'", apperrors.ErrValidation, l.Account)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("%w: line on %s has a negative amount", apperrors.ErrValidation, l.Account)
	}
	if l.Debit.IsPositive() == l.Credit.IsPositive() {
		return fmt.Errorf("%w: line on %s must carry a positive debit or credit, not both or neither", apperrors.ErrValidation, l.Account)
	}
	return nil
}

// Journal is an immutable, balanced record of a financial event.
type Journal struct {
	JournalID string        `json:"id"`
	DateISO   string        `json:"dateIso"`
	RefType   RefType       `json:"refType"`
	RefID     string        `json:"refId"`
	Memo      string        `json:"memo"`
	Lines     []JournalLine `json:"lines"`
	CreatedAt time.Time     `json:"createdAt"`
	CreatedBy string        `json:"createdBy"`
}

// Validate checks every structural invariant of a journal before it is persisted.
func (j Journal) Validate() error {
	if j.JournalID == "" {
		return fmt.Errorf("%w: journal id is required", apperrors.ErrValidation)
	}
	if !j.RefType.Valid() {
		return fmt.Errorf("%w: unknown reference type '%s'", apperrors.ErrValidation, j.RefType)
	}
	if j.RefID == "" {
		return fmt.Errorf("%w: reference id is required", apperrors.ErrValidation)
	}
	if _, err := time.Parse(DateLayout, j.DateISO); err != nil {
		return fmt.Errorf("%w: journal date '%s' is not YYYY-MM-DD", apperrors.ErrValidation, j.DateISO)
	}
	if len(j.Lines) < 2 {
		return fmt.Errorf("%w: journal must have at least two lines", apperrors.ErrValidation)
	}
	for _, l := range j.Lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	if !IsBalanced(j.Lines) {
		return fmt.Errorf("%w: debits %s do not equal credits %s", ErrJournalUnbalanced, j.TotalDebit(), j.TotalCredit())
	}
	return nil
}

// ErrJournalUnbalanced is returned when a journal's debits and credits differ.
var ErrJournalUnbalanced = fmt.Errorf("%w: journal does not balance", apperrors.ErrValidation)

// TotalDebit sums the debit side.
func (j Journal) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side.
func (j Journal) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// FirstLine returns the first line on the account with a positive value on the given side.
func (j Journal) FirstLine(account Account, side Side) (JournalLine, bool) {
	for _, l := range j.Lines {
		if l.Account == account && l.Side() == side {
			return l, true
		}
	}
	return JournalLine{}, false
}

// ReversalLines returns the journal's lines with debit and credit swapped, tags preserved.
func (j Journal) ReversalLines() []JournalLine {
	lines := make([]JournalLine, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = l.Swapped()
	}
	return lines
}
