package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DoctorEarning is one non-reversed accrual to a doctor, enriched for display.
type DoctorEarning struct {
	JournalID    string          `json:"id"`
	DateISO      string          `json:"dateIso"`
	DoctorID     string          `json:"doctorId"`
	DepartmentID string          `json:"departmentId,omitempty"`
	TokenID      string          `json:"tokenId,omitempty"`
	Type         string          `json:"type"` // revenue account of the sibling line, or the ref type when none was retained
	RefType      RefType         `json:"refType"`
	Amount       decimal.Decimal `json:"amount"`
	Memo         string          `json:"memo"`
	PatientName  string          `json:"patientName,omitempty"`
	MRN          string          `json:"mrn,omitempty"`
	TokenNo      *int            `json:"tokenNo,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// EarningsFilter narrows ListDoctorEarnings. Empty fields are not applied.
type EarningsFilter struct {
	DoctorID string
	From     string
	To       string
}

// PayableTotals are raw sums over DOCTOR_PAYABLE lines for one doctor.
type PayableTotals struct {
	Credits decimal.Decimal
	Debits  decimal.Decimal
}

// DoctorBalance is the net amount currently owed to a doctor; negative means overpaid.
type DoctorBalance struct {
	DoctorID string          `json:"doctorId"`
	Payable  decimal.Decimal `json:"payable"`
}

// DoctorAccruals summarises DOCTOR_PAYABLE movement in a period.
type DoctorAccruals struct {
	DoctorID  string          `json:"doctorId"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Accruals  decimal.Decimal `json:"accruals"`
	Debits    decimal.Decimal `json:"debits"`
	Suggested decimal.Decimal `json:"suggested"`
}

// DoctorPayout is a payout journal reduced to its display amount.
type DoctorPayout struct {
	JournalID string          `json:"id"`
	RefID     string          `json:"refId"`
	DateISO   string          `json:"dateIso"`
	Memo      string          `json:"memo"`
	Amount    decimal.Decimal `json:"amount"`
	Method    Account         `json:"method,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
