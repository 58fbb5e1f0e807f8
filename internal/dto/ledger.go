package dto

import (
	"time"

	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostManualDoctorEarningRequest defines the data needed to record a manual doctor earning.
type PostManualDoctorEarningRequest struct {
	DoctorID       string           `json:"doctorId" binding:"required"`
	DepartmentID   string           `json:"departmentId"`
	Amount         decimal.Decimal  `json:"amount"` // must be > 0, checked in the service
	RevenueAccount *string          `json:"revenueAccount,omitempty"`
	PaidMethod     *string          `json:"paidMethod,omitempty"`
	SharePercent   *decimal.Decimal `json:"sharePercent,omitempty"`
	Memo           string           `json:"memo" binding:"max=500"`
	PatientName    string           `json:"patientName" binding:"max=200"`
	MRN            string           `json:"mrn" binding:"max=64"`
	// DateISO overrides the posting date. Empty means today in the ledger time zone.
	DateISO string `json:"dateIso" binding:"omitempty,isodate"`
}

// PostOPDTokenEarningRequest defines the data needed to record the earning for an OPD token.
type PostOPDTokenEarningRequest struct {
	TokenID        string           `json:"tokenId" binding:"required"`
	Amount         decimal.Decimal  `json:"amount"`
	RevenueAccount *string          `json:"revenueAccount,omitempty"`
	PaidMethod     *string          `json:"paidMethod,omitempty"`
	SharePercent   *decimal.Decimal `json:"sharePercent,omitempty"`
	Memo           string           `json:"memo" binding:"max=500"`
	DateISO        string           `json:"dateIso" binding:"omitempty,isodate"`
}

// PostDoctorPayoutRequest defines the data needed to pay a doctor.
type PostDoctorPayoutRequest struct {
	DoctorID string          `json:"doctorId" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Method   *string         `json:"method,omitempty"`
	Memo     string          `json:"memo" binding:"max=500"`
	DateISO  string          `json:"dateIso" binding:"omitempty,isodate"`
}

// ReverseJournalRequest is the optional body of a reversal.
type ReverseJournalRequest struct {
	Memo string `json:"memo" binding:"max=500"`
}

// EarningsQuery binds the doctor earnings list filters.
type EarningsQuery struct {
	DoctorID string `form:"doctorId"`
	From     string `form:"from" binding:"omitempty,isodate"`
	To       string `form:"to" binding:"omitempty,isodate"`
}

// ToFilter converts the query into the domain filter.
func (q EarningsQuery) ToFilter() domain.EarningsFilter {
	return domain.EarningsFilter{DoctorID: q.DoctorID, From: q.From, To: q.To}
}

// RangeQuery binds a required from/to pair.
type RangeQuery struct {
	From string `form:"from" binding:"required,isodate"`
	To   string `form:"to" binding:"required,isodate"`
}

// OptionalRangeQuery binds an optional from/to pair.
type OptionalRangeQuery struct {
	From string `form:"from" binding:"omitempty,isodate"`
	To   string `form:"to" binding:"omitempty,isodate"`
}

// ListDoctorPayoutsParams defines parameters for listing payouts with pagination.
type ListDoctorPayoutsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListDoctorPayoutsResponse wraps a page of payouts.
type ListDoctorPayoutsResponse struct {
	Payouts   []domain.DoctorPayout `json:"payouts"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	Account domain.Account  `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Tags    domain.Tags     `json:"tags"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID  string                `json:"id"`
	DateISO    string                `json:"dateIso"`
	RefType    domain.RefType        `json:"refType"`
	RefID      string                `json:"refId"`
	Memo       string                `json:"memo"`
	Lines      []JournalLineResponse `json:"lines"`
	CreatedAt  time.Time             `json:"createdAt"`
	CreatedBy  string                `json:"createdBy"`
	ReversedBy *string               `json:"reversedBy,omitempty"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	lines := make([]JournalLineResponse, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = JournalLineResponse{
			Account: l.Account,
			Debit:   l.Debit,
			Credit:  l.Credit,
			Tags:    l.Tags,
		}
	}
	return JournalResponse{
		JournalID: j.JournalID,
		DateISO:   j.DateISO,
		RefType:   j.RefType,
		RefID:     j.RefID,
		Memo:      j.Memo,
		Lines:     lines,
		CreatedAt: j.CreatedAt,
		CreatedBy: j.CreatedBy,
	}
}

// ListDoctorEarningsResponse wraps the earnings list.
type ListDoctorEarningsResponse struct {
	Earnings []domain.DoctorEarning `json:"earnings"`
	Total    decimal.Decimal        `json:"total"`
}

// ToListDoctorEarningsResponse wraps earnings and sums their amounts.
func ToListDoctorEarningsResponse(earnings []domain.DoctorEarning) ListDoctorEarningsResponse {
	total := decimal.Zero
	for _, e := range earnings {
		total = total.Add(e.Amount)
	}
	if earnings == nil {
		earnings = []domain.DoctorEarning{}
	}
	return ListDoctorEarningsResponse{Earnings: earnings, Total: total}
}
