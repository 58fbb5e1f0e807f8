package domain

import "github.com/shopspring/decimal"

// AccountDayTotal is the ledger grouped by date, account and ref type.
// It is the only shape the rollup engine reads from the store.
type AccountDayTotal struct {
	DateISO string
	Account Account
	RefType RefType
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// LedgerFigures holds every numeric rollup field.
type LedgerFigures struct {
	OPDRevenue       decimal.Decimal `json:"opdRevenue"`
	IPDRevenue       decimal.Decimal `json:"ipdRevenue"`
	ProcedureRevenue decimal.Decimal `json:"procedureRevenue"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	CashIn           decimal.Decimal `json:"cashIn"`
	CashOut          decimal.Decimal `json:"cashOut"`
	BankIn           decimal.Decimal `json:"bankIn"`
	BankOut          decimal.Decimal `json:"bankOut"`
	NetCash          decimal.Decimal `json:"netCash"`
	DoctorPayouts    decimal.Decimal `json:"doctorPayouts"`
	Expenses         decimal.Decimal `json:"expenses"`
}

// NewLedgerFigures returns figures with every field at zero.
func NewLedgerFigures() LedgerFigures {
	z := decimal.Zero
	return LedgerFigures{z, z, z, z, z, z, z, z, z, z, z}
}

// Add returns the field-wise sum of f and o.
func (f LedgerFigures) Add(o LedgerFigures) LedgerFigures {
	return LedgerFigures{
		OPDRevenue:       f.OPDRevenue.Add(o.OPDRevenue),
		IPDRevenue:       f.IPDRevenue.Add(o.IPDRevenue),
		ProcedureRevenue: f.ProcedureRevenue.Add(o.ProcedureRevenue),
		TotalRevenue:     f.TotalRevenue.Add(o.TotalRevenue),
		CashIn:           f.CashIn.Add(o.CashIn),
		CashOut:          f.CashOut.Add(o.CashOut),
		BankIn:           f.BankIn.Add(o.BankIn),
		BankOut:          f.BankOut.Add(o.BankOut),
		NetCash:          f.NetCash.Add(o.NetCash),
		DoctorPayouts:    f.DoctorPayouts.Add(o.DoctorPayouts),
		Expenses:         f.Expenses.Add(o.Expenses),
	}
}

// Derive recomputes TotalRevenue and NetCash from the base fields.
func (f LedgerFigures) Derive() LedgerFigures {
	f.TotalRevenue = f.OPDRevenue.Add(f.IPDRevenue).Add(f.ProcedureRevenue)
	f.NetCash = f.CashIn.Sub(f.CashOut).Add(f.BankIn.Sub(f.BankOut))
	return f
}

// LedgerDailyRow is one calendar date of the daily rollup.
type LedgerDailyRow struct {
	DateISO string `json:"date"`
	LedgerFigures
}

// LedgerWeeklyRow is one ISO week (Monday start) of the weekly rollup.
type LedgerWeeklyRow struct {
	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`
	Days      int    `json:"days"`
	LedgerFigures
}

// LedgerDailyReport is the daily rollup with its totals.
type LedgerDailyReport struct {
	From   string           `json:"from"`
	To     string           `json:"to"`
	Rows   []LedgerDailyRow `json:"rows"`
	Totals LedgerFigures    `json:"totals"`
}

// LedgerWeeklyReport is the weekly rollup with its totals.
type LedgerWeeklyReport struct {
	From   string            `json:"from"`
	To     string            `json:"to"`
	Rows   []LedgerWeeklyRow `json:"rows"`
	Totals LedgerFigures     `json:"totals"`
}
