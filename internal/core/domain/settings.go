package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSettings is passed explicitly into each posting and rollup call.
type LedgerSettings struct {
	DefaultRevenueAccount Account
	DefaultPaidMethod     PaidMethod
	// DefaultSharePercent applies when a posting omits sharePercent. Nil means the doctor gets the full amount.
	DefaultSharePercent *decimal.Decimal
	Location            *time.Location
	MaxRollupDays       int
}

// DefaultLedgerSettings returns the settings used when configuration provides none.
func DefaultLedgerSettings() LedgerSettings {
	return LedgerSettings{
		DefaultRevenueAccount: OPDRevenue,
		DefaultPaidMethod:     PaidCash,
		Location:              time.UTC,
		MaxRollupDays:         366,
	}
}

// Today returns the current calendar date in the settings' time zone.
func (s LedgerSettings) Today(now time.Time) string {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}
