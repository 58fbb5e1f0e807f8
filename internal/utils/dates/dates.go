package dates

import (
	"fmt"
	"time"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
)

// Layout is the calendar date format used throughout the ledger (YYYY-MM-DD).
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD date in UTC.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date '%s', use YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	return t, nil
}

// ParseOptional returns "" for an empty input and validates anything else.
func ParseOptional(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

// ParseRange parses both bounds; both are required.
func ParseRange(from, to string) (time.Time, time.Time, error) {
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: both from and to are required", apperrors.ErrValidation)
	}
	f, err := Parse(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := Parse(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return f, t, nil
}

// DayCount returns the number of calendar dates in [from, to] inclusive, or 0 when from is after to.
// It works on Unix seconds so ranges longer than a time.Duration can hold are counted exactly.
func DayCount(from, to time.Time) int {
	if from.After(to) {
		return 0
	}
	return int((to.Unix()-from.Unix())/86400) + 1
}

// Days lists every calendar date in [from, to] inclusive. It returns nil when from is after to.
func Days(from, to time.Time) []string {
	if from.After(to) {
		return nil
	}
	days := make([]string, 0, DayCount(from, to))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(Layout))
	}
	return days
}

// WeekStart returns the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	day := int(t.Weekday())
	diff := 1 - day
	if day == 0 {
		diff = -6
	}
	return t.AddDate(0, 0, diff)
}
