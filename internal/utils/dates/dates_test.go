package dates

import (
	"testing"
	"time"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	from, to, err := ParseRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, 1, from.Day())
	assert.Equal(t, 31, to.Day())

	_, _, err = ParseRange("", "2025-03-31")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = ParseRange("2025-02-30", "2025-03-31")
	assert.ErrorIs(t, err, apperrors.ErrValidation, "February 30th is not a date")
}

func TestDays(t *testing.T) {
	from, _ := Parse("2024-02-27")
	to, _ := Parse("2024-03-01")
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, Days(from, to))

	assert.Equal(t, []string{"2024-02-27"}, Days(from, from))
	assert.Nil(t, Days(to, from))
}

func TestDayCount(t *testing.T) {
	from, _ := Parse("2024-02-27")
	to, _ := Parse("2024-03-01")
	assert.Equal(t, 4, DayCount(from, to))
	assert.Equal(t, 1, DayCount(from, from))
	assert.Equal(t, 0, DayCount(to, from))

	first, _ := Parse("0001-01-01")
	last, _ := Parse("9999-12-31")
	assert.Equal(t, 3652059, DayCount(first, last), "longer than a time.Duration can span")
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2025-03-10", "2025-03-10"}, // Monday
		{"2025-03-12", "2025-03-10"}, // Wednesday
		{"2025-03-16", "2025-03-10"}, // Sunday belongs to the preceding Monday
		{"2025-03-17", "2025-03-17"},
		{"2025-01-01", "2024-12-30"}, // crosses a year boundary
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			d, err := Parse(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, WeekStart(d).Format(Layout))
			assert.Equal(t, time.Monday, WeekStart(d).Weekday())
		})
	}
}

func TestParseOptional(t *testing.T) {
	s, err := ParseOptional("")
	assert.NoError(t, err)
	assert.Empty(t, s)

	s, err = ParseOptional("2025-03-10")
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-10", s)

	_, err = ParseOptional("yesterday")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
