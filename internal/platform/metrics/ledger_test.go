package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg)

	m.JournalPosted("doctor_payout", decimal.NewFromInt(400))
	m.JournalPosted("doctor_payout", decimal.NewFromInt(100))
	m.WriteRejected("conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.journals.WithLabelValues("doctor_payout")))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.amount.WithLabelValues("doctor_payout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("conflict")))
}

func TestLedgerMetrics_NilIsNoop(t *testing.T) {
	var m *LedgerMetrics
	assert.NotPanics(t, func() {
		m.JournalPosted("opd_token", decimal.NewFromInt(1))
		m.WriteRejected("duplicate")
	})
}
