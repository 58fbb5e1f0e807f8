// Package metrics holds the Prometheus collectors for ledger activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// LedgerMetrics counts posted journals and rejected writes.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	journals *prometheus.CounterVec
	amount   *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger collectors on reg.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	m := &LedgerMetrics{
		journals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "journals_posted_total",
			Help:      "Journals persisted by ref type.",
		}, []string{"ref_type"}),
		amount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "journal_amount_total",
			Help:      "Sum of journal debit totals by ref type.",
		}, []string{"ref_type"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "writes_rejected_total",
			Help:      "Journal writes refused by the store, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.journals, m.amount, m.rejected)
	return m
}

// JournalPosted records a persisted journal of refType moving total.
func (m *LedgerMetrics) JournalPosted(refType string, total decimal.Decimal) {
	if m == nil {
		return
	}
	m.journals.WithLabelValues(refType).Inc()
	m.amount.WithLabelValues(refType).Add(total.InexactFloat64())
}

// WriteRejected records a write refused with reason, e.g. "duplicate" or "conflict".
func (m *LedgerMetrics) WriteRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}
