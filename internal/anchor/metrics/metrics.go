package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the anchor module.
type Metrics struct {
	RecordsAnchored  prometheus.Counter
	AnchorConflicts  prometheus.Counter
	AnchorDuration   prometheus.Histogram
	RecordLookups    *prometheus.CounterVec
	VerifyMismatches prometheus.Counter
}

// New creates a new Metrics instance with all anchor module metrics registered.
func New() *Metrics {
	return &Metrics{
		RecordsAnchored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthanchor_records_anchored_total",
			Help: "Total number of records anchored",
		}),
		AnchorConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthanchor_anchor_txid_conflicts_total",
			Help: "Transaction id collisions detected during anchoring",
		}),
		AnchorDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthanchor_anchor_duration_seconds",
			Help:    "Duration of anchor operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		RecordLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "healthanchor_record_lookups_total",
			Help: "Record lookups by outcome",
		}, []string{"outcome"}),
		VerifyMismatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthanchor_verify_mismatches_total",
			Help: "Verifications where the payload did not match the anchored fingerprint",
		}),
	}
}

// ObserveAnchor records the duration of an anchor operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAnchor(start time.Time) {
	m.AnchorDuration.Observe(time.Since(start).Seconds())
}

// IncrementLookup records a lookup outcome ("hit" or "miss").
func (m *Metrics) IncrementLookup(outcome string) {
	m.RecordLookups.WithLabelValues(outcome).Inc()
}
