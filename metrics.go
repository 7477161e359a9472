package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Line outcomes used as the "outcome" label
const (
	outcomeDecoded   = "decoded"
	outcomeBlank     = "blank"
	outcomeComment   = "comment"
	outcomeMalformed = "malformed"
)

// Metrics holds the Prometheus counters and histograms for batch decoding.
type Metrics struct {
	Lines                *prometheus.CounterVec // labels: outcome={decoded,blank,comment,malformed}
	UnparseableSubfields *prometheus.CounterVec // labels: field
	BatchDuration        prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates the batch metrics on their own registry, ready to be
// written to a node_exporter textfile.
func NewMetrics() *Metrics {
	return newMetricsWithRegistry(prometheus.NewRegistry())
}

// newMetricsForTesting creates metrics on a fresh registry so tests can read
// them with testutil without sharing state.
func newMetricsForTesting() *Metrics {
	return newMetricsWithRegistry(prometheus.NewRegistry())
}

func newMetricsWithRegistry(reg *prometheus.Registry) *Metrics {
	m := newMetrics()
	m.registry = reg
	reg.MustRegister(m.Lines, m.UnparseableSubfields, m.BatchDuration)
	return m
}

func newMetrics() *Metrics {
	return &Metrics{
		Lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metartab",
			Name:      "lines_total",
			Help:      "Source lines read, by outcome.",
		}, []string{"outcome"}),
		UnparseableSubfields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metartab",
			Name:      "unparseable_subfields_total",
			Help:      "Tokens that resembled a group but failed conversion.",
		}, []string{"field"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metartab",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete batch decode.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
	}
}

// WriteTextfile writes the registry in the text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
