package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Protocol lookup results recorded by RecordProtocolLookup
const (
	LookupResolved   = "resolved"
	LookupUncached   = "uncached"
	LookupParseError = "parse_error"
	LookupMemoHit    = "memo_hit"
)

// Metrics holds the Prometheus metrics of a lint run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	FilesLintedTotal     *prometheus.CounterVec
	ViolationsTotal      *prometheus.CounterVec
	RuleDuration         *prometheus.HistogramVec
	ProtocolLookupsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all lint metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		FilesLintedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "declint_files_linted_total",
				Help: "Total number of files linted",
			},
			[]string{"status"},
		),
		ViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "declint_violations_total",
				Help: "Total number of violations reported",
			},
			[]string{"rule", "severity"},
		),
		RuleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "declint_rule_duration_seconds",
				Help:    "Time spent evaluating a rule against one file",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"rule"},
		),
		ProtocolLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "declint_protocol_lookups_total",
				Help: "Protocol member lookups by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		m.FilesLintedTotal,
		m.ViolationsTotal,
		m.RuleDuration,
		m.ProtocolLookupsTotal,
	)

	return m
}

// RecordFile counts a linted file; status is "ok" or "failed"
func (m *Metrics) RecordFile(status string) {
	if m == nil {
		return
	}
	m.FilesLintedTotal.WithLabelValues(status).Inc()
}

// RecordRule records one rule evaluation and the violations it produced by severity
func (m *Metrics) RecordRule(rule string, elapsed time.Duration, bySeverity map[string]int) {
	if m == nil {
		return
	}
	m.RuleDuration.WithLabelValues(rule).Observe(elapsed.Seconds())
	for severity, count := range bySeverity {
		m.ViolationsTotal.WithLabelValues(rule, severity).Add(float64(count))
	}
}

// RecordProtocolLookup counts a protocol member lookup
func (m *Metrics) RecordProtocolLookup(result string) {
	if m == nil {
		return
	}
	m.ProtocolLookupsTotal.WithLabelValues(result).Inc()
}

// WriteTextfile writes the registry's metrics in the Prometheus text format
func WriteTextfile(path string, registry *prometheus.Registry) error {
	return prometheus.WriteToTextfile(path, registry)
}
