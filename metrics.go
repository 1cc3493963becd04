package uasset

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the counters/histograms a long-running package-parsing
// process (spec §9.5) wants visibility into. A nil *Metrics is always
// safe to call against — every method checks for it — so library callers
// who don't want metrics pay nothing beyond the nil check.
type Metrics struct {
	parseTotal        *prometheus.CounterVec
	parseDuration     *prometheus.HistogramVec
	bytecodeFallback  prometheus.Counter
}

// NewMetrics registers the uasset collectors against reg. Passing a nil
// reg is valid and returns a Metrics that records nothing, matching the
// package's nil-safe observability contract.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		parseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uasset_parse_total",
			Help: "Total number of package/registry parse attempts, by kind.",
		}, []string{"kind"}),
		parseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uasset_parse_duration_seconds",
			Help:    "Wall-clock time spent parsing a package or registry file.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		bytecodeFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uasset_bytecode_fallback_total",
			Help: "Number of struct exports whose Kismet bytecode failed to decode and fell back to raw bytes.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.parseTotal, m.parseDuration, m.bytecodeFallback)
	}
	return m
}

// ObserveParse increments the parse counter for kind and returns a stop
// function that records the elapsed duration when called; callers defer
// the returned function immediately after starting a parse.
func (m *Metrics) ObserveParse(kind string) func() {
	if m == nil {
		return func() {}
	}
	m.parseTotal.WithLabelValues(kind).Inc()
	start := time.Now()
	return func() {
		m.parseDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}

// RecordBytecodeFallback increments the Kismet decode-fallback counter.
func (m *Metrics) RecordBytecodeFallback() {
	if m == nil {
		return
	}
	m.bytecodeFallback.Inc()
}
