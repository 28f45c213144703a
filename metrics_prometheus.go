package evalforge

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements Metrics backed by Prometheus collectors.
// SDK metric names are normalized to the Prometheus convention
// (dots become underscores) and exposed under the original name as the
// "name" label so one collector family covers all SDK counters.
// It is safe for concurrent use.
type PrometheusMetrics struct {
	counters  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	gauges    *prometheus.GaugeVec
}

// NewPrometheusMetrics creates collectors and registers them with the given
// registerer. Pass prometheus.DefaultRegisterer for the process default.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		counters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evalforge_client_events_total",
			Help: "Count of SDK events by name.",
		}, []string{"name"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evalforge_client_duration_seconds",
			Help:    "Latency observations by name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"name"}),
		gauges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "evalforge_client_gauge",
			Help: "Gauge values by name.",
		}, []string{"name"}),
	}

	for _, c := range []prometheus.Collector{m.counters, m.durations, m.gauges} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// IncrementCounter implements Metrics.IncrementCounter.
func (m *PrometheusMetrics) IncrementCounter(name string, value int64) {
	m.counters.WithLabelValues(normalizeMetricName(name)).Add(float64(value))
}

// RecordDuration implements Metrics.RecordDuration.
func (m *PrometheusMetrics) RecordDuration(name string, duration time.Duration) {
	m.durations.WithLabelValues(normalizeMetricName(name)).Observe(duration.Seconds())
}

// SetGauge implements Metrics.SetGauge.
func (m *PrometheusMetrics) SetGauge(name string, value float64) {
	m.gauges.WithLabelValues(normalizeMetricName(name)).Set(value)
}

func normalizeMetricName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// Ensure PrometheusMetrics implements Metrics.
var _ Metrics = (*PrometheusMetrics)(nil)
