package evalforge

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMetrics captures telemetry for assertions.
type recordingMetrics struct {
	mu        sync.Mutex
	counters  map[string]int64
	durs      map[string][]time.Duration
	gauges    map[string]float64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		counters: make(map[string]int64),
		durs:     make(map[string][]time.Duration),
		gauges:   make(map[string]float64),
	}
}

func (m *recordingMetrics) IncrementCounter(name string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += value
}

func (m *recordingMetrics) RecordDuration(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durs[name] = append(m.durs[name], d)
}

func (m *recordingMetrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

func (m *recordingMetrics) counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

func (m *recordingMetrics) durations(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.durs[name])
}

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMetrics(reg)
	require.NoError(t, err)

	m.IncrementCounter(metricRequests, 1)
	m.IncrementCounter(metricRequests, 2)
	m.RecordDuration(metricRequestDuration, 150*time.Millisecond)
	m.SetGauge("evalforge.pool.idle", 4)

	counter := testutil.ToFloat64(m.counters.WithLabelValues("evalforge_requests_total"))
	assert.Equal(t, 3.0, counter)

	gauge := testutil.ToFloat64(m.gauges.WithLabelValues("evalforge_pool_idle"))
	assert.Equal(t, 4.0, gauge)
}

func TestPrometheusMetricsDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMetrics(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMetrics(reg)
	assert.Error(t, err)
}

func TestNormalizeMetricName(t *testing.T) {
	assert.Equal(t, "evalforge_requests_total", normalizeMetricName("evalforge.requests.total"))
	assert.Equal(t, "plain", normalizeMetricName("plain"))
}
