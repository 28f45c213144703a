package evalforge

import (
	"time"
)

// Metrics is an optional interface for SDK telemetry.
// Implementations must be safe for concurrent use.
type Metrics interface {
	// IncrementCounter adds value to the named counter.
	IncrementCounter(name string, value int64)

	// RecordDuration records a latency observation.
	RecordDuration(name string, duration time.Duration)

	// SetGauge sets the named gauge to value.
	SetGauge(name string, value float64)
}

// Metric names emitted by the SDK.
const (
	metricRequests        = "evalforge.requests.total"
	metricRequestErrors   = "evalforge.requests.errors"
	metricRequestRetries  = "evalforge.requests.retries"
	metricRequestDuration = "evalforge.requests.duration"
)

// NopMetrics discards all telemetry.
type NopMetrics struct{}

// IncrementCounter implements Metrics.IncrementCounter.
func (NopMetrics) IncrementCounter(name string, value int64) {}

// RecordDuration implements Metrics.RecordDuration.
func (NopMetrics) RecordDuration(name string, duration time.Duration) {}

// SetGauge implements Metrics.SetGauge.
func (NopMetrics) SetGauge(name string, value float64) {}

// Ensure NopMetrics implements Metrics.
var _ Metrics = NopMetrics{}
