package rpc

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/datapin/errors"
)

// Metrics records engine call outcomes.
type Metrics struct {
	calls    *prometheus.CounterVec   // By call and outcome (ok or error kind)
	duration *prometheus.HistogramVec // By call
}

// NewMetrics creates call metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datapin",
			Subsystem: "engine",
			Name:      "calls_total",
			Help:      "Total number of engine calls by outcome",
		}, []string{"call", "outcome"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "datapin",
			Subsystem: "engine",
			Name:      "call_duration_seconds",
			Help:      "Engine call duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"call"}),
	}

	if reg == nil {
		return m, nil
	}
	calls, err := register(reg, m.calls)
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, m.duration)
	if err != nil {
		return nil, err
	}
	m.calls, m.duration = calls, duration
	return m, nil
}

// register adds c to reg, or returns the collector already registered
// under the same description.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

func (m *Metrics) observe(call, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(call, outcome).Inc()
	m.duration.WithLabelValues(call).Observe(elapsed.Seconds())
}

var metrics atomic.Pointer[Metrics]

// SetMetrics installs the metrics Invoke records into. Nil disables
// recording.
func SetMetrics(m *Metrics) {
	metrics.Store(m)
}

func currentMetrics() *Metrics {
	return metrics.Load()
}
