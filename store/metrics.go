package store

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "tritium"
	metricsSubsystem = "store"
)

const (
	opGet    = "get"
	opPut    = "put"
	opAdd    = "add"
	opDelete = "delete"
)

// Metrics holds the Prometheus collectors of the store. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ops    *prometheus.CounterVec
	digits prometheus.Histogram
}

// NewMetrics creates the store collectors and registers them with reg unless
// it is nil. A single Metrics is meant to be shared by every Store.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "operations_total",
				Help:      "Total number of store operations by operation and result",
			},
			[]string{"op", "result"},
		),
		digits: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "value_digits",
				Help:      "Number of balanced ternary digits of stored values",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.digits)
	}
	return m
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}

	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.ops.WithLabelValues(op, result).Inc()
}

func (m *Metrics) observeDigits(n int) {
	if m == nil {
		return
	}
	m.digits.Observe(float64(n))
}
