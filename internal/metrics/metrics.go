// Package metrics exposes Prometheus counters for session and cart activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors the stores update. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	sessionEvents *prometheus.CounterVec
	cartOps       *prometheus.CounterVec
	cartItems     prometheus.Gauge
	cartValue     prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smilecare",
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Session store operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smilecare",
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Cart store operations by operation.",
		}, []string{"op"}),
		cartItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "smilecare",
			Subsystem: "cart",
			Name:      "items",
			Help:      "Sum of quantities currently in the cart.",
		}),
		cartValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "smilecare",
			Subsystem: "cart",
			Name:      "value",
			Help:      "Current cart total.",
		}),
	}
	reg.MustRegister(m.sessionEvents, m.cartOps, m.cartItems, m.cartValue)
	return m
}

// SessionEvent counts a session operation; err decides the outcome label.
func (m *Metrics) SessionEvent(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.sessionEvents.WithLabelValues(op, outcome).Inc()
}

// CartOp counts a cart operation and records the resulting cart size.
func (m *Metrics) CartOp(op string, count int, total float64) {
	if m == nil {
		return
	}
	m.cartOps.WithLabelValues(op).Inc()
	m.cartItems.Set(float64(count))
	m.cartValue.Set(total)
}
