package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSessionEvent(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SessionEvent("login", nil)
	m.SessionEvent("login", errors.New("bad password"))
	m.SessionEvent("login", errors.New("bad password"))

	if got := testutil.ToFloat64(m.sessionEvents.WithLabelValues("login", "ok")); got != 1 {
		t.Errorf("ok count = %v; want 1", got)
	}
	if got := testutil.ToFloat64(m.sessionEvents.WithLabelValues("login", "error")); got != 2 {
		t.Errorf("error count = %v; want 2", got)
	}
}

func TestCartOp(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CartOp("add", 3, 26.97)

	if got := testutil.ToFloat64(m.cartOps.WithLabelValues("add")); got != 1 {
		t.Errorf("add count = %v; want 1", got)
	}
	if got := testutil.ToFloat64(m.cartItems); got != 3 {
		t.Errorf("items = %v; want 3", got)
	}
	if got := testutil.ToFloat64(m.cartValue); got != 26.97 {
		t.Errorf("value = %v; want 26.97", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.SessionEvent("logout", nil)
	m.CartOp("clear", 0, 0)
}
