package service

import (
	"time"

	"github.com/atinyakov/SmileCare/internal/metrics"
	"github.com/atinyakov/SmileCare/internal/storage"
	"go.uber.org/zap"
)

type options struct {
	log       *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	latency   time.Duration
	cartStore storage.Storage
}

// Option configures a SessionStore or CartStore.
type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithClock replaces time.Now for ids and upload dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLatency delays Register and Login by d, simulating a round trip.
func WithLatency(d time.Duration) Option {
	return func(o *options) { o.latency = d }
}

// WithCartStorage makes the cart survive restarts by persisting it to st.
func WithCartStorage(st storage.Storage) Option {
	return func(o *options) { o.cartStore = st }
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop(), now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}
