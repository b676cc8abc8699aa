// Package monitor runs monitoring passes on a fixed interval and on demand.
package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/metrics"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
)

const DefaultInterval = 30 * time.Second

// PassFunc runs one monitoring pass and returns the alerts it created.
type PassFunc func(ctx context.Context) (alert.Alerts, error)

type Monitor struct {
	pass     PassFunc
	interval time.Duration
	running  atomic.Bool
	trigger  chan struct{}
}

type Option func(*Monitor)

func WithInterval(interval time.Duration) Option {
	return func(m *Monitor) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

func New(pass PassFunc, opts ...Option) *Monitor {
	m := &Monitor{
		pass:     pass,
		interval: DefaultInterval,
		trigger:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Trigger requests an immediate pass. It never blocks; requests made while
// one is already queued are coalesced.
func (m *Monitor) Trigger() {
	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

// Run performs an initial pass and then one pass per interval or trigger
// until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	logger := logging.From(ctx).With("interval", m.interval.String())
	logger.Info("alert monitor started")

	m.RunOnce(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("alert monitor stopped")
			return nil
		case <-ticker.C:
			m.RunOnce(ctx)
		case <-m.trigger:
			m.RunOnce(ctx)
		}
	}
}

// RunOnce executes a pass unless one is already in progress, either in this
// monitor or reported by the pass itself with a pass_in_progress error. The
// second return value reports whether the pass actually ran.
func (m *Monitor) RunOnce(ctx context.Context) (alert.Alerts, bool) {
	if !m.running.CompareAndSwap(false, true) {
		return skipped(ctx)
	}
	defer m.running.Store(false)

	ctx = logging.WithAttrs(ctx, "pass_id", uuid.NewString())
	started := clock.Now(ctx)
	created, err := m.pass(ctx)
	elapsed := clock.Since(ctx, started)

	if err != nil && errs.IsPassInProgress(err) {
		return skipped(ctx)
	}
	if err != nil {
		errs.Handle(ctx, err)
		metrics.ObservePass(elapsed, metrics.OutcomeError)
		return nil, true
	}

	metrics.ObservePass(elapsed, metrics.OutcomeSuccess)
	if len(created) > 0 {
		logging.From(ctx).Info("monitoring pass created alerts", "count", len(created))
	}
	return created, true
}

func skipped(ctx context.Context) (alert.Alerts, bool) {
	logging.From(ctx).Debug("monitoring pass already in progress, skipped")
	metrics.ObservePass(0, metrics.OutcomeSkipped)
	return nil, false
}
