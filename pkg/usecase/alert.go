package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/driver"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/metrics"
	"github.com/secmon-lab/sentiq/pkg/service/generator"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
)

var (
	ErrScoreProviderNotConfigured = goerr.New("score provider not configured", goerr.T(errs.TagInternal))
	ErrPassInProgress             = goerr.New("monitoring pass already in progress", goerr.T(errs.TagPassInProgress))
)

// beginPass marks a monitoring pass as running. It reports false when
// another pass holds the mark; the caller must then skip its pass.
func (u *UseCases) beginPass() (func(), bool) {
	if !u.passing.CompareAndSwap(false, true) {
		return nil, false
	}
	return func() { u.passing.Store(false) }, true
}

// CheckAndTriggerAlerts creates alerts for the snapshots that cross a
// threshold and have no equivalent ACTIVE alert yet. It returns only the
// alerts stored by this call, or ErrPassInProgress when another pass is
// running.
func (u *UseCases) CheckAndTriggerAlerts(ctx context.Context, snapshots []driver.Snapshot) (alert.Alerts, error) {
	if len(snapshots) == 0 {
		return nil, nil
	}

	done, ok := u.beginPass()
	if !ok {
		return nil, ErrPassInProgress
	}
	defer done()

	return u.checkAndTrigger(ctx, snapshots)
}

// RunMonitoringPass pulls the current snapshots from the score provider and
// checks them. An unreachable provider yields no alerts instead of an
// error.
func (u *UseCases) RunMonitoringPass(ctx context.Context) (alert.Alerts, error) {
	if u.scores == nil {
		return nil, ErrScoreProviderNotConfigured
	}

	done, ok := u.beginPass()
	if !ok {
		return nil, ErrPassInProgress
	}
	defer done()

	snapshots, err := u.scores.ListDriverSnapshots(ctx)
	if err != nil {
		metrics.ObserveUpstreamError("list_driver_snapshots")
		logging.From(ctx).Warn("failed to fetch driver snapshots, skipping pass", "error", err)
		return nil, nil
	}
	if len(snapshots) == 0 {
		return nil, nil
	}

	return u.checkAndTrigger(ctx, snapshots)
}

// checkAndTrigger must run under beginPass. Without the remote active
// alerts the dedup baseline is incomplete, so a remote read failure
// generates nothing.
func (u *UseCases) checkAndTrigger(ctx context.Context, snapshots []driver.Snapshot) (alert.Alerts, error) {
	cfg, err := u.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	src, err := u.fetchAlerts(ctx, "list_active_alerts", u.listRemoteActive)
	if err != nil {
		return nil, err
	}
	if src.remoteErr != nil {
		logging.From(ctx).Warn("remote alerts unavailable, no alerts generated this pass",
			"error", src.remoteErr,
			"snapshots", len(snapshots),
		)
		return nil, nil
	}
	baseline := append(append(alert.Alerts{}, src.remote...), src.local...)

	result := generator.Run(ctx, snapshots, baseline, cfg.Thresholds(), u.repository.PutAlert)

	bySeverity := make(map[string]int)
	for _, a := range result.Created {
		bySeverity[a.Severity.String()]++
		u.publish(ctx, &event.AlertCreatedEvent{Alert: a})
	}
	metrics.ObserveGeneration(bySeverity, result.Suppressed, result.Failed)

	logging.From(ctx).Debug("alert check finished",
		"snapshots", len(snapshots),
		"created", len(result.Created),
		"suppressed", result.Suppressed,
		"failed", result.Failed,
	)

	return result.Created, nil
}

// ClearGeneratedAlerts drops every locally generated alert. Remote alerts
// are not touched.
func (u *UseCases) ClearGeneratedAlerts(ctx context.Context) (int, error) {
	n, err := u.repository.ClearAlerts(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to clear generated alerts")
	}

	logging.From(ctx).Info("generated alerts cleared", "count", n)
	u.publish(ctx, &event.AlertsClearedEvent{Count: n})
	return n, nil
}
