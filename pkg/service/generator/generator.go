// Package generator turns driver score snapshots into new, deduplicated
// alerts.
package generator

import (
	"context"

	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/model/driver"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/service/threshold"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
)

// PersistFunc stores a freshly created alert.
type PersistFunc func(ctx context.Context, a *alert.Alert) error

type Result struct {
	Created    alert.Alerts
	Suppressed int
	Failed     int
}

type dedupKey struct {
	driverID types.DriverID
	severity types.Severity
}

type dedupSet map[dedupKey]struct{}

func newDedupSet(active alert.Alerts) dedupSet {
	set := make(dedupSet, len(active))
	for _, a := range active {
		set.add(a)
	}
	return set
}

func (s dedupSet) add(a *alert.Alert) {
	if a.Status.OrDefault() != types.AlertStatusActive {
		return
	}
	s[dedupKey{driverID: a.DriverID, severity: a.Severity}] = struct{}{}
}

func (s dedupSet) has(driverID types.DriverID, severity types.Severity) bool {
	_, ok := s[dedupKey{driverID: driverID, severity: severity}]
	return ok
}

// Generate returns the alerts that must be created for snapshots, in input
// order. An alert is skipped when active, or an alert created earlier in the
// same call, already holds an ACTIVE alert for the same driver and severity.
func Generate(ctx context.Context, snapshots []driver.Snapshot, active alert.Alerts, th config.Thresholds) alert.Alerts {
	return Run(ctx, snapshots, active, th, nil).Created
}

// Run behaves like Generate and stores every new alert with persist. A
// failed store is logged and the remaining snapshots are still processed.
// The failed alert is not part of the dedup set, so a later snapshot of the
// same driver in the batch retries it.
func Run(ctx context.Context, snapshots []driver.Snapshot, active alert.Alerts, th config.Thresholds, persist PersistFunc) Result {
	logger := logging.From(ctx)
	seen := newDedupSet(active)
	var result Result

	for _, snapshot := range snapshots {
		score := snapshot.Score()
		hit, ok := threshold.Classify(score, th)
		if !ok {
			continue
		}

		if seen.has(snapshot.DriverID, hit.Severity) {
			result.Suppressed++
			logger.Debug("active alert already exists",
				"driver_id", snapshot.DriverID,
				"severity", hit.Severity,
			)
			continue
		}

		newAlert := alert.NewScoreAlert(ctx, snapshot.DriverID, snapshot.DriverName, score, hit.Severity, hit.Threshold)
		if persist != nil {
			if err := persist(ctx, &newAlert); err != nil {
				result.Failed++
				logger.Warn("failed to persist generated alert",
					"error", err,
					"driver_id", snapshot.DriverID,
					"severity", hit.Severity,
					"alert_id", newAlert.ID,
				)
				continue
			}
		}

		result.Created = append(result.Created, &newAlert)
		seen.add(&newAlert)
	}

	return result
}
