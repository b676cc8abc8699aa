// Package aggregate merges remote and local alerts for display.
package aggregate

import (
	"sort"
	"time"

	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
)

// Merge concatenates remote and local alerts, keeps the ones matching
// filter and sorts the result with Sort. The two origins are disjoint by
// construction, so no identity merge happens.
func Merge(remote, local alert.Alerts, filter alert.Filter) alert.Alerts {
	merged := make(alert.Alerts, 0, len(remote)+len(local))
	for _, src := range []alert.Alerts{remote, local} {
		for _, a := range src {
			if a == nil || !filter.Match(a) {
				continue
			}
			merged = append(merged, a)
		}
	}

	Sort(merged)
	return merged
}

// Sort orders alerts by severity rank, then by creation time with the most
// recent first. Ties keep their input order.
func Sort(alerts alert.Alerts) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Severity.Rank(), alerts[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
}

// Summarize counts every alert of both origins, ignoring display filters.
func Summarize(now time.Time, remote, local alert.Alerts) alert.Stats {
	var stats alert.Stats
	stats.BySource.Remote = countNonNil(remote)
	stats.BySource.Local = countNonNil(local)

	for _, src := range []alert.Alerts{remote, local} {
		for _, a := range src {
			if a == nil {
				continue
			}
			stats.Total++

			switch a.Severity {
			case types.SeverityCritical:
				stats.Critical++
			case types.SeverityHigh:
				stats.High++
			case types.SeverityMedium:
				stats.Medium++
			case types.SeverityLow:
				stats.Low++
			}

			status := a.Status.OrDefault()
			if status == types.AlertStatusActive {
				stats.Active++
				if a.AcknowledgedBy == "" {
					stats.Unacknowledged++
				}
			}
			if (status == types.AlertStatusActive || status == types.AlertStatusAcknowledged) && a.AssignedTo == "" {
				stats.Unassigned++
			}
			if a.IsOverdue(now) {
				stats.Overdue++
			}
		}
	}

	return stats
}

// Build returns the filtered, sorted list together with unfiltered stats.
func Build(now time.Time, remote, local alert.Alerts, filter alert.Filter) *alert.List {
	return &alert.List{
		Alerts: Merge(remote, local, filter),
		Stats:  Summarize(now, remote, local),
	}
}

func countNonNil(alerts alert.Alerts) int {
	n := 0
	for _, a := range alerts {
		if a != nil {
			n++
		}
	}
	return n
}
