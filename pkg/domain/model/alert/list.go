package alert

import "github.com/secmon-lab/sentiq/pkg/domain/types"

// Filter selects alerts for display. SeverityAll and AlertStatusAll disable
// the respective filter, an empty Status means ACTIVE and an empty Severity
// means all.
type Filter struct {
	Severity types.Severity    `json:"severity,omitempty"`
	Status   types.AlertStatus `json:"status,omitempty"`
}

func (x Filter) Match(a *Alert) bool {
	if x.Severity != "" && x.Severity != types.SeverityAll && a.Severity != x.Severity {
		return false
	}
	status := x.Status.OrDefault()
	if status != types.AlertStatusAll && a.Status.OrDefault() != status {
		return false
	}
	return true
}

// List is the merged, sorted result returned to dashboards.
type List struct {
	Alerts Alerts `json:"alerts"`
	Stats  Stats  `json:"stats"`
}
