package types

import "github.com/m-mizutani/goerr/v2"

type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "ACTIVE"
	AlertStatusAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertStatusAssigned     AlertStatus = "ASSIGNED"
	AlertStatusResolved     AlertStatus = "RESOLVED"
	AlertStatusDismissed    AlertStatus = "DISMISSED"
	AlertStatusEscalated    AlertStatus = "ESCALATED"
)

// AlertStatusAll is the filter value that matches every status.
const AlertStatusAll AlertStatus = "ALL"

var alertStatusLabels = map[AlertStatus]string{
	AlertStatusActive:       "🔴 Active",
	AlertStatusAcknowledged: "👀 Acknowledged",
	AlertStatusAssigned:     "👤 Assigned",
	AlertStatusResolved:     "✅️ Resolved",
	AlertStatusDismissed:    "🚫 Dismissed",
	AlertStatusEscalated:    "⏫ Escalated",
}

func (x AlertStatus) String() string {
	return string(x)
}

func (x AlertStatus) Label() string {
	if label, ok := alertStatusLabels[x]; ok {
		return label
	}
	return string(x)
}

// OrDefault returns ACTIVE for an empty status.
func (x AlertStatus) OrDefault() AlertStatus {
	if x == "" {
		return AlertStatusActive
	}
	return x
}

// IsTerminal reports whether no lifecycle action may leave the status.
func (x AlertStatus) IsTerminal() bool {
	return x == AlertStatusResolved || x == AlertStatusDismissed
}

func (x AlertStatus) Validate() error {
	if _, ok := alertStatusLabels[x]; !ok {
		return goerr.New("invalid alert status", goerr.V("status", x))
	}
	return nil
}
