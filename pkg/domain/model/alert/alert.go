package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
)

// OverdueAfter is how long an alert may stay ACTIVE before it is overdue.
const OverdueAfter = 24 * time.Hour

type Alert struct {
	ID     types.AlertID `json:"id"`
	Origin types.Origin  `json:"origin"`

	DriverID   types.DriverID `json:"driverId"`
	DriverName string         `json:"driverName"`

	AlertType         types.AlertType         `json:"alertType"`
	Severity          types.Severity          `json:"severity"`
	Status            types.AlertStatus       `json:"status"`
	Message           string                  `json:"message"`
	RecommendedAction types.RecommendedAction `json:"recommendedAction,omitempty"`

	// Snapshot of the triggering condition, frozen at creation.
	CurrentEmaScore float64 `json:"currentEmaScore"`
	ThresholdValue  float64 `json:"thresholdValue"`

	CreatedAt time.Time `json:"createdAt"`

	AcknowledgedBy  types.ManagerID `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt  *time.Time      `json:"acknowledgedAt,omitempty"`
	AssignedTo      types.ManagerID `json:"assignedTo,omitempty"`
	ResolvedBy      types.ManagerID `json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time      `json:"resolvedAt,omitempty"`
	ResolutionNotes string          `json:"resolutionNotes,omitempty"`
}

type Alerts []*Alert

// NewScoreAlert builds an ACTIVE local alert for a driver whose score crossed
// threshold at the given severity.
func NewScoreAlert(ctx context.Context, driverID types.DriverID, driverName string, score float64, severity types.Severity, threshold float64) Alert {
	name := DisplayName(driverID, driverName)
	return Alert{
		ID:                types.NewLocalAlertID(ctx),
		Origin:            types.OriginLocal,
		DriverID:          driverID,
		DriverName:        name,
		AlertType:         types.AlertTypeLowSentimentScore,
		Severity:          severity,
		Status:            types.AlertStatusActive,
		Message:           ScoreMessage(name, severity, score),
		RecommendedAction: types.RecommendedActionFor(severity),
		CurrentEmaScore:   score,
		ThresholdValue:    threshold,
		CreatedAt:         clock.Now(ctx),
	}
}

// DisplayName returns name, or a placeholder derived from the driver ID when
// the name is missing.
func DisplayName(driverID types.DriverID, name string) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Driver #%s", driverID)
}

func ScoreMessage(name string, severity types.Severity, score float64) string {
	if severity == types.SeverityCritical {
		return fmt.Sprintf("CRITICAL: %s has extremely low sentiment score (%.2f). Immediate action required.", name, score)
	}
	return fmt.Sprintf("WARNING: %s has low sentiment score (%.2f). Management review recommended.", name, score)
}

// Normalize fills defaults for records coming from stores that omit them.
func (x *Alert) Normalize() {
	x.Status = x.Status.OrDefault()
	if x.AlertType == "" {
		x.AlertType = types.AlertTypeLowSentimentScore
	}
}

func (x *Alert) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid alert ID")
	}
	if err := x.Origin.Validate(); err != nil {
		return goerr.Wrap(err, "invalid origin", goerr.V("alert_id", x.ID))
	}
	if err := x.Severity.Validate(); err != nil {
		return goerr.Wrap(err, "invalid severity", goerr.V("alert_id", x.ID))
	}
	if err := x.Status.Validate(); err != nil {
		return goerr.Wrap(err, "invalid status", goerr.V("alert_id", x.ID))
	}
	if x.DriverID == "" {
		return goerr.New("driver ID is required", goerr.V("alert_id", x.ID))
	}
	return nil
}

// IsOverdue reports whether the alert has stayed ACTIVE longer than
// OverdueAfter.
func (x *Alert) IsOverdue(now time.Time) bool {
	return x.Status.OrDefault() == types.AlertStatusActive && now.Sub(x.CreatedAt) > OverdueAfter
}

// Copy returns a deep copy so callers can mutate without touching the
// original record.
func (x *Alert) Copy() *Alert {
	c := *x
	if x.AcknowledgedAt != nil {
		t := *x.AcknowledgedAt
		c.AcknowledgedAt = &t
	}
	if x.ResolvedAt != nil {
		t := *x.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}
