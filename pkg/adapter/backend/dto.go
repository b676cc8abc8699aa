package backend

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
)

// envelope is the ApiResponse wrapper of the backend. Endpoints that return
// a bare payload are accepted as well.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func unwrapEnvelope(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Success == nil {
		return trimmed, nil
	}
	if !*env.Success {
		return nil, goerr.New("backend reported failure", goerr.V("message", env.Message))
	}
	return env.Data, nil
}

// flexID accepts the numeric ids of the backend as well as strings.
type flexID string

func (x *flexID) UnmarshalJSON(data []byte) error {
	var id types.DriverID
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	*x = flexID(id)
	return nil
}

// Layouts the backend uses for timestamps. Zone-less values are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// flexTime decodes timestamps with or without a zone offset.
type flexTime struct {
	time.Time
}

func (x *flexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		x.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			x.Time = t.UTC()
			return nil
		}
	}
	return goerr.New("unsupported time format", goerr.V("value", s))
}

func (x flexTime) ptr() *time.Time {
	if x.IsZero() {
		return nil
	}
	t := x.Time
	return &t
}

type alertResponse struct {
	ID                flexID         `json:"id"`
	DriverID          types.DriverID `json:"driverId"`
	DriverName        string         `json:"driverName"`
	AlertType         string         `json:"alertType"`
	Severity          string         `json:"severity"`
	Status            string         `json:"status"`
	Message           string         `json:"message"`
	RecommendedAction string         `json:"recommendedAction"`
	CurrentEmaScore   *float64       `json:"currentEmaScore"`
	ThresholdValue    *float64       `json:"thresholdValue"`
	AcknowledgedBy    flexID         `json:"acknowledgedBy"`
	AssignedTo        flexID         `json:"assignedTo"`
	ResolvedBy        flexID         `json:"resolvedBy"`
	ResolutionNotes   string         `json:"resolutionNotes"`
	CreatedAt         flexTime       `json:"createdAt"`
	AcknowledgedAt    flexTime       `json:"acknowledgedAt"`
	ResolvedAt        flexTime       `json:"resolvedAt"`
}

func (x alertResponse) toAlert() *alert.Alert {
	a := &alert.Alert{
		ID:                types.AlertID(x.ID),
		Origin:            types.OriginRemote,
		DriverID:          x.DriverID,
		DriverName:        alert.DisplayName(x.DriverID, x.DriverName),
		AlertType:         types.AlertType(x.AlertType),
		Severity:          types.Severity(strings.ToUpper(x.Severity)),
		Status:            types.AlertStatus(strings.ToUpper(x.Status)),
		Message:           x.Message,
		RecommendedAction: types.RecommendedAction(x.RecommendedAction),
		CreatedAt:         x.CreatedAt.Time,
		AcknowledgedBy:    types.ManagerID(x.AcknowledgedBy),
		AcknowledgedAt:    x.AcknowledgedAt.ptr(),
		AssignedTo:        types.ManagerID(x.AssignedTo),
		ResolvedBy:        types.ManagerID(x.ResolvedBy),
		ResolvedAt:        x.ResolvedAt.ptr(),
		ResolutionNotes:   x.ResolutionNotes,
	}
	if x.CurrentEmaScore != nil {
		a.CurrentEmaScore = *x.CurrentEmaScore
	}
	if x.ThresholdValue != nil {
		a.ThresholdValue = *x.ThresholdValue
	}
	a.Normalize()

	if a.Message == "" && (a.Severity == types.SeverityCritical || a.Severity == types.SeverityHigh) {
		a.Message = alert.ScoreMessage(a.DriverName, a.Severity, a.CurrentEmaScore)
	}
	return a
}

func toAlerts(resp []alertResponse) alert.Alerts {
	alerts := make(alert.Alerts, 0, len(resp))
	for _, r := range resp {
		alerts = append(alerts, r.toAlert())
	}
	return alerts
}

// actionRequest builds the body and query of a lifecycle action call.
func actionRequest(action alert.Action, input alert.Input) (map[string]any, url.Values) {
	query := url.Values{}
	body := map[string]any{}

	switch action {
	case alert.ActionAcknowledge:
		body["managerId"] = idValue(input.Actor)
		body["acknowledgedBy"] = idValue(input.Actor)
	case alert.ActionAssign:
		body["managerId"] = idValue(input.Manager)
		query.Set("userId", input.Manager.String())
	case alert.ActionResolve:
		body["resolvedBy"] = idValue(input.Actor)
		body["resolutionNotes"] = input.Notes
	case alert.ActionDismiss:
		body["reason"] = input.Notes
		if input.Actor != "" {
			body["dismissedBy"] = idValue(input.Actor)
		}
	case alert.ActionEscalate:
		body["reason"] = input.Notes
		if input.Notes != "" {
			query.Set("reason", input.Notes)
		}
	}
	return body, query
}

// idValue sends numeric manager ids as JSON numbers.
func idValue(id types.ManagerID) any {
	n := json.Number(id.String())
	if _, err := n.Int64(); err == nil {
		return n
	}
	return id.String()
}
