package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/driver"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/utils/user"
)

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// An empty body leaves every field unset
		if errors.Is(err, io.EOF) {
			return nil
		}
		return goerr.Wrap(err, "failed to decode request body", goerr.T(errs.TagInvalidRequest))
	}
	return nil
}

func parseFilter(r *http.Request) (alert.Filter, error) {
	q := r.URL.Query()
	filter := alert.Filter{
		Severity: types.Severity(strings.ToUpper(q.Get("severity"))),
		Status:   types.AlertStatus(strings.ToUpper(q.Get("status"))),
	}

	if filter.Severity != "" && filter.Severity != types.SeverityAll {
		if err := filter.Severity.Validate(); err != nil {
			return filter, goerr.Wrap(err, "invalid severity filter", goerr.T(errs.TagInvalidRequest))
		}
	}
	if filter.Status != "" && filter.Status != types.AlertStatusAll {
		if err := filter.Status.Validate(); err != nil {
			return filter, goerr.Wrap(err, "invalid status filter", goerr.T(errs.TagInvalidRequest))
		}
	}
	return filter, nil
}

func listAlertsHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			handleError(w, r, err)
			return
		}

		list, err := uc.ListAlerts(r.Context(), filter)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, list)
	}
}

func listMyAlertsHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			handleError(w, r, err)
			return
		}

		manager := types.ManagerID(r.URL.Query().Get("managerId"))
		if manager == "" {
			manager = types.ManagerID(user.Actor(r.Context()))
		}

		list, err := uc.ListMyAlerts(r.Context(), manager, filter)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, list)
	}
}

func statisticsHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := uc.ListAlerts(r.Context(), alert.Filter{})
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, list.Stats)
	}
}

type checkRequest struct {
	Snapshots []driver.Snapshot `json:"snapshots"`
}

type checkResponse struct {
	Alerts  alert.Alerts `json:"alerts"`
	Skipped bool         `json:"skipped,omitempty"`
}

func checkAlertsHandler(uc UseCase, monitor MonitorRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkRequest
		if err := decodeBody(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		var resp checkResponse
		switch {
		case req.Snapshots != nil:
			created, err := uc.CheckAndTriggerAlerts(r.Context(), req.Snapshots)
			if err != nil && !errs.IsPassInProgress(err) {
				handleError(w, r, err)
				return
			}
			resp.Alerts = created
			resp.Skipped = err != nil

		case monitor != nil:
			created, ran := monitor.RunOnce(r.Context())
			resp.Alerts = created
			resp.Skipped = !ran

		default:
			created, err := uc.RunMonitoringPass(r.Context())
			if err != nil && !errs.IsPassInProgress(err) {
				handleError(w, r, err)
				return
			}
			resp.Alerts = created
			resp.Skipped = err != nil
		}

		if resp.Alerts == nil {
			resp.Alerts = alert.Alerts{}
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

func clearGeneratedAlertsHandler(uc UseCase, monitor MonitorRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := uc.ClearGeneratedAlerts(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		// drivers still below a threshold get fresh alerts
		requestPass(monitor)
		writeJSON(w, r, http.StatusOK, map[string]int{"cleared": n})
	}
}

// actionRequest accepts the body field names of every lifecycle action.
type actionRequest struct {
	ManagerID       string `json:"managerId"`
	AcknowledgedBy  string `json:"acknowledgedBy"`
	ResolvedBy      string `json:"resolvedBy"`
	DismissedBy     string `json:"dismissedBy"`
	ResolutionNotes string `json:"resolutionNotes"`
	Reason          string `json:"reason"`
}

// actorOf returns the first non-empty candidate, falling back to the
// identity verified by IAP.
func actorOf(r *http.Request, candidates ...string) types.ManagerID {
	for _, c := range candidates {
		if c != "" {
			return types.ManagerID(c)
		}
	}
	return types.ManagerID(user.Actor(r.Context()))
}

type actionFunc func(r *http.Request, id types.AlertID, req actionRequest) (*alert.Alert, error)

func actionHandler(fn actionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.AlertID(chi.URLParam(r, "alertID"))

		var req actionRequest
		if err := decodeBody(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		updated, err := fn(r, id, req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, updated)
	}
}

func acknowledgeAlertHandler(uc UseCase) http.HandlerFunc {
	return actionHandler(func(r *http.Request, id types.AlertID, req actionRequest) (*alert.Alert, error) {
		return uc.AcknowledgeAlert(r.Context(), id, actorOf(r, req.ManagerID, req.AcknowledgedBy))
	})
}

func assignAlertHandler(uc UseCase) http.HandlerFunc {
	return actionHandler(func(r *http.Request, id types.AlertID, req actionRequest) (*alert.Alert, error) {
		manager := req.ManagerID
		if manager == "" {
			manager = r.URL.Query().Get("userId")
		}
		return uc.AssignAlert(r.Context(), id, types.ManagerID(manager))
	})
}

func resolveAlertHandler(uc UseCase) http.HandlerFunc {
	return actionHandler(func(r *http.Request, id types.AlertID, req actionRequest) (*alert.Alert, error) {
		return uc.ResolveAlert(r.Context(), id, actorOf(r, req.ResolvedBy, req.ManagerID), req.ResolutionNotes)
	})
}

func dismissAlertHandler(uc UseCase) http.HandlerFunc {
	return actionHandler(func(r *http.Request, id types.AlertID, req actionRequest) (*alert.Alert, error) {
		return uc.DismissAlert(r.Context(), id, actorOf(r, req.DismissedBy, req.ManagerID), req.Reason)
	})
}

func escalateAlertHandler(uc UseCase) http.HandlerFunc {
	return actionHandler(func(r *http.Request, id types.AlertID, req actionRequest) (*alert.Alert, error) {
		reason := req.Reason
		if reason == "" {
			reason = r.URL.Query().Get("reason")
		}
		return uc.EscalateAlert(r.Context(), id, reason)
	})
}
