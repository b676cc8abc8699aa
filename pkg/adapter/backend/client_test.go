package backend_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/secmon-lab/sentiq/pkg/adapter/backend"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := backend.New(srv.URL+"/api", backend.WithToken("test-token"))
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNew(t *testing.T) {
	_, err := backend.New("ftp://example.com")
	require.Error(t, err)
	require.True(t, errs.IsValidation(err))

	_, err = backend.New("http://localhost:8080/api/")
	require.NoError(t, err)
}

func TestListActiveAlerts(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/alerts/active", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"message": "ok",
			"data": []map[string]any{
				{
					"id":                101,
					"driverId":          7,
					"alertType":         "LOW_SENTIMENT_SCORE",
					"severity":          "CRITICAL",
					"status":            "ACTIVE",
					"currentEmaScore":   -0.72,
					"recommendedAction": "IMMEDIATE_INTERVENTION",
					"createdAt":         "2025-03-01T10:00:00",
				},
				{
					"id":         "102",
					"driverId":   "8",
					"driverName": "Asha",
					"severity":   "high",
					"status":     "ACKNOWLEDGED",
					"assignedTo": 42,
					"createdAt":  "2025-03-01T09:00:00Z",
				},
			},
		})
	})

	alerts, err := client.ListActiveAlerts(t.Context())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	first := alerts[0]
	require.Equal(t, types.AlertID("101"), first.ID)
	require.Equal(t, types.OriginRemote, first.Origin)
	require.Equal(t, types.DriverID("7"), first.DriverID)
	require.Equal(t, "Driver #7", first.DriverName)
	require.Equal(t, types.SeverityCritical, first.Severity)
	require.Equal(t, "CRITICAL: Driver #7 has extremely low sentiment score (-0.72). Immediate action required.", first.Message)
	require.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), first.CreatedAt)
	require.Nil(t, first.AcknowledgedAt)

	second := alerts[1]
	require.Equal(t, types.AlertID("102"), second.ID)
	require.Equal(t, "Asha", second.DriverName)
	require.Equal(t, types.SeverityHigh, second.Severity)
	require.Equal(t, types.AlertStatusAcknowledged, second.Status)
	require.Equal(t, types.ManagerID("42"), second.AssignedTo)
	require.Equal(t, types.AlertTypeLowSentimentScore, second.AlertType)
}

func TestListDriverSnapshots(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/stats/all", r.URL.Path)
		// Bare payload without the envelope
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"driverId": 1, "emaScore": -0.65},
			{"driverId": 2},
		})
	})

	snapshots, err := client.ListDriverSnapshots(t.Context())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	require.Equal(t, types.DriverID("1"), snapshots[0].DriverID)
	require.InDelta(t, -0.65, snapshots[0].Score(), 1e-9)
	require.Nil(t, snapshots[1].EmaScore)
	require.Zero(t, snapshots[1].Score())
}

func TestApplyAction(t *testing.T) {
	t.Run("assign sends manager as number and query", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/alerts/55/assign", r.URL.Path)
			require.Equal(t, "42", r.URL.Query().Get("userId"))

			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.JSONEq(t, `{"managerId": 42}`, string(raw))

			writeJSON(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data": map[string]any{
					"id": 55, "driverId": 3, "severity": "HIGH", "status": "ACTIVE", "assignedTo": 42,
				},
			})
		})

		got, err := client.ApplyAction(t.Context(), "55", alert.ActionAssign, alert.Input{Manager: "42"})
		require.NoError(t, err)
		require.Equal(t, types.ManagerID("42"), got.AssignedTo)
		require.Equal(t, types.OriginRemote, got.Origin)
	})

	t.Run("resolve sends notes", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/alerts/56/resolve", r.URL.Path)
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.JSONEq(t, `{"resolvedBy": "ops@example.com", "resolutionNotes": "called driver"}`, string(raw))

			writeJSON(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"id": 56, "driverId": 3, "severity": "HIGH", "status": "RESOLVED"},
			})
		})

		got, err := client.ApplyAction(t.Context(), "56", alert.ActionResolve, alert.Input{
			Actor: "ops@example.com",
			Notes: "called driver",
		})
		require.NoError(t, err)
		require.Equal(t, types.AlertStatusResolved, got.Status)
	})
}

func TestErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]any{"success": false, "message": "Alert not found"})
		})
		_, err := client.GetAlert(t.Context(), "999")
		require.Error(t, err)
		require.True(t, errs.IsNotFound(err))
		require.Contains(t, err.Error(), "Alert not found")
	})

	t.Run("server error is upstream", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := client.ListActiveAlerts(t.Context())
		require.Error(t, err)
		require.True(t, errs.IsUpstream(err))
	})

	t.Run("unsuccessful envelope is upstream", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "message": "boom"})
		})
		_, err := client.ListActiveAlerts(t.Context())
		require.Error(t, err)
		require.True(t, errs.IsUpstream(err))
	})

	t.Run("unreachable backend is upstream", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client, err := backend.New(url)
		require.NoError(t, err)
		_, err = client.ListActiveAlerts(t.Context())
		require.Error(t, err)
		require.True(t, errs.IsUpstream(err))
	})
}

func TestConfig(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/config", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"criticalThreshold": -0.7, "warningThreshold": -0.2, "cooldownPeriod": 60},
			})
		case http.MethodPut:
			var cfg config.Config
			require.NoError(t, json.NewDecoder(r.Body).Decode(&cfg))
			writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "data": cfg})
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})

	got, err := client.GetConfig(t.Context())
	require.NoError(t, err)
	require.Equal(t, -0.7, got.CriticalThreshold)
	require.Equal(t, -0.2, got.WarningThreshold)
	require.Equal(t, 60, got.CooldownPeriod)

	cfg := config.Default()
	cfg.CooldownPeriod = 90
	saved, err := client.PutConfig(t.Context(), cfg)
	require.NoError(t, err)
	require.Equal(t, 90, saved.CooldownPeriod)
}
