package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	server "github.com/secmon-lab/sentiq/pkg/controller/http"
	"github.com/secmon-lab/sentiq/pkg/domain/mock"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/model/driver"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/metrics"
	"github.com/secmon-lab/sentiq/pkg/repository"
	"github.com/secmon-lab/sentiq/pkg/service/monitor"
	"github.com/secmon-lab/sentiq/pkg/usecase"
	"github.com/secmon-lab/sentiq/pkg/utils/user"
)

func newServer(t *testing.T, opts ...server.Options) (*server.Server, *repository.Memory) {
	t.Helper()
	repo := repository.NewMemory()
	uc := usecase.New(usecase.WithRepository(repo))
	return server.New(uc, opts...), repo
}

func doRequest(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doRequestWithContext(t, t.Context(), srv, method, path, body)
}

func doRequestWithContext(t *testing.T, ctx context.Context, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

type checkResponse struct {
	Alerts  alert.Alerts `json:"alerts"`
	Skipped bool         `json:"skipped"`
}

func checkScores(t *testing.T, srv http.Handler, scores map[string]float64) alert.Alerts {
	t.Helper()
	var snapshots []map[string]any
	for id, s := range scores {
		snapshots = append(snapshots, map[string]any{"driverId": id, "emaScore": s})
	}
	w := doRequest(t, srv, http.MethodPost, "/api/alerts/check", map[string]any{"snapshots": snapshots})
	gt.Equal(t, w.Code, http.StatusOK)
	return decode[checkResponse](t, w).Alerts
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)
	w := doRequest(t, srv, http.MethodGet, "/health", nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, decode[map[string]string](t, w)["status"], "ok")
}

func TestCheckAndListAlerts(t *testing.T) {
	srv, _ := newServer(t)

	created := checkScores(t, srv, map[string]float64{"1": -0.8, "2": -0.4, "3": 0.5})
	gt.A(t, created).Length(2)

	t.Run("list is sorted by severity", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/alerts", nil)
		gt.Equal(t, w.Code, http.StatusOK)

		list := decode[alert.List](t, w)
		gt.A(t, list.Alerts).Length(2).Required()
		gt.Equal(t, list.Alerts[0].Severity, types.SeverityCritical)
		gt.Equal(t, list.Alerts[1].Severity, types.SeverityHigh)
		gt.Equal(t, list.Stats.Total, 2)
		gt.Equal(t, list.Stats.BySource.Local, 2)
	})

	t.Run("severity filter", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/alerts?severity=high", nil)
		gt.Equal(t, w.Code, http.StatusOK)

		list := decode[alert.List](t, w)
		gt.A(t, list.Alerts).Length(1).Required()
		gt.Equal(t, list.Alerts[0].DriverID, types.DriverID("2"))
		gt.Equal(t, list.Stats.Total, 2)
	})

	t.Run("invalid filter", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/alerts?status=unknown", nil)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("statistics", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/alerts/statistics", nil)
		gt.Equal(t, w.Code, http.StatusOK)

		stats := decode[alert.Stats](t, w)
		gt.Equal(t, stats.Critical, 1)
		gt.Equal(t, stats.High, 1)
	})

	t.Run("repeated check is deduplicated", func(t *testing.T) {
		again := checkScores(t, srv, map[string]float64{"1": -0.9})
		gt.A(t, again).Length(0)
	})

	t.Run("clear generated alerts", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodDelete, "/api/alerts/generated", nil)
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[map[string]int](t, w)["cleared"], 2)

		w = doRequest(t, srv, http.MethodGet, "/api/alerts", nil)
		gt.A(t, decode[alert.List](t, w).Alerts).Length(0)
	})
}

type monitorStub struct {
	alerts   alert.Alerts
	ran      bool
	calls    int
	triggers int
}

func (m *monitorStub) RunOnce(ctx context.Context) (alert.Alerts, bool) {
	m.calls++
	return m.alerts, m.ran
}

func (m *monitorStub) Trigger() {
	m.triggers++
}

// blockingRepo holds ListAlerts until release is closed.
type blockingRepo struct {
	*repository.Memory
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingRepo) ListAlerts(ctx context.Context) (alert.Alerts, error) {
	r.once.Do(func() { close(r.entered) })
	<-r.release
	return r.Memory.ListAlerts(ctx)
}

func TestCheckDuringScheduledPass(t *testing.T) {
	repo := &blockingRepo{
		Memory:  repository.NewMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	scores := &mock.ScoreProviderMock{
		ListDriverSnapshotsFunc: func(ctx context.Context) ([]driver.Snapshot, error) {
			v := -0.7
			return []driver.Snapshot{{DriverID: "D1", EmaScore: &v}}, nil
		},
	}
	uc := usecase.New(usecase.WithRepository(repo), usecase.WithScoreProvider(scores))
	mon := monitor.New(uc.RunMonitoringPass)
	srv := server.New(uc, server.WithMonitor(mon))

	done := make(chan bool, 1)
	go func() {
		_, ran := mon.RunOnce(t.Context())
		done <- ran
	}()
	<-repo.entered

	w := doRequest(t, srv, http.MethodPost, "/api/alerts/check", map[string]any{
		"snapshots": []map[string]any{{"driverId": "D1", "emaScore": -0.7}},
	})
	gt.Equal(t, w.Code, http.StatusOK)
	resp := decode[checkResponse](t, w)
	gt.True(t, resp.Skipped)
	gt.A(t, resp.Alerts).Length(0)

	close(repo.release)
	gt.True(t, <-done)

	stored, err := repo.Memory.ListAlerts(t.Context())
	gt.NoError(t, err)
	active := 0
	for _, a := range stored {
		if a.DriverID == "D1" && a.Severity == types.SeverityCritical && a.Status == types.AlertStatusActive {
			active++
		}
	}
	gt.Equal(t, active, 1)
}

func TestReactivePassRequests(t *testing.T) {
	stub := &monitorStub{}
	srv, _ := newServer(t, server.WithMonitor(stub))

	gt.Equal(t, doRequest(t, srv, http.MethodPut, "/api/admin/config", config.Default()).Code, http.StatusOK)
	gt.Equal(t, stub.triggers, 1)

	gt.Equal(t, doRequest(t, srv, http.MethodPost, "/api/admin/config/reset", nil).Code, http.StatusOK)
	gt.Equal(t, stub.triggers, 2)

	gt.Equal(t, doRequest(t, srv, http.MethodDelete, "/api/alerts/generated", nil).Code, http.StatusOK)
	gt.Equal(t, stub.triggers, 3)

	t.Run("rejected config does not trigger", func(t *testing.T) {
		cfg := config.Default()
		cfg.CooldownPeriod = 0
		gt.Equal(t, doRequest(t, srv, http.MethodPut, "/api/admin/config", cfg).Code, http.StatusUnprocessableEntity)
		gt.Equal(t, stub.triggers, 3)
	})
}

func TestCheckWithoutSnapshots(t *testing.T) {
	t.Run("runs through the monitor", func(t *testing.T) {
		stub := &monitorStub{ran: false}
		srv, _ := newServer(t, server.WithMonitor(stub))

		w := doRequest(t, srv, http.MethodPost, "/api/alerts/check", nil)
		gt.Equal(t, w.Code, http.StatusOK)

		resp := decode[checkResponse](t, w)
		gt.True(t, resp.Skipped)
		gt.A(t, resp.Alerts).Length(0)
		gt.Equal(t, stub.calls, 1)
	})

	t.Run("score provider is required without a monitor", func(t *testing.T) {
		srv, _ := newServer(t)
		w := doRequest(t, srv, http.MethodPost, "/api/alerts/check", map[string]any{})
		gt.Equal(t, w.Code, http.StatusInternalServerError)
	})
}

func TestAlertActions(t *testing.T) {
	srv, _ := newServer(t)
	created := checkScores(t, srv, map[string]float64{"1": -0.8})
	gt.A(t, created).Length(1).Required()
	id := created[0].ID.String()

	t.Run("acknowledge", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/alerts/"+id+"/acknowledge", map[string]string{"managerId": "mgr-1"})
		gt.Equal(t, w.Code, http.StatusOK)

		got := decode[alert.Alert](t, w)
		gt.Equal(t, got.Status, types.AlertStatusAcknowledged)
		gt.Equal(t, got.AcknowledgedBy, types.ManagerID("mgr-1"))
	})

	t.Run("acknowledge twice is a conflict", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/alerts/"+id+"/acknowledge", map[string]string{"managerId": "mgr-1"})
		gt.Equal(t, w.Code, http.StatusConflict)
	})

	t.Run("resolve requires notes", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/alerts/"+id+"/resolve", map[string]string{"resolvedBy": "mgr-1"})
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("assign", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/alerts/"+id+"/assign?userId=mgr-2", nil)
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[alert.Alert](t, w).AssignedTo, types.ManagerID("mgr-2"))

		w = doRequest(t, srv, http.MethodGet, "/api/alerts/my?managerId=mgr-2&status=all", nil)
		gt.Equal(t, w.Code, http.StatusOK)
		gt.A(t, decode[alert.List](t, w).Alerts).Length(1)
	})

	t.Run("resolve", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/alerts/"+id+"/resolve", map[string]string{
			"resolvedBy":      "mgr-2",
			"resolutionNotes": "talked to driver",
		})
		gt.Equal(t, w.Code, http.StatusOK)

		got := decode[alert.Alert](t, w)
		gt.Equal(t, got.Status, types.AlertStatusResolved)
		gt.Equal(t, got.ResolutionNotes, "talked to driver")
	})

	t.Run("unknown alert", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/alerts/alert-0-missing/dismiss", map[string]string{"reason": "noise"})
		gt.Equal(t, w.Code, http.StatusNotFound)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/alerts/"+id+"/dismiss", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})
}

func TestEscalateAlert(t *testing.T) {
	srv, _ := newServer(t)
	created := checkScores(t, srv, map[string]float64{"7": -0.4})
	gt.A(t, created).Length(1).Required()
	id := created[0].ID.String()

	w := doRequest(t, srv, http.MethodPost, "/api/alerts/"+id+"/escalate?reason=repeat+offender", nil)
	gt.Equal(t, w.Code, http.StatusOK)

	got := decode[alert.Alert](t, w)
	gt.Equal(t, got.Status, types.AlertStatusEscalated)
	gt.Equal(t, got.Severity, types.SeverityCritical)
	gt.Equal(t, got.ResolutionNotes, "repeat offender")
}

func TestActorFallback(t *testing.T) {
	srv, _ := newServer(t)
	created := checkScores(t, srv, map[string]float64{"1": -0.8})
	gt.A(t, created).Length(1).Required()

	ctx := user.WithEmail(t.Context(), "manager@example.com")
	w := doRequestWithContext(t, ctx, srv, http.MethodPost, "/api/alerts/"+created[0].ID.String()+"/acknowledge", nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, decode[alert.Alert](t, w).AcknowledgedBy, types.ManagerID("manager@example.com"))

	t.Run("without identity the actor is required", func(t *testing.T) {
		other := checkScores(t, srv, map[string]float64{"2": -0.8})
		gt.A(t, other).Length(1).Required()

		w := doRequest(t, srv, http.MethodPost, "/api/alerts/"+other[0].ID.String()+"/acknowledge", nil)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})
}

func TestConfigAPI(t *testing.T) {
	srv, repo := newServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/admin/config", nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, decode[config.Config](t, w).CriticalThreshold, config.DefaultCriticalThreshold)

	t.Run("save", func(t *testing.T) {
		cfg := config.Default()
		cfg.CriticalThreshold = -0.7
		w := doRequest(t, srv, http.MethodPut, "/api/admin/config", cfg)
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[config.Config](t, w).CriticalThreshold, -0.7)

		stored, err := repo.GetConfig(t.Context())
		gt.NoError(t, err).Required()
		gt.V(t, stored).NotNil().Required()
		gt.Equal(t, stored.CriticalThreshold, -0.7)
	})

	t.Run("invalid thresholds", func(t *testing.T) {
		cfg := config.Default()
		cfg.CriticalThreshold = 0.1
		w := doRequest(t, srv, http.MethodPut, "/api/admin/config", cfg)
		gt.Equal(t, w.Code, http.StatusUnprocessableEntity)
	})

	t.Run("reset", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/admin/config/reset", nil)
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[config.Config](t, w).CriticalThreshold, config.DefaultCriticalThreshold)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	gt.NoError(t, metrics.Register(reg)).Required()

	srv, _ := newServer(t, server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	gt.Equal(t, doRequest(t, srv, http.MethodGet, "/health", nil).Code, http.StatusOK)

	w := doRequest(t, srv, http.MethodGet, "/metrics", nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains("sentiq_http_requests_total")
}
