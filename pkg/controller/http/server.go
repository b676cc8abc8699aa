package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	websocket_controller "github.com/secmon-lab/sentiq/pkg/controller/websocket"
	"github.com/secmon-lab/sentiq/pkg/domain/interfaces"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
)

type Server struct {
	router    *chi.Mux
	feedCtrl  *websocket_controller.Handler
	metrics   http.Handler
	monitor   MonitorRunner
	iapJWKURL string
}

type Options func(*Server)

// MonitorRunner runs a monitoring pass guarded against overlapping runs. The
// bool result of RunOnce is false when the pass was skipped. Trigger queues
// a pass without waiting for it.
type MonitorRunner interface {
	RunOnce(ctx context.Context) (alert.Alerts, bool)
	Trigger()
}

func WithWebSocketHandler(handler *websocket_controller.Handler) Options {
	return func(s *Server) {
		s.feedCtrl = handler
	}
}

// WithMetricsHandler exposes handler on GET /metrics.
func WithMetricsHandler(handler http.Handler) Options {
	return func(s *Server) {
		s.metrics = handler
	}
}

// WithMonitor routes manual checks without snapshots through the background
// monitor, and requests a reactive pass after the thresholds change or the
// generated alerts are cleared.
func WithMonitor(m MonitorRunner) Options {
	return func(s *Server) {
		s.monitor = m
	}
}

func WithIAPJWKURL(url string) Options {
	return func(s *Server) {
		s.iapJWKURL = url
	}
}

type UseCase interface {
	interfaces.AlertUsecases
	interfaces.ConfigUsecases
}

func New(uc UseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:    r,
		iapJWKURL: DefaultIAPJWKURL,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)
	r.Use(metricsMiddleware)
	r.Use(func(next http.Handler) http.Handler {
		return validateGoogleIAPTokenWithJWKURL(next, s.iapJWKURL)
	})

	r.Get("/health", healthHandler)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", listAlertsHandler(uc))
			r.Get("/my", listMyAlertsHandler(uc))
			r.Get("/statistics", statisticsHandler(uc))
			r.Post("/check", checkAlertsHandler(uc, s.monitor))
			r.Delete("/generated", clearGeneratedAlertsHandler(uc, s.monitor))

			r.Route("/{alertID}", func(r chi.Router) {
				r.Post("/acknowledge", acknowledgeAlertHandler(uc))
				r.Post("/assign", assignAlertHandler(uc))
				r.Post("/resolve", resolveAlertHandler(uc))
				r.Post("/dismiss", dismissAlertHandler(uc))
				r.Post("/escalate", escalateAlertHandler(uc))
			})
		})

		r.Route("/admin/config", func(r chi.Router) {
			r.Get("/", getConfigHandler(uc))
			r.Put("/", saveConfigHandler(uc, s.monitor))
			r.Post("/reset", resetConfigHandler(uc, s.monitor))
		})
	})

	if s.feedCtrl != nil {
		r.Get("/ws/alerts", s.feedCtrl.HandleAlertFeed)
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(r.Context()).Warn("failed to write response", "error", err)
	}
}
