package http

import (
	"net/http"

	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
)

func getConfigHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := uc.GetConfig(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, cfg)
	}
}

func saveConfigHandler(uc UseCase, monitor MonitorRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg config.Config
		if err := decodeBody(r, &cfg); err != nil {
			handleError(w, r, err)
			return
		}

		saved, err := uc.SaveConfig(r.Context(), cfg)
		if err != nil {
			handleError(w, r, err)
			return
		}
		requestPass(monitor)
		writeJSON(w, r, http.StatusOK, saved)
	}
}

func resetConfigHandler(uc UseCase, monitor MonitorRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := uc.ResetConfig(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		requestPass(monitor)
		writeJSON(w, r, http.StatusOK, cfg)
	}
}

// requestPass queues a reactive pass when a monitor runs in the background.
func requestPass(monitor MonitorRunner) {
	if monitor != nil {
		monitor.Trigger()
	}
}
