package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.From(r.Context())

	switch {
	case goerr.HasTag(err, errs.TagNotFound):
		logger.Warn("Not Found", "error", err)
		writeError(w, r, http.StatusNotFound, err)

	case goerr.HasTag(err, errs.TagValidation), goerr.HasTag(err, errs.TagInvalidRequest):
		logger.Warn("Bad Request", "error", err)
		writeError(w, r, http.StatusBadRequest, err)

	case goerr.HasTag(err, errs.TagInvalidTransition), goerr.HasTag(err, errs.TagPassInProgress):
		logger.Warn("Conflict", "error", err)
		writeError(w, r, http.StatusConflict, err)

	case goerr.HasTag(err, errs.TagConfigInvalid):
		logger.Warn("Unprocessable Entity", "error", err)
		writeError(w, r, http.StatusUnprocessableEntity, err)

	case goerr.HasTag(err, errs.TagTimeout):
		logger.Error("Gateway Timeout", "error", err)
		writeError(w, r, http.StatusGatewayTimeout, err)

	case goerr.HasTag(err, errs.TagUpstream):
		logger.Error("Upstream Error", "error", err)
		writeError(w, r, http.StatusBadGateway, err)

	case goerr.HasTag(err, errs.TagDatabase), goerr.HasTag(err, errs.TagInternal):
		errs.Handle(r.Context(), err)
		writeError(w, r, http.StatusInternalServerError, err)

	default:
		errs.Handle(r.Context(), err)
		writeError(w, r, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}
