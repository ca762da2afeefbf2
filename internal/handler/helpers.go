package handler

import (
	"errors"
	"net/http"

	"hifadhi/internal/domain"
	"hifadhi/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidParent):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrStore):
		// Never leak storage internals to the client
		httputil.RespondError(w, http.StatusInternalServerError, "storage failure")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
