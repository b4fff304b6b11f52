package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/logging"
)

type errorBody struct {
	Detail string `json:"detail"`
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrNoLocations),
		errors.Is(err, common.ErrSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrLoadInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError answers with {"detail": ...}. Details of 5xx errors are only
// logged.
func writeError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	status := statusFor(err)
	detail := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		detail = "internal server error"
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, errorBody{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
