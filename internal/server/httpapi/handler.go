// Package httpapi exposes the services over REST with chi.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/services"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Handler serves every API route.
type Handler struct {
	users        *services.UserService
	admins       *services.AdminService
	trabajadores *services.TrabajadorService
	locations    *services.LocationService
	logger       logging.Logger
}

func NewHandler(us *services.UserService, as *services.AdminService, ts *services.TrabajadorService, ls *services.LocationService, logger logging.Logger) *Handler {
	return &Handler{
		users:        us,
		admins:       as,
		trabajadores: ts,
		locations:    ls,
		logger:       logger.With("module", "http"),
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.logger, err)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// caller returns the claims put in place by the auth middleware, or nil on
// public routes.
func caller(r *http.Request) *auth.Claims {
	c, _ := ClaimsFromContext(r.Context())
	return c
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", common.ErrorValidation)
		}
		return fmt.Errorf("%w: invalid JSON body: %v", common.ErrorValidation, err)
	}
	return nil
}

// requiredForm reads form values that must be present and non-blank.
func requiredForm(r *http.Request, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	var missing []string
	for _, n := range names {
		v := strings.TrimSpace(r.FormValue(n))
		if v == "" {
			missing = append(missing, n)
		}
		out[n] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing form fields: %s", common.ErrorValidation, strings.Join(missing, ", "))
	}
	return out, nil
}

func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", common.ErrorValidation, name)
	}
	return n, nil
}

func boolQuery(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", common.ErrorValidation, name)
	}
	return b, nil
}

func pageQuery(r *http.Request) (limit, skip int, err error) {
	if limit, err = intQuery(r, "limit"); err != nil {
		return 0, 0, err
	}
	if skip, err = intQuery(r, "skip"); err != nil {
		return 0, 0, err
	}
	return limit, skip, nil
}
