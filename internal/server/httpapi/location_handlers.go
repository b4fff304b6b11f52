package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/services"
)

func (h *Handler) LocationStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.locations.Status(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// forceReload reads force_reload, accepting force as a shorter alias.
func forceReload(r *http.Request) (bool, error) {
	if r.URL.Query().Has("force_reload") {
		return boolQuery(r, "force_reload")
	}
	return boolQuery(r, "force")
}

// LoadLocations starts a background import and answers 202, or 200 when
// the catalogue is already loaded and force_reload is not set.
func (h *Handler) LoadLocations(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireManager(caller(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	force, err := forceReload(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	report, err := h.locations.Load(r.Context(), force)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	status := http.StatusAccepted
	if report.Status != services.LoadStatusStarted {
		status = http.StatusOK
	}
	writeJSON(w, status, report)
}

func (h *Handler) LoadLocationsSync(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireManager(caller(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	force, err := forceReload(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	report, err := h.locations.LoadSync(r.Context(), force)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) LocationByPostalCode(w http.ResponseWriter, r *http.Request) {
	loc, err := h.locations.ByPostalCode(r.Context(), chi.URLParam(r, "cp"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (h *Handler) LocationsByState(w http.ResponseWriter, r *http.Request) {
	limit, skip, err := pageQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.locations.ByState(r.Context(), chi.URLParam(r, "estado"), limit, skip)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) LocationSample(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.locations.Sample(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) LocationXMLSample(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireManager(caller(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	n, err := intQuery(r, "limit")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.locations.XMLSample(r.Context(), n)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
