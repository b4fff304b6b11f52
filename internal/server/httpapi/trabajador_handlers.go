package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lacs/lacsapi/internal/server/models"
)

func (h *Handler) CreateTrabajador(w http.ResponseWriter, r *http.Request) {
	var t models.Trabajador
	if err := decodeJSON(w, r, &t); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.trabajadores.Create(r.Context(), &t)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handler) GetTrabajador(w http.ResponseWriter, r *http.Request) {
	out, err := h.trabajadores.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateTrabajador(w http.ResponseWriter, r *http.Request) {
	var t models.Trabajador
	if err := decodeJSON(w, r, &t); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.trabajadores.Update(r.Context(), chi.URLParam(r, "id"), &t)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) DeleteTrabajador(w http.ResponseWriter, r *http.Request) {
	if err := h.trabajadores.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListTrabajadores(w http.ResponseWriter, r *http.Request) {
	limit, skip, err := pageQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	f := models.TrabajadorFilter{
		Nombre:          q.Get("nombre"),
		ApellidoPaterno: q.Get("apellido_paterno"),
		ApellidoMaterno: q.Get("apellido_materno"),
		Puesto:          q.Get("puesto"),
		EmpresaPagadora: q.Get("empresa_pagadora"),
		Sexo:            models.Sexo(q.Get("sexo")),
		TipoContrato:    models.TipoContrato(q.Get("tipo_contrato")),
		EstadoCivil:     models.EstadoCivil(q.Get("estado_civil")),
		Nacionalidad:    q.Get("nacionalidad"),
	}
	page, err := h.trabajadores.List(r.Context(), f, limit, skip)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
