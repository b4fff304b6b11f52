package services

import (
	"context"

	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/lacs/lacsapi/internal/server/repositories/repomanager"
	"github.com/lacs/lacsapi/internal/server/repositories/trabajadores"
)

// TrabajadorPage is one page of a worker listing.
type TrabajadorPage struct {
	Results []*models.Trabajador `json:"resultados"`
	Total   int64                `json:"total"`
	Limit   int                  `json:"limit"`
	Skip    int                  `json:"skip"`
	HasMore bool                 `json:"has_more"`
}

type TrabajadorService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewTrabajadorService(m repomanager.RepositoryManager, logger logging.Logger) *TrabajadorService {
	return &TrabajadorService{repomanager: m, logger: logger.With("module", "trabajadores")}
}

func (s *TrabajadorService) Create(ctx context.Context, t *models.Trabajador) (*models.Trabajador, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repomanager.Trabajadores().Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "trabajador created", "id", out.ID)
	return out, nil
}

func (s *TrabajadorService) Get(ctx context.Context, id string) (*models.Trabajador, error) {
	return s.repomanager.Trabajadores().Get(ctx, id)
}

// Update replaces the whole record and returns the stored version.
func (s *TrabajadorService) Update(ctx context.Context, id string, t *models.Trabajador) (*models.Trabajador, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	repo := s.repomanager.Trabajadores()
	if err := repo.Replace(ctx, id, t); err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// Delete is reserved to managers and supervisors.
func (s *TrabajadorService) Delete(ctx context.Context, caller *auth.Claims, id string) error {
	if err := auth.RequireAnyRole(caller, models.RoleSupervisor); err != nil {
		return err
	}
	if err := s.repomanager.Trabajadores().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "trabajador deleted", "id", id, "by", caller.Subject)
	return nil
}

func (s *TrabajadorService) List(ctx context.Context, f models.TrabajadorFilter, limit, skip int) (*TrabajadorPage, error) {
	limit = clamp(limit, trabajadores.DefaultListLimit, trabajadores.MaxListLimit)
	if skip < 0 {
		skip = 0
	}
	items, total, err := s.repomanager.Trabajadores().List(ctx, f, limit, skip)
	if err != nil {
		return nil, err
	}
	return &TrabajadorPage{
		Results: items,
		Total:   total,
		Limit:   limit,
		Skip:    skip,
		HasMore: int64(skip+limit) < total,
	}, nil
}

func clamp(v, def, hi int) int {
	switch {
	case v <= 0:
		return def
	case v > hi:
		return hi
	}
	return v
}
