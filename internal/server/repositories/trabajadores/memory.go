package trabajadores

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/dbx"
	"github.com/lacs/lacsapi/internal/server/models"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]models.Trabajador
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Trabajador)}
}

func (r *MemoryRepository) Create(_ context.Context, t *models.Trabajador) (*models.Trabajador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := *t
	rec.ID = dbx.NewID()
	r.byID[rec.ID] = rec

	out := rec
	return &out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Trabajador, error) {
	if _, err := dbx.ParseID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rec, nil
}

func (r *MemoryRepository) Replace(_ context.Context, id string, t *models.Trabajador) error {
	if _, err := dbx.ParseID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	rec := *t
	rec.ID = id
	r.byID[id] = rec
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	if _, err := dbx.ParseID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepository) List(_ context.Context, f models.TrabajadorFilter, limit, skip int) ([]*models.Trabajador, int64, error) {
	r.mu.RLock()
	matched := make([]*models.Trabajador, 0)
	for _, rec := range r.byID {
		if matches(rec, f) {
			rec := rec
			matched = append(matched, &rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].ApellidoPaterno != matched[j].ApellidoPaterno {
			return matched[i].ApellidoPaterno < matched[j].ApellidoPaterno
		}
		return matched[i].Nombre < matched[j].Nombre
	})

	total := int64(len(matched))
	skip = max(skip, 0)
	if skip >= len(matched) {
		return []*models.Trabajador{}, total, nil
	}
	end := min(skip+clampLimit(limit), len(matched))
	return matched[skip:end], total, nil
}

func matches(t models.Trabajador, f models.TrabajadorFilter) bool {
	contains := func(s, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	equals := func(s, want string) bool {
		return want == "" || s == want
	}
	return contains(t.Nombre, f.Nombre) &&
		contains(t.ApellidoPaterno, f.ApellidoPaterno) &&
		contains(t.ApellidoMaterno, f.ApellidoMaterno) &&
		contains(t.Puesto, f.Puesto) &&
		contains(t.EmpresaPagadora, f.EmpresaPagadora) &&
		equals(string(t.Sexo), string(f.Sexo)) &&
		equals(string(t.TipoContrato), string(f.TipoContrato)) &&
		equals(string(t.EstadoCivil), string(f.EstadoCivil)) &&
		equals(t.Nacionalidad, f.Nacionalidad)
}
