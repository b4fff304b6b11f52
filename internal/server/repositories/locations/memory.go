package locations

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/models"
)

// MemoryRepository keeps records in insertion order and enforces the
// unique postal-code constraint the document store index provides.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Location
	byCP  map[string]int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byCP: make(map[string]int)}
}

func (r *MemoryRepository) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *MemoryRepository) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	r.byCP = make(map[string]int)
	return nil
}

func (r *MemoryRepository) InsertBatch(_ context.Context, batch []models.Location) (BatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result BatchResult
	for i, loc := range batch {
		if _, dup := r.byCP[loc.CodigoPostal]; dup {
			result.Failed = append(result.Failed, FailedItem{
				Index:        i,
				CodigoPostal: loc.CodigoPostal,
				Message:      fmt.Sprintf("duplicate key codigo_postal %q", loc.CodigoPostal),
			})
			continue
		}
		r.byCP[loc.CodigoPostal] = len(r.items)
		r.items = append(r.items, loc)
		result.Inserted++
	}
	return result, nil
}

func (r *MemoryRepository) EnsureIndexes(context.Context) error { return nil }

func (r *MemoryRepository) CountSettlements(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, l := range r.items {
		n += int64(len(l.Asentamientos))
	}
	return n, nil
}

func (r *MemoryRepository) FindByPostalCode(_ context.Context, cp string) (*models.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byCP[cp]
	if !ok {
		return nil, common.ErrorNotFound
	}
	loc := r.items[i]
	return &loc, nil
}

func (r *MemoryRepository) FindByState(_ context.Context, estado string, limit, skip int) ([]models.Location, int64, error) {
	r.mu.RLock()
	needle := strings.ToLower(estado)
	matched := make([]models.Location, 0)
	for _, l := range r.items {
		if strings.Contains(strings.ToLower(l.Estado), needle) {
			matched = append(matched, l)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CodigoPostal < matched[j].CodigoPostal })

	total := int64(len(matched))
	if skip >= len(matched) {
		return []models.Location{}, total, nil
	}
	end := min(skip+limit, len(matched))
	return matched[skip:end], total, nil
}

func (r *MemoryRepository) Sample(_ context.Context, limit int) ([]models.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := min(limit, len(r.items))
	out := make([]models.Location, 0, n)
	for _, l := range r.items[:n] {
		out = append(out, models.Location{CodigoPostal: l.CodigoPostal, Municipio: l.Municipio, Estado: l.Estado})
	}
	return out, nil
}
