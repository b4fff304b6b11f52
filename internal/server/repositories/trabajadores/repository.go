// Package trabajadores stores employee records.
package trabajadores

import (
	"context"

	"github.com/lacs/lacsapi/internal/server/models"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Repository identifies workers by 24-hex ids; malformed ids yield
// common.ErrorValidation and unknown ones common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, t *models.Trabajador) (*models.Trabajador, error)
	Get(ctx context.Context, id string) (*models.Trabajador, error)
	Replace(ctx context.Context, id string, t *models.Trabajador) error
	Delete(ctx context.Context, id string) error
	// List returns one page ordered by apellido_paterno, nombre together
	// with the number of matching records.
	List(ctx context.Context, f models.TrabajadorFilter, limit, skip int) ([]*models.Trabajador, int64, error)
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
