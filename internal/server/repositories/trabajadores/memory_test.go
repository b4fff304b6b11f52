package trabajadores

import (
	"context"
	"testing"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CRUD(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	created, err := r.Create(ctx, &models.Trabajador{Nombre: "Luis", ApellidoPaterno: "Mora"})
	require.NoError(t, err)
	require.Len(t, created.ID, 24)

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luis", got.Nombre)

	require.NoError(t, r.Replace(ctx, created.ID, &models.Trabajador{Nombre: "Luis Alberto", ApellidoPaterno: "Mora"}))
	got, _ = r.Get(ctx, created.ID)
	assert.Equal(t, "Luis Alberto", got.Nombre)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, r.Delete(ctx, created.ID))
	_, err = r.Get(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, r.Delete(ctx, created.ID), common.ErrorNotFound)
}

func TestMemoryRepository_MalformedID(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_, err := r.Get(ctx, "123")
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.ErrorIs(t, r.Replace(ctx, "zz", &models.Trabajador{}), common.ErrorValidation)
	assert.ErrorIs(t, r.Delete(ctx, ""), common.ErrorValidation)
}

func TestMemoryRepository_List(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	for _, w := range []models.Trabajador{
		{Nombre: "Ana", ApellidoPaterno: "Zamora", Sexo: models.SexoFemenino, Puesto: "Chofer", Nacionalidad: "Mexicana"},
		{Nombre: "Beto", ApellidoPaterno: "Alvarez", Sexo: models.SexoMasculino, Puesto: "Chofer de reparto", Nacionalidad: "Mexicana"},
		{Nombre: "Carla", ApellidoPaterno: "Alvarez", Sexo: models.SexoFemenino, Puesto: "Contadora", Nacionalidad: "Mexicana"},
		{Nombre: "Dan", ApellidoPaterno: "Brown", Sexo: models.SexoMasculino, Puesto: "Chofer", Nacionalidad: "Estadounidense"},
	} {
		w := w
		_, err := r.Create(ctx, &w)
		require.NoError(t, err)
	}

	got, total, err := r.List(ctx, models.TrabajadorFilter{}, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"Beto", "Carla", "Dan", "Ana"}, names(got))

	got, total, _ = r.List(ctx, models.TrabajadorFilter{Puesto: "CHOFER", Nacionalidad: "Mexicana"}, 0, 0)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"Beto", "Ana"}, names(got))

	got, total, _ = r.List(ctx, models.TrabajadorFilter{Sexo: models.SexoFemenino}, 1, 1)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"Ana"}, names(got))

	got, total, _ = r.List(ctx, models.TrabajadorFilter{}, 10, 10)
	assert.EqualValues(t, 4, total)
	assert.Empty(t, got)
}

func names(ts []*models.Trabajador) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Nombre)
	}
	return out
}
