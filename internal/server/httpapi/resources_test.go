package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/lacs/lacsapi/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrabajador() models.Trabajador {
	return models.Trabajador{
		Nombre:          "Luis",
		ApellidoPaterno: "Mora",
		RFC:             "MOLL800101AB1",
		CURP:            "MOLL800101HDFRSS09",
		EstadoCivil:     models.EstadoCivilCasado,
		Sexo:            models.SexoMasculino,
		TipoContrato:    models.ContratoDeterminado,
		FormatoPago:     models.PagoSemanal,
	}
}

func TestTrabajadores_CRUD(t *testing.T) {
	env := newTestEnv(t, 0)
	op := env.token(t, "op", models.RoleOperador, auth.KindUser)

	rec := env.sendJSON(http.MethodPost, "/trabajadores", sampleTrabajador(), op)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Trabajador](t, rec)
	require.Len(t, created.ID, 24)

	rec = env.get("/trabajadores/"+created.ID, op)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Luis", decode[models.Trabajador](t, rec).Nombre)

	upd := sampleTrabajador()
	upd.Puesto = "Chofer"
	rec = env.sendJSON(http.MethodPut, "/trabajadores/"+created.ID, upd, op)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Chofer", decode[models.Trabajador](t, rec).Puesto)

	rec = env.get("/trabajadores?puesto=chof&limit=10", op)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[services.TrabajadorPage](t, rec)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 10, page.Limit)

	rec = env.do(httptest.NewRequest(http.MethodDelete, "/trabajadores/"+created.ID, nil), op)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodDelete, "/trabajadores/"+created.ID, nil),
		env.token(t, "sup", models.RoleSupervisor, auth.KindUser))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, env.get("/trabajadores/"+created.ID, op).Code)
}

func TestTrabajadores_BadInput(t *testing.T) {
	env := newTestEnv(t, 0)
	op := env.token(t, "op", models.RoleOperador, auth.KindUser)

	assert.Equal(t, http.StatusBadRequest, env.get("/trabajadores/xyz", op).Code)
	assert.Equal(t, http.StatusBadRequest, env.get("/trabajadores?limit=many", op).Code)

	bad := sampleTrabajador()
	bad.FormatoPago = "Mensual"
	rec := env.sendJSON(http.MethodPost, "/trabajadores", bad, op)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, detail(t, rec), "formato_pago")

	rec = env.sendJSON(http.MethodPost, "/trabajadores", nil, op)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, detail(t, rec), "empty")
}

func TestUbicaciones_LoadAndQuery(t *testing.T) {
	env := newTestEnv(t, 0)
	admin := env.adminToken(t)

	rec := env.get("/ubicaciones/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.StateEmpty, decode[services.LocationStatus](t, rec).Status)

	rec = env.get("/ubicaciones/cp/20000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, detail(t, rec), "no locations loaded")

	assert.Equal(t, http.StatusUnauthorized, env.do(httptest.NewRequest(http.MethodPost, "/ubicaciones/load-sync", nil), "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(httptest.NewRequest(http.MethodPost, "/ubicaciones/load-sync", nil),
		env.token(t, "op", models.RoleOperador, auth.KindUser)).Code)

	rec = env.do(httptest.NewRequest(http.MethodPost, "/ubicaciones/load-sync", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[services.LoadReport](t, rec)
	assert.EqualValues(t, 2, report.TotalCodigosPostales)
	assert.Equal(t, "test.xml", report.Source)

	rec = env.do(httptest.NewRequest(http.MethodPost, "/ubicaciones/load", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.LoadStatusAlreadyLoaded, decode[services.LoadReport](t, rec).Status)

	rec = env.do(httptest.NewRequest(http.MethodPost, "/ubicaciones/load-sync?force_reload=true", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, services.LoadStatusLoaded, decode[services.LoadReport](t, rec).Status)

	rec = env.do(httptest.NewRequest(http.MethodPost, "/ubicaciones/load?force_reload=true", nil), admin)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Equal(t, services.LoadStatusStarted, decode[services.LoadReport](t, rec).Status)
	env.locations.Wait()

	rec = env.get("/ubicaciones/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[services.LocationStatus](t, rec)
	assert.Equal(t, services.StateLoaded, st.Status)
	assert.True(t, st.Loaded)
	assert.Equal(t, "2 postal codes loaded", st.Message)
	assert.EqualValues(t, 2, st.TotalCodigosPostales)

	rec = env.get("/ubicaciones/cp/1000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "01000", decode[models.Location](t, rec).CodigoPostal)
	assert.NotContains(t, rec.Body.String(), `"id"`)

	assert.Equal(t, http.StatusNotFound, env.get("/ubicaciones/cp/99999", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.get("/ubicaciones/cp/123456", "").Code)

	rec = env.get("/ubicaciones/buscar/estado/aguas?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Len(t, body["ubicaciones"], 1)
	assert.EqualValues(t, 1, body["total"])
	assert.Equal(t, false, body["has_more"])

	rec = env.get("/ubicaciones/debug/sample", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "asentamientos")
	sample := decode[map[string]any](t, rec)
	assert.Len(t, sample["sample_codigos_postales"], 2)
	assert.EqualValues(t, 2, sample["total_count"])

	assert.Equal(t, http.StatusUnauthorized, env.get("/ubicaciones/debug/xml-sample", "").Code)
	rec = env.get("/ubicaciones/debug/xml-sample?limit=1", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	xs := decode[services.XMLSample](t, rec)
	assert.Equal(t, 2, xs.TotalTables)
	assert.Len(t, xs.Samples, 1)
}

func TestUbicaciones_ForceReloadQuery(t *testing.T) {
	env := newTestEnv(t, 0)
	admin := env.adminToken(t)

	for _, q := range []string{"force_reload=maybe", "force=maybe"} {
		rec := env.do(httptest.NewRequest(http.MethodPost, "/ubicaciones/load-sync?"+q, nil), admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	rec := env.do(httptest.NewRequest(http.MethodPost, "/ubicaciones/load-sync", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		query string
		want  string
	}{
		{"", services.LoadStatusAlreadyLoaded},
		{"?force_reload=false", services.LoadStatusAlreadyLoaded},
		{"?force_reload=true", services.LoadStatusLoaded},
		{"?force=true", services.LoadStatusLoaded},
		{"?force_reload=false&force=true", services.LoadStatusAlreadyLoaded},
	}
	for _, tt := range tests {
		rec := env.do(httptest.NewRequest(http.MethodPost, "/ubicaciones/load-sync"+tt.query, nil), admin)
		require.Equal(t, http.StatusOK, rec.Code, tt.query)
		assert.Equal(t, tt.want, decode[services.LoadReport](t, rec).Status, tt.query)
	}
}
