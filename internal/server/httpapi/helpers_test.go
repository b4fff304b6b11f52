package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/metrics"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/lacs/lacsapi/internal/server/repositories/repomanager"
	"github.com/lacs/lacsapi/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testXML = `<?xml version="1.0" encoding="utf-8"?>
<NewDataSet xmlns="NewDataSet">
  <table>
    <d_codigo>20000</d_codigo>
    <d_asenta>Zona Centro</d_asenta>
    <D_mnpio>Aguascalientes</D_mnpio>
    <d_estado>Aguascalientes</d_estado>
  </table>
  <table>
    <d_codigo>01000</d_codigo>
    <d_asenta>San Ángel</d_asenta>
    <D_mnpio>Álvaro Obregón</D_mnpio>
    <d_estado>Ciudad de México</d_estado>
  </table>
</NewDataSet>`

type stringSource struct{ data string }

func (s stringSource) Open(context.Context) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader(s.data)), "test.xml", nil
}

type testEnv struct {
	router    http.Handler
	issuer    *auth.Issuer
	locations *services.LocationService
	registry  *prometheus.Registry
	limiter   *RateLimiter
}

func newTestEnv(t *testing.T, loginPerMinute int) *testEnv {
	t.Helper()

	m := repomanager.NewInMemoryRepositoryManager()
	keeper := auth.NewSecretKeeper(m.Secrets(), logging.Nop{})
	issuer := auth.NewIssuer(keeper, time.Hour)

	reg := prometheus.NewRegistry()
	mc := metrics.NewCollector(reg)

	us := services.NewUserService(m, issuer, mc, logging.Nop{})
	as := services.NewAdminService(m, us, issuer, mc, logging.Nop{})
	ts := services.NewTrabajadorService(m, logging.Nop{})
	ls := services.NewLocationService(m.Locations(), stringSource{data: testXML}, 0, mc, logging.Nop{})

	limiter := NewRateLimiter(loginPerMinute, time.Minute, logging.Nop{})
	t.Cleanup(limiter.Stop)

	router := NewRouter(&RouterDeps{
		Handler:           NewHandler(us, as, ts, ls, logging.Nop{}),
		Verifier:          issuer,
		LoginLimiter:      limiter,
		CORSAllowedOrigin: "http://localhost:3000",
		Metrics:           mc,
		Gatherer:          reg,
		Logger:            logging.Nop{},
	})

	return &testEnv{router: router, issuer: issuer, locations: ls, registry: reg, limiter: limiter}
}

func (e *testEnv) token(t *testing.T, nickname string, rol models.Role, kind auth.Kind) string {
	t.Helper()
	tok, err := e.issuer.Issue(context.Background(), auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: nickname},
		Rol:              rol,
		Tipo:             kind,
	})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) adminToken(t *testing.T) string {
	return e.token(t, "ROOT", models.RoleAdministrador, auth.KindAdmin)
}

func (e *testEnv) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.RemoteAddr = "192.0.2.10:40000"
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) form(path string, values url.Values, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, token)
}

func (e *testEnv) sendJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req, token)
}

func (e *testEnv) get(path, token string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil), token)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorBody](t, rec).Detail
}
