package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps groups what NewRouter needs.
type RouterDeps struct {
	Handler           *Handler
	Verifier          TokenVerifier
	LoginLimiter      *RateLimiter
	CORSAllowedOrigin string
	Metrics           *metrics.Collector
	// Gatherer backs /metrics; the route is omitted when nil.
	Gatherer prometheus.Gatherer
	Logger   logging.Logger
}

// NewRouter wires every route. Middleware order, outermost first:
//
//	RequestID → Logging → Recovery → SecurityHeaders → CORS
//
// Login routes add the per-client rate limiter; protected routes add the
// bearer token check.
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger.With("module", "http")
	h := deps.Handler

	r := chi.NewRouter()
	r.Use(NewRequestIDMiddleware())
	r.Use(NewLoggingMiddleware(logger, deps.Metrics))
	r.Use(NewRecoveryMiddleware(logger))
	r.Use(NewSecurityHeadersMiddleware())
	r.Use(NewCORSMiddleware(deps.CORSAllowedOrigin))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Detail: "method not allowed"})
	})

	authn := NewAuthMiddleware(deps.Verifier, logger)
	throttle := deps.LoginLimiter.Middleware()

	r.Get("/health", h.Health)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(throttle).Post("/login", h.UserLogin)
		r.With(throttle).Post("/admin-login", h.AdminLogin)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/create-first-admin", h.CreateFirstAdmin)
		r.With(throttle).Post("/create-user", h.AdminCreateUser)
		r.With(authn).Post("/generate-credentials", h.GenerateCredentials)
	})

	r.Route("/users", func(r chi.Router) {
		r.With(throttle).Post("/login", h.UserLogin)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/", h.CreateUser)
			r.Post("/change-password", h.ChangePassword)
			r.Post("/reset-password", h.ResetPassword)
			r.Post("/update-contact", h.UpdateContact)
			r.Get("/search", h.SearchUsers)
			r.Put("/{nickname}", h.UpdateUser)
			r.Delete("/{nickname}", h.DeleteUser)
		})
	})

	r.Route("/trabajadores", func(r chi.Router) {
		r.Use(authn)
		r.Post("/", h.CreateTrabajador)
		r.Get("/", h.ListTrabajadores)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTrabajador)
			r.Put("/", h.UpdateTrabajador)
			r.Delete("/", h.DeleteTrabajador)
		})
	})

	r.Route("/ubicaciones", func(r chi.Router) {
		r.Get("/status", h.LocationStatus)
		r.Get("/cp/{cp}", h.LocationByPostalCode)
		r.Get("/buscar/estado/{estado}", h.LocationsByState)
		r.Get("/debug/sample", h.LocationSample)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/load", h.LoadLocations)
			r.Post("/load-sync", h.LoadLocationsSync)
			r.Get("/debug/xml-sample", h.LocationXMLSample)
		})
	})

	return r
}
