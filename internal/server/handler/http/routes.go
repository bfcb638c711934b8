package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/avaolo/gatekeeper/internal/auth"
	"github.com/avaolo/gatekeeper/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter constructs and returns an HTTP handler that serves the
// gatekeeper API. Every request passes CORS handling, request logging,
// and Basic authentication before reaching a route; the path classifier
// decides which paths skip the auth check.
//
// Routes:
//
//	GET  /health                     → liveness probe (public)
//	GET  /api/deployment/provenance  → raw provenance snapshot (public)
//	GET  /api/deployment/audit       → computed audit report (public)
//	GET  /api/deployment/verify      → compact verification summary (public)
//	GET  /api/v1/fields              → list the caller's fields
//	POST /api/v1/fields              → register a new field (JSON body)
//	GET  /api/v1/fields/{id}         → fetch one field by id
func NewRouter(
	fieldHandler *FieldHandler,
	deploymentHandler *DeploymentHandler,
	creds *auth.Credentials,
	public *auth.PublicPaths,
	realm string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Gate every route behind Basic auth, except the public prefixes
	r.Use(middleware.BasicAuth(creds, public, realm))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// Read-only deployment audit endpoints
		r.Route("/deployment", func(r chi.Router) {
			r.Get("/provenance", deploymentHandler.Provenance)
			r.Get("/audit", deploymentHandler.Audit)
			r.Get("/verify", deploymentHandler.Verify)
		})

		// Protected CRM slice
		r.Route("/v1/fields", func(r chi.Router) {
			r.Get("/", fieldHandler.List)
			r.Get("/{id}", fieldHandler.Get)
			r.With(chiMiddleware.AllowContentType("application/json")).
				Post("/", fieldHandler.Create)
		})
	})

	return r
}
