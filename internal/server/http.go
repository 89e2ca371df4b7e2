// Package server assembles the HTTP router from its dependencies.
package server

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"user-registry/internal/audit"
	auditrepo "user-registry/internal/audit/repository"
	"user-registry/internal/config"
	healthhandler "user-registry/internal/health/handler"
	"user-registry/internal/server/middleware"
	telemetry "user-registry/internal/telemetry/otel"
	userhandler "user-registry/internal/user/handler"
	userrepo "user-registry/internal/user/repository"
	userservice "user-registry/internal/user/service"
)

// Deps holds the dependencies for the HTTP router.
type Deps struct {
	// UserRepo is the user persistence store. Required.
	UserRepo userrepo.Repository
	// AuditRepo is the audit trail store. If nil, no audit events are written.
	AuditRepo auditrepo.Repository
	// Pinger is used by /health for store readiness (e.g. *sql.DB). If nil, the DB check is skipped.
	Pinger healthhandler.Pinger
	// Providers carries the telemetry providers. If nil, requests are not instrumented.
	Providers *telemetry.Providers
	// ShapePolicy is the payload-shape check for user creation.
	ShapePolicy config.ShapePolicy
	// ListLimit caps the list endpoint.
	ListLimit int
}

// NewRouter builds the router with the standard middleware chain and all routes.
//
// Route → handler mapping:
//   - GET  /health        → internal/health/handler
//   - GET  /users         → internal/user/handler
//   - GET  /users/{id}    → internal/user/handler
//   - GET  /users/search  → internal/user/handler
//   - POST /users         → internal/user/handler
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Use(middleware.Telemetry(deps.Providers, map[string]bool{"/health": true}))

	r.Get("/health", healthhandler.NewHandler(deps.Pinger).Health)

	svc := userservice.New(deps.UserRepo, deps.ShapePolicy, deps.ListLimit)
	userhandler.NewHandler(svc, audit.NewLogger(deps.AuditRepo)).Routes(r)

	return r
}
