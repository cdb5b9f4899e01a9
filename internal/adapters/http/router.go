// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/clubstate/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/clubstate/internal/adapters/http/middleware"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. The state-changing
// routes additionally require an X-Caller identity.
//
// queryTimeout bounds the read-only routes; zero disables it. Commands are
// never put under a deadline: a command runs to completion once it reaches
// the store, and its response reports what actually happened.
func NewRouter(
	clubHandler *handlers.ClubHandler,
	healthHandler *handlers.HealthHandler,
	queryTimeout time.Duration,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1/club", func(r chi.Router) {
		// Commands.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Caller())
			r.Post("/", clubHandler.Instantiate)
			r.Post("/execute", clubHandler.Execute)
		})

		// Queries.
		r.Group(func(r chi.Router) {
			if queryTimeout > 0 {
				r.Use(middleware.Timeout(queryTimeout))
			}
			r.Post("/query", clubHandler.Query)
			r.Get("/count", clubHandler.GetCount)
			r.Get("/x-factor", clubHandler.GetXFactor)
			r.Get("/members-only-count", clubHandler.GetMembersOnlyCount)
			r.Get("/members", clubHandler.GetMemberList)
			r.Get("/waiting-list", clubHandler.GetWaitingList)
		})
	})

	return r
}
