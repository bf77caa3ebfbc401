package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/mentorhub/mentorhub/internal/auth"
	"github.com/mentorhub/mentorhub/internal/mentors"
	"github.com/mentorhub/mentorhub/internal/roles"
	"github.com/mentorhub/mentorhub/internal/transport/middleware"
	"github.com/mentorhub/mentorhub/internal/transport/swagger"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, rolesHandler *roles.Handler, mentorsHandler *mentors.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			if rolesHandler != nil {
				// Current user's resolved role
				pr.Get("/users/me/role", rolesHandler.GetMyRole)

				// Admin-only role management
				pr.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireRole(roles.RoleAdmin))
					ar.Get("/users/{id}/role", rolesHandler.GetUserRole)
					ar.Put("/users/{id}/role", rolesHandler.AssignUserRole)
					ar.Delete("/users/{id}/roles", rolesHandler.RemoveUserRoles)
					ar.Post("/admins", rolesHandler.CreateAdmin)
				})
			}

			// Mentor application review, admin only
			if mentorsHandler != nil {
				pr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireRole(roles.RoleAdmin))
					mr.Route("/mentors", func(er chi.Router) {
						er.Get("/", mentorsHandler.ListApplications)
						er.Patch("/{id}/approve", mentorsHandler.Approve)
						er.Patch("/{id}/reject", mentorsHandler.Reject)
						er.Patch("/{id}/request-changes", mentorsHandler.RequestChanges)
						er.Delete("/{id}", mentorsHandler.SoftDelete)
					})
				})
			}
		})
	})
}
