package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/directory"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"github.com/frahmantamala/attendance-management/internal/notification"
	"github.com/frahmantamala/attendance-management/internal/transport/middleware"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *directory.Handler, attendanceHandler *attendance.Handler, leaveHandler *leave.Handler, notificationHandler *notification.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggingMiddleware(logger))

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
				sr.Post("/refresh", authHandler.Refresh)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// Current user
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
				}

				// Attendance routes
				if attendanceHandler != nil {
					pr.Route("/attendance", func(ar chi.Router) {
						ar.Post("/check-in", attendanceHandler.CheckIn)
						ar.Post("/check-out", attendanceHandler.CheckOut)
						ar.Get("/", attendanceHandler.Ledger)

						// Correction routes guarded by the policy table
						ar.Group(func(mr chi.Router) {
							mr.Use(authHandler.RequireCapability(auth.CapEditAttendance))
							mr.Patch("/{id}", attendanceHandler.ManualEdit)
						})

						ar.Group(func(mr chi.Router) {
							mr.Use(authHandler.RequireCapability(auth.CapDeleteAttendance))
							mr.Delete("/{id}", attendanceHandler.Delete)
						})
					})
				}

				// Leave routes
				if leaveHandler != nil {
					pr.Route("/leaves", func(lr chi.Router) {
						lr.Post("/", leaveHandler.Submit)
						lr.Get("/", leaveHandler.Ledger)
						lr.Delete("/{id}", leaveHandler.Withdraw)

						lr.Group(func(mr chi.Router) {
							mr.Use(authHandler.RequireCapability(auth.CapDecideLeave))
							mr.Patch("/{id}/approve", leaveHandler.Approve)
							mr.Patch("/{id}/reject", leaveHandler.Reject)
						})
					})
				}

				// Notification routes
				if notificationHandler != nil {
					pr.Route("/notifications", func(nr chi.Router) {
						nr.Get("/", notificationHandler.List)
						nr.Post("/read", notificationHandler.MarkRead)
					})
				}
			})
		}
	})
}
