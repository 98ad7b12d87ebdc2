package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/jordanhw/honeywatch/internal/handlers"
	"github.com/jordanhw/honeywatch/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	analyticsHandler *handlers.AnalyticsHandler,
) {
	loginLimit := middleware.DefaultLoginRateLimit()
	ingestLimit := middleware.DefaultIngestRateLimit()

	router.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimitByIP(loginLimit)).Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ingestLimit))
			r.Post("/log/event", eventHandler.RecordEvent)
			r.Post("/log/batch", eventHandler.RecordBatch)
		})

		r.Get("/analytics/login-stats", analyticsHandler.LoginStats)
		r.Get("/analytics/ip-reputation/{address}", analyticsHandler.AddressReputation)
		r.Get("/export/all-logs", analyticsHandler.ExportAll)
	})
}
