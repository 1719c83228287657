package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-analytics/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Analytics *handlers.AnalyticsHandler
	Tickets   *handlers.TicketsHandler
	Dataset   *handlers.DatasetHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	analyticsGroup := api.Group("/analytics")
	analyticsGroup.Get("/kpis", cfg.Analytics.KPIs)
	analyticsGroup.Get("/satisfaction", cfg.Analytics.Satisfaction)
	analyticsGroup.Get("/resolution", cfg.Analytics.Resolution)
	analyticsGroup.Get("/volume", cfg.Analytics.Volume)

	api.Get("/filters/options", cfg.Analytics.FilterOptions)

	api.Get("/tickets", cfg.Tickets.List)
	api.Get("/tickets/export", cfg.Tickets.Export)

	api.Post("/dataset/reload", cfg.Dataset.Reload)
}
