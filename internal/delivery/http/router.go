package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swissrenewables/backend/internal/domain"
)

// HealthChecker is re-exported from domain for convenience
type HealthChecker = domain.HealthChecker

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, dashboard Dashboard, health HealthChecker) {
	handler := NewHandler(dashboard, health)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Dashboard page
	app.Get("/", handler.Index)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		maps := api.Group("/maps")
		maps.Get("/", handler.GetMapTypes)
		maps.Get("/choropleth", handler.GetChoropleth)

		api.Get("/aggregates/:metric", handler.GetAggregate)
		api.Get("/scatter", handler.GetScatter)
		api.Get("/dataset/preview", handler.GetPreview)
		api.Get("/geo/cantons", handler.GetGeometry)
	}
}
