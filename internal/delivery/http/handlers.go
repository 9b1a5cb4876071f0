package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/swissrenewables/backend/internal/delivery/http/views"
	"github.com/swissrenewables/backend/internal/domain"
	"github.com/swissrenewables/backend/internal/pkg/logger"
	"github.com/swissrenewables/backend/internal/service"
)

// DataSourceURL is the origin of the plant dataset shown on the dashboard
const DataSourceURL = "https://open-power-system-data.org/"

// Dashboard is the pipeline surface the handlers depend on
type Dashboard interface {
	MetricNames() []string
	Aggregate(ctx context.Context, metric domain.Metric) (domain.CantonAggregate, error)
	Preview(ctx context.Context, rows int) (domain.DatasetPreview, error)
	Choropleth(ctx context.Context, metricName string) (domain.ChoroplethData, error)
	Scatter(ctx context.Context) (domain.ScatterData, error)
	Geometry(ctx context.Context) (*domain.RegionGeometry, error)
}

// Handler contains all HTTP handlers
type Handler struct {
	dashboard Dashboard
	health    domain.HealthChecker
}

// NewHandler creates a new handler. health may be nil when the data source
// has no remote dependency.
func NewHandler(dashboard Dashboard, health domain.HealthChecker) *Handler {
	return &Handler{
		dashboard: dashboard,
		health:    health,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	if h.health != nil {
		if err := h.health.Health(c.UserContext()); err != nil {
			logger.Errorf(c.UserContext(), "health: %s", err.Error())
			status = "degraded"
		}
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": "swissrenewables-backend",
		"version": "1.0.0",
	})
}

// Index renders the dashboard page
func (h *Handler) Index(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return views.RenderDashboard(c, &views.DashboardPage{
		Title:         "Renewable Power Plants in Switzerland",
		Header:        "Electrical capacity | Production | Tariff by cantons",
		DataSourceURL: DataSourceURL,
		MapTypes:      h.dashboard.MetricNames(),
	})
}

// GetMapTypes returns the map selector entries
func (h *Handler) GetMapTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.dashboard.MetricNames(),
	})
}

// GetChoropleth returns the map payload for the selected map type
func (h *Handler) GetChoropleth(c *fiber.Ctx) error {
	metricName := c.Query("metric")
	if metricName == "" {
		metricName = h.dashboard.MetricNames()[0]
	}

	data, err := h.dashboard.Choropleth(c.UserContext(), metricName)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// GetAggregate returns per-canton sums of one metric column
func (h *Handler) GetAggregate(c *fiber.Ctx) error {
	metric, err := domain.ParseMetric(c.Params("metric"))
	if err != nil {
		return err
	}

	agg, err := h.dashboard.Aggregate(c.UserContext(), metric)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    agg,
		"count":   len(agg.Values),
	})
}

// GetScatter returns the production vs tariff plot
func (h *Handler) GetScatter(c *fiber.Ctx) error {
	data, err := h.dashboard.Scatter(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// GetPreview returns the head of the plant dataset
func (h *Handler) GetPreview(c *fiber.Ctx) error {
	rows := c.QueryInt("rows", 0)
	if rows < 0 || rows > service.MaxPreviewRows {
		rows = 0
	}

	data, err := h.dashboard.Preview(c.UserContext(), rows)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// GetGeometry returns the canton boundary GeoJSON
func (h *Handler) GetGeometry(c *fiber.Ctx) error {
	geo, err := h.dashboard.Geometry(c.UserContext())
	if errors.Is(err, service.ErrGeometryDisabled) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(geo.Raw)
}
