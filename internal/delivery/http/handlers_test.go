package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/swissrenewables/backend/internal/delivery/http/views"
	"github.com/swissrenewables/backend/internal/domain"
	"github.com/swissrenewables/backend/internal/pkg/logger"
	"github.com/swissrenewables/backend/internal/repository"
	"github.com/swissrenewables/backend/internal/repository/geojson"
	"github.com/swissrenewables/backend/internal/repository/memory"
	"github.com/swissrenewables/backend/internal/service"
)

const testShapes = `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"kan_name":"Valais"},"geometry":null}]}`

type stubHealth struct{ err error }

func (s stubHealth) Health(context.Context) error { return s.err }

func newTestApp(t *testing.T, dataKey, geoKey string, health HealthChecker) *fiber.App {
	t.Helper()
	require.NoError(t, views.LoadTemplates())

	geometry := repository.NewMemo(func(_ context.Context, key string) (*domain.RegionGeometry, error) {
		return geojson.Parse(key, []byte(testShapes))
	})
	dashboard := service.NewDashboardService(
		repository.NewLoader(memory.NewDemoSource()),
		geometry,
		service.DashboardConfig{DataKey: dataKey, GeoKey: geoKey},
	)

	app := NewApp(AppConfig{})
	SetupRoutes(app, dashboard, health)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func getJSON(t *testing.T, app *fiber.App, target string) (int, envelope) {
	t.Helper()
	code, body := get(t, app, target)
	var env envelope
	require.NoError(t, sonic.Unmarshal(body, &env), string(body))
	return code, env
}

func TestHealthCheck(t *testing.T) {
	t.Run("should report ok", func(t *testing.T) {
		app := newTestApp(t, memory.DemoKey, "", nil)
		code, body := get(t, app, "/health")
		assert.Equal(t, fiber.StatusOK, code)
		assert.Contains(t, string(body), `"status":"ok"`)
	})

	t.Run("should check the demo source", func(t *testing.T) {
		app := newTestApp(t, memory.DemoKey, "", memory.NewDemoSource())
		code, _ := get(t, app, "/health")
		assert.Equal(t, fiber.StatusOK, code)
	})

	t.Run("should report a degraded store", func(t *testing.T) {
		app := newTestApp(t, memory.DemoKey, "", stubHealth{err: errors.New("connection refused")})
		code, body := get(t, app, "/health")
		assert.Equal(t, fiber.StatusServiceUnavailable, code)
		assert.Contains(t, string(body), `"status":"degraded"`)
	})
}

func TestIndex(t *testing.T) {
	app := newTestApp(t, memory.DemoKey, "", nil)

	code, body := get(t, app, "/")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(body), "Renewable Power Plants in Switzerland")
	assert.Contains(t, string(body), "Installed Electrical Capacity")
	assert.Contains(t, string(body), DataSourceURL)
}

func TestGetMapTypes(t *testing.T) {
	app := newTestApp(t, memory.DemoKey, "", nil)

	code, env := getJSON(t, app, "/api/v1/maps")
	require.Equal(t, fiber.StatusOK, code)

	var names []string
	require.NoError(t, sonic.Unmarshal(env.Data, &names))
	assert.Equal(t, service.MetricNames(), names)
}

func TestGetChoropleth(t *testing.T) {
	app := newTestApp(t, memory.DemoKey, "cantons.geojson", nil)

	t.Run("should default to installed capacity", func(t *testing.T) {
		code, env := getJSON(t, app, "/api/v1/maps/choropleth")
		require.Equal(t, fiber.StatusOK, code)

		var data domain.ChoroplethData
		require.NoError(t, sonic.Unmarshal(env.Data, &data))
		assert.Equal(t, domain.MapInstalledCapacity, data.View.MetricName)
		assert.Equal(t, "Electric", data.View.ColorScale)
		assert.Contains(t, data.Locations, "Valais")
		assert.NotContains(t, data.Unmatched, "Valais")
		assert.Contains(t, data.Unmatched, "Zürich")
	})

	t.Run("should accept a selector entry", func(t *testing.T) {
		code, env := getJSON(t, app, "/api/v1/maps/choropleth?metric=Yearly%20Production")
		require.Equal(t, fiber.StatusOK, code)

		var data domain.ChoroplethData
		require.NoError(t, sonic.Unmarshal(env.Data, &data))
		assert.Equal(t, domain.MetricProduction, data.View.ColorField)
	})

	t.Run("should reject an unknown map type", func(t *testing.T) {
		code, env := getJSON(t, app, "/api/v1/maps/choropleth?metric=Bogus")
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.True(t, env.Error)
		assert.Contains(t, env.Message, "Bogus")
	})
}

func TestGetAggregate(t *testing.T) {
	app := newTestApp(t, memory.DemoKey, "", nil)

	t.Run("should sum by canton", func(t *testing.T) {
		code, env := getJSON(t, app, "/api/v1/aggregates/electrical_capacity")
		require.Equal(t, fiber.StatusOK, code)

		var agg domain.CantonAggregate
		require.NoError(t, sonic.Unmarshal(env.Data, &agg))
		assert.Equal(t, 7, env.Count)
		assert.InDelta(t, 2.0, agg.Values["Zürich"], 1e-9)
	})

	t.Run("should reject an unknown metric", func(t *testing.T) {
		code, env := getJSON(t, app, "/api/v1/aggregates/capacity_factor")
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.True(t, env.Error)
	})
}

func TestGetScatter(t *testing.T) {
	app := newTestApp(t, memory.DemoKey, "", nil)

	code, env := getJSON(t, app, "/api/v1/scatter")
	require.Equal(t, fiber.StatusOK, code)

	var data domain.ScatterData
	require.NoError(t, sonic.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Traces)
	assert.Equal(t, "Valais", data.Traces[0].Name)
}

func TestGetPreview(t *testing.T) {
	app := newTestApp(t, memory.DemoKey, "", nil)

	tests := []struct {
		target string
		want   int
	}{
		{target: "/api/v1/dataset/preview", want: service.DefaultPreviewRows},
		{target: "/api/v1/dataset/preview?rows=2", want: 2},
		{target: "/api/v1/dataset/preview?rows=1000", want: service.DefaultPreviewRows},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			code, env := getJSON(t, app, tt.target)
			require.Equal(t, fiber.StatusOK, code)

			var data domain.DatasetPreview
			require.NoError(t, sonic.Unmarshal(env.Data, &data))
			assert.Len(t, data.Rows, tt.want)
			assert.Equal(t, 8, data.TotalRows)
			assert.Equal(t, "canton_name", data.Columns[len(data.Columns)-1])
		})
	}
}

func TestGetGeometry(t *testing.T) {
	t.Run("should be absent when disabled", func(t *testing.T) {
		app := newTestApp(t, memory.DemoKey, "", nil)
		code, _ := get(t, app, "/api/v1/geo/cantons")
		assert.Equal(t, fiber.StatusNotFound, code)
	})

	t.Run("should serve the raw document", func(t *testing.T) {
		app := newTestApp(t, memory.DemoKey, "cantons.geojson", nil)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/geo/cantons", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "application/geo+json"))
		assert.Equal(t, testShapes, string(body))
	})
}

func TestDataSourceUnavailable(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	app := newTestApp(t, "missing.csv", "", nil)

	for _, target := range []string{"/api/v1/maps/choropleth", "/api/v1/aggregates/tariff", "/api/v1/scatter", "/api/v1/dataset/preview"} {
		code, env := getJSON(t, app, target)
		assert.Equal(t, fiber.StatusServiceUnavailable, code, target)
		assert.Equal(t, "Plant data is unavailable", env.Message)
		assert.NotContains(t, env.Message, os.ErrNotExist.Error())
	}

	entries := logs.FilterMessage("plant data unavailable").All()
	require.Len(t, entries, 4)
	assert.Equal(t, "/api/v1/scatter", entries[2].ContextMap()["path"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}
