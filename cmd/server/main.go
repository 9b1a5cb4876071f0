package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swissrenewables/backend/internal/config"
	"github.com/swissrenewables/backend/internal/delivery/http"
	"github.com/swissrenewables/backend/internal/delivery/http/views"
	"github.com/swissrenewables/backend/internal/domain"
	"github.com/swissrenewables/backend/internal/pkg/logger"
	"github.com/swissrenewables/backend/internal/repository"
	"github.com/swissrenewables/backend/internal/repository/csvfile"
	"github.com/swissrenewables/backend/internal/repository/geojson"
	"github.com/swissrenewables/backend/internal/repository/memory"
	"github.com/swissrenewables/backend/internal/repository/postgres"
	"github.com/swissrenewables/backend/internal/service"
)

func main() {
	// Load environment variables
	envLoaded := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	if !envLoaded {
		logger.Infof(ctx, "no .env file found, using system environment")
	}

	// Data source
	var (
		source domain.PlantSource
		health domain.HealthChecker
	)
	switch cfg.DataSource {
	case config.SourcePostgres:
		connCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		pool, err := postgres.Connect(connCtx, cfg.DatabaseURL, cfg.DBConnectRetries)
		cancel()
		if err != nil {
			logger.Fatal(ctx, err)
		}
		defer pool.Close()
		logger.Infof(ctx, "connected to PostgreSQL, reading table %s", cfg.PlantsTable)

		pg := postgres.NewSource(pool)
		source, health = pg, pg
	case config.SourceDemo:
		logger.Warnf(ctx, "running with the built-in demo dataset")
		demo := memory.NewDemoSource()
		source, health = demo, demo
	default:
		source = csvfile.NewSource(csvfile.WithComma(cfg.Comma()))
	}

	// Dependency Injection: Services
	loader := repository.NewLoader(source)
	geometry := repository.NewMemo(geojson.NewSource().Read)
	dashboardSvc := service.NewDashboardService(loader, geometry, service.DashboardConfig{
		DataKey:     cfg.DataKey(),
		GeoKey:      cfg.GeoJSONPath,
		PreviewRows: cfg.PreviewRows,
	})

	warmCtx, cancel := context.WithTimeout(ctx, time.Minute)
	err = dashboardSvc.Warmup(warmCtx)
	cancel()
	if err != nil {
		logger.Fatal(ctx, err)
	}

	if err := views.LoadTemplates(); err != nil {
		logger.Fatal(ctx, fmt.Errorf("views: %w", err))
	}

	// Fiber App
	app := http.NewApp(http.AppConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    true,
	})

	// Routes
	http.SetupRoutes(app, dashboardSvc, health)

	// Graceful shutdown
	go func() {
		logger.Info(ctx, "server starting", "addr", cfg.Addr(), "source", cfg.DataSource, "env", cfg.Env)
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Fatal(ctx, fmt.Errorf("server error: %w", err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof(ctx, "shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Errorf(ctx, "server forced to shutdown: %v", err)
	}
	logger.Infof(ctx, "server exited gracefully")
}
