package http

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/swissrenewables/backend/internal/pkg/logger"
)

const requestIDKey = "requestid"

// AppConfig holds the fiber settings
type AppConfig struct {
	AllowOrigins string
	AccessLog    bool
}

// NewApp creates the fiber application with the shared middleware stack
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Swiss Renewables API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: ErrorHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(func(c *fiber.Ctx) error {
		if id, ok := c.Locals(requestIDKey).(string); ok {
			c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	})
	if cfg.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${status} - ${method} ${path} (${latency}) ${locals:requestid}\n",
		}))
	}
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	return app
}
