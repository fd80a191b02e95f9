package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"cargo-tracker/internal/core/config"
	"cargo-tracker/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "cargo-tracker/docs/swagger"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
	// checks run on every /healthz request.
	checks []HealthCheck
}

// New creates a new Server instance with configured middleware and the
// operational routes (/healthz, /metrics, /swagger).
func New(cfg *config.AppConfig, checks ...HealthCheck) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               logger.AppName,
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	s := &Server{
		App:    app,
		cfg:    cfg,
		checks: checks,
	}

	app.Get("/healthz", s.health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	return s
}

// health handles GET /healthz.
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	for _, check := range s.checks {
		if err := check(ctx); err != nil {
			logger.Get().Warn("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Serve runs the HTTP server on an existing listener until it is shut down.
func (s *Server) Serve(ln net.Listener) error {
	logger.Get().Info("Starting server", zap.String("address", ln.Addr().String()))
	return s.App.Listener(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Get().Info("Shutting down server")
	return s.App.ShutdownWithContext(ctx)
}
