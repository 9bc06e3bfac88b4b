package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/marketlens/marketlens/pkg/config"
)

// Server interface defines the common behavior for all servers
type Server interface {
	Run() error
	Shutdown() error
}

type BaseServer struct {
	Config         *config.Config
	Logger         *logrus.Logger
	Router         *fiber.App
	metricsStarted bool
}

func NewBaseServer(config *config.Config, logger *logrus.Logger) *BaseServer {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Network:               fiber.NetworkTCP,
		BodyLimit:             1 * 1024 * 1024,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          120 * time.Second,
		IdleTimeout:           120 * time.Second,
	})

	r.Server().NoDefaultServerHeader = true

	return &BaseServer{
		Config: config,
		Logger: logger,
		Router: r,
	}
}

// setupHealthCheck adds a health check endpoint to the server
func (s *BaseServer) setupHealthCheck() {
	s.Router.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

func (s *BaseServer) setupMetricsEndpoint() {
	if !s.Config.Metrics.Enabled {
		s.Logger.Info("prometheus metrics are disabled by configuration")
		return
	}
	if s.metricsStarted {
		return
	}
	s.metricsStarted = true

	metricsApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	metricsApp.Use(recover.New())

	metricsApp.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// Metrics are served on their own port so the quota middleware
	// never applies to scrapes.
	go func() {
		addr := fmt.Sprintf(":%d", s.Config.Server.MetricsPort)
		if err := metricsApp.Listen(addr); err != nil {
			if !strings.Contains(err.Error(), "address already in use") {
				s.Logger.WithError(err).Error("failed to start metrics server")
			}
		}
	}()
}
