package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"

	"github.com/marketlens/marketlens/pkg/config"
	handlers "github.com/marketlens/marketlens/pkg/handlers/http"
	"github.com/marketlens/marketlens/pkg/middleware"
)

type (
	ApiServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	ApiServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewApiServer(di ApiServerDI) *ApiServer {
	return &ApiServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *ApiServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting api server")
	return s.Router.Listen(addr)
}

func (s *ApiServer) setupRoutes() {
	s.Router.Use(recover.New())
	s.Router.Use(s.middlewareTransport.TraceIdMiddleware.Middleware())
	if s.Config.Metrics.Enabled && s.middlewareTransport.MetricsMiddleware != nil {
		s.Router.Use(s.middlewareTransport.MetricsMiddleware.Middleware())
	}

	s.Router.Static("/swagger.json", "./docs/swagger.json")
	s.Router.Get("/docs/*", swagger.New(swagger.Config{
		URL: "/swagger.json",
	}))

	s.Router.Get("/", s.handlerTransport.BannerHandler.Handle)
	s.Router.Get("/version", s.handlerTransport.GetVersionHandler.Handle)
	s.Router.Post("/token", s.handlerTransport.CreateTokenHandler.Handle)

	// Quota is checked after authentication so anonymous requests are
	// rejected with 401 before they can consume a slot.
	analyze := s.Router.Group("/analyze")
	{
		analyze.Use(s.middlewareTransport.AuthMiddleware.Middleware())
		analyze.Use(s.middlewareTransport.RateLimitMiddleware.Middleware())
		analyze.Get("/:sector", s.handlerTransport.AnalyzeSectorHandler.Handle)
	}
}

func (s *ApiServer) Shutdown() error {
	return s.Router.Shutdown()
}
