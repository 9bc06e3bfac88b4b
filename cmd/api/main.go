package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/marketlens/marketlens/pkg/app/analysis"
	"github.com/marketlens/marketlens/pkg/config"
	"github.com/marketlens/marketlens/pkg/domain/auth"
	handlers "github.com/marketlens/marketlens/pkg/handlers/http"
	"github.com/marketlens/marketlens/pkg/infra/analyzer"
	jwtinfra "github.com/marketlens/marketlens/pkg/infra/auth/jwt"
	"github.com/marketlens/marketlens/pkg/infra/collector"
	infraLogger "github.com/marketlens/marketlens/pkg/infra/logger"
	"github.com/marketlens/marketlens/pkg/infra/prometheus"
	"github.com/marketlens/marketlens/pkg/infra/providers/factory"
	"github.com/marketlens/marketlens/pkg/middleware"
	"github.com/marketlens/marketlens/pkg/ratelimit"
	"github.com/marketlens/marketlens/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	if err := config.Load("./config"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	logger := infraLogger.NewLogger(cfg.Log.Level)

	jwtManager := jwtinfra.NewJwtManager(&cfg.Auth)
	credentials := auth.NewMemoryCredentialStore(cfg.Auth.Users)

	limiter := ratelimit.NewSlidingWindowLimiter(
		cfg.RateLimit.RequestsPerWindow,
		cfg.RateLimit.WindowDuration(),
		nil,
	)
	defer limiter.Stop()

	providerClient, err := factory.NewProviderLocator().Get(cfg.Analyzer.Provider)
	if err != nil {
		logger.Fatalf("failed to resolve analysis provider: %v", err)
	}

	newsCollector := collector.NewNewsClient(&cfg.Collector, logger, nil)
	marketAnalyzer := analyzer.NewMarketAnalyzer(&cfg.Analyzer, logger, providerClient)
	runner := analysis.NewRunner(logger, newsCollector, marketAnalyzer)

	if cfg.Metrics.Enabled {
		prometheus.Initialize()
	}

	middlewareTransport := middleware.Transport{
		TraceIdMiddleware:   middleware.NewTraceIdMiddleware(),
		MetricsMiddleware:   middleware.NewMetricsMiddleware(),
		AuthMiddleware:      middleware.NewAuthMiddleware(logger, jwtManager),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(logger, limiter),
	}

	handlerTransport := handlers.HandlerTransport{
		BannerHandler:        handlers.NewBannerHandler(logger),
		GetVersionHandler:    handlers.NewGetVersionHandler(logger),
		CreateTokenHandler:   handlers.NewCreateTokenHandler(logger, credentials, jwtManager),
		AnalyzeSectorHandler: handlers.NewAnalyzeSectorHandler(logger, runner),
	}

	srv := server.NewApiServer(server.ApiServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}
