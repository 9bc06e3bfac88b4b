package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marketlens/marketlens/mocks"
	"github.com/marketlens/marketlens/pkg/config"
	"github.com/marketlens/marketlens/pkg/domain/auth"
	domain "github.com/marketlens/marketlens/pkg/domain/errors"
	"github.com/marketlens/marketlens/pkg/domain/market"
	handlers "github.com/marketlens/marketlens/pkg/handlers/http"
	"github.com/marketlens/marketlens/pkg/infra/auth/jwt"
	"github.com/marketlens/marketlens/pkg/middleware"
	"github.com/marketlens/marketlens/pkg/ratelimit"
)

func newTestApiServer(t *testing.T, runner *mocks.Runner, quota int) *ApiServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Auth: config.AuthConfig{
			SecretKey:          "test-secret-key",
			TokenLifetimeHours: 24,
			Users: map[string]string{
				"demo":  "demo123",
				"guest": "guest123",
			},
		},
	}

	jwtManager := jwt.NewJwtManager(&cfg.Auth)
	credentials := auth.NewMemoryCredentialStore(cfg.Auth.Users)
	limiter := ratelimit.NewSlidingWindowLimiter(quota, time.Hour, nil)
	t.Cleanup(limiter.Stop)

	srv := NewApiServer(ApiServerDI{
		Config: cfg,
		Logger: logger,
		MiddlewareTransport: middleware.Transport{
			TraceIdMiddleware:   middleware.NewTraceIdMiddleware(),
			AuthMiddleware:      middleware.NewAuthMiddleware(logger, jwtManager),
			RateLimitMiddleware: middleware.NewRateLimitMiddleware(logger, limiter),
		},
		HandlerTransport: handlers.HandlerTransport{
			BannerHandler:        handlers.NewBannerHandler(logger),
			GetVersionHandler:    handlers.NewGetVersionHandler(logger),
			CreateTokenHandler:   handlers.NewCreateTokenHandler(logger, credentials, jwtManager),
			AnalyzeSectorHandler: handlers.NewAnalyzeSectorHandler(logger, runner),
		},
	})
	srv.setupRoutes()
	srv.setupHealthCheck()
	return srv
}

func obtainToken(t *testing.T, srv *ApiServer, username, password string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := srv.Router.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["access_token"])
	return body["access_token"]
}

func TestApiServer_FullAnalysisFlow(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(mock.Anything, "pharmaceuticals").Return(&market.Report{
		Sector:       "pharmaceuticals",
		Report:       "# Market Analysis: Pharmaceuticals",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		SourcesCount: 5,
	}, nil)

	srv := newTestApiServer(t, runner, 10)
	token := obtainToken(t, srv, "demo", "demo123")

	req := httptest.NewRequest(http.MethodGet, "/analyze/pharmaceuticals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Router.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "10", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))

	var report market.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "pharmaceuticals", report.Sector)
	assert.Equal(t, 5, report.SourcesCount)
}

func TestApiServer_AnalyzeWithoutToken(t *testing.T) {
	runner := mocks.NewRunner(t)
	srv := newTestApiServer(t, runner, 10)

	resp, err := srv.Router.Test(httptest.NewRequest(http.MethodGet, "/analyze/pharmaceuticals", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestApiServer_LoginWithBadPassword(t *testing.T) {
	runner := mocks.NewRunner(t)
	srv := newTestApiServer(t, runner, 10)

	form := url.Values{"username": {"demo"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := srv.Router.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestApiServer_QuotaExhaustion(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(mock.Anything, "banking").Return(&market.Report{
		Sector:       "banking",
		Report:       "# Market Analysis: Banking",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		SourcesCount: 2,
	}, nil).Twice()

	srv := newTestApiServer(t, runner, 2)
	token := obtainToken(t, srv, "demo", "demo123")

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/analyze/banking", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := srv.Router.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/analyze/banking", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Router.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "maximum 2 requests per hour")
}

func TestApiServer_NoNewsForSector(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(mock.Anything, "unknownsector").Return(nil, domain.ErrNoData)

	srv := newTestApiServer(t, runner, 10)
	token := obtainToken(t, srv, "guest", "guest123")

	req := httptest.NewRequest(http.MethodGet, "/analyze/unknownsector", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Router.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestApiServer_RejectedRequestKeepsQuota(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(mock.Anything, "energy").Return(&market.Report{
		Sector:       "energy",
		Report:       "# Market Analysis: Energy",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		SourcesCount: 1,
	}, nil)

	srv := newTestApiServer(t, runner, 1)
	token := obtainToken(t, srv, "demo", "demo123")

	// Unauthenticated requests never reach the limiter.
	resp, err := srv.Router.Test(httptest.NewRequest(http.MethodGet, "/analyze/energy", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/analyze/energy", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = srv.Router.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestApiServer_HealthAndBanner(t *testing.T) {
	runner := mocks.NewRunner(t)
	srv := newTestApiServer(t, runner, 10)

	resp, err := srv.Router.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = srv.Router.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["message"], "MarketLens")
}
