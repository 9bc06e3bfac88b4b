package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marketlens/marketlens/mocks"
	domain "github.com/marketlens/marketlens/pkg/domain/errors"
	"github.com/marketlens/marketlens/pkg/domain/market"
	handler "github.com/marketlens/marketlens/pkg/handlers/http"
)

func newAnalyzeTestApp(t *testing.T, runner *mocks.Runner) *fiber.App {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Get("/analyze/:sector", handler.NewAnalyzeSectorHandler(logger, runner).Handle)
	return app
}

func TestAnalyzeSectorHandler_Success(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(mock.Anything, "pharmaceuticals").Return(&market.Report{
		Sector:       "pharmaceuticals",
		Report:       "# Market Analysis: Pharmaceuticals",
		Timestamp:    "2025-03-01T10:00:00Z",
		SourcesCount: 5,
	}, nil)

	app := newAnalyzeTestApp(t, runner)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/analyze/pharmaceuticals", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body market.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "pharmaceuticals", body.Sector)
	assert.Equal(t, 5, body.SourcesCount)
	assert.False(t, body.Degraded)
}

func TestAnalyzeSectorHandler_InvalidSector(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(mock.Anything, "ab").
		Return(nil, domain.NewValidationError("sector", "name must be between 3 and 50 characters"))

	app := newAnalyzeTestApp(t, runner)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/analyze/ab", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "between 3 and 50 characters")
}

func TestAnalyzeSectorHandler_NoNewsFound(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(mock.Anything, "obscure-sector").Return(nil, domain.ErrNoData)

	app := newAnalyzeTestApp(t, runner)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/analyze/obscure-sector", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "no news articles found for sector 'obscure-sector'", body["error"])
}

func TestAnalyzeSectorHandler_UnexpectedFailure(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(mock.Anything, "banking").Return(nil, errors.New("boom"))

	app := newAnalyzeTestApp(t, runner)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/analyze/banking", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "internal server error", body["error"])
}

func TestAnalyzeSectorHandler_DegradedReportStillSucceeds(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(mock.Anything, "energy").Return(&market.Report{
		Sector:       "energy",
		Report:       "# Error\n\nUnable to generate analysis: provider unavailable",
		Timestamp:    "2025-03-01T10:00:00Z",
		SourcesCount: 3,
		Degraded:     true,
	}, nil)

	app := newAnalyzeTestApp(t, runner)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/analyze/energy", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body market.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Degraded)
}
