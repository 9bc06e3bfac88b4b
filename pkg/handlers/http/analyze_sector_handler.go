package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/marketlens/marketlens/pkg/app/analysis"
	"github.com/marketlens/marketlens/pkg/common"
	domain "github.com/marketlens/marketlens/pkg/domain/errors"
	"github.com/marketlens/marketlens/pkg/infra/prometheus"
)

type analyzeSectorHandler struct {
	logger *logrus.Logger
	runner analysis.Runner
}

func NewAnalyzeSectorHandler(logger *logrus.Logger, runner analysis.Runner) Handler {
	return &analyzeSectorHandler{
		logger: logger,
		runner: runner,
	}
}

// Handle @Summary Analyze a market sector
// @Description Collects recent news for the sector and returns a generated analysis report
// @Tags Analysis
// @Param Authorization header string true "Bearer token"
// @Produce json
// @Param sector path string true "Sector name, e.g. pharmaceuticals"
// @Success 200 {object} market.Report "Analysis report"
// @Failure 400 {object} map[string]interface{} "Invalid sector name"
// @Failure 404 {object} map[string]interface{} "No news found for sector"
// @Router /analyze/{sector} [get]
func (h *analyzeSectorHandler) Handle(c *fiber.Ctx) error {
	sector := c.Params("sector")

	h.logger.WithFields(logrus.Fields{
		"trace_id": c.Locals(common.TraceIdKey),
		"username": c.Locals(common.UserContextKey),
		"sector":   sector,
	}).Info("sector analysis requested")

	report, err := h.runner.Run(c.Context(), sector)
	if err != nil {
		if domain.IsValidationError(err) {
			prometheus.AnalysisTotal.WithLabelValues("invalid_sector").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, domain.ErrNoData) {
			prometheus.AnalysisTotal.WithLabelValues("no_data").Inc()
			normalized, _ := analysis.NormalizeSector(sector)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("no news articles found for sector '%s'", normalized),
			})
		}
		prometheus.AnalysisTotal.WithLabelValues("error").Inc()
		h.logger.WithFields(logrus.Fields{
			"trace_id": c.Locals(common.TraceIdKey),
			"sector":   sector,
			"error":    err,
		}).Error("sector analysis failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	if report.Degraded {
		prometheus.AnalysisTotal.WithLabelValues("degraded").Inc()
	} else {
		prometheus.AnalysisTotal.WithLabelValues("ok").Inc()
	}
	return c.Status(fiber.StatusOK).JSON(report)
}
