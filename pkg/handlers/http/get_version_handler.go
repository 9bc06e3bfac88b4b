package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/marketlens/marketlens/pkg/version"
)

type getVersionHandler struct {
	logger *logrus.Logger
}

func NewGetVersionHandler(logger *logrus.Logger) Handler {
	return &getVersionHandler{
		logger: logger,
	}
}

// Handle @Summary Get MarketLens Version
// @Description Returns the current version of the service
// @Tags Info
// @Produce json
// @Success 200 {object} version.Info "Version information"
// @Router /version [get]
func (h *getVersionHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(version.GetInfo())
}
