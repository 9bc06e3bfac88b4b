package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type bannerHandler struct {
	logger *logrus.Logger
}

func NewBannerHandler(logger *logrus.Logger) Handler {
	return &bannerHandler{
		logger: logger,
	}
}

// Handle @Summary Service banner
// @Description Returns a welcome message with pointers to the main endpoints
// @Tags Info
// @Produce json
// @Success 200 {object} map[string]interface{} "Banner"
// @Router / [get]
func (h *bannerHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":        "MarketLens API - Indian market sector analysis",
		"docs":           "/docs",
		"login":          "POST /token with username and password",
		"analyze_sector": "GET /analyze/{sector} with Bearer token",
	})
}
