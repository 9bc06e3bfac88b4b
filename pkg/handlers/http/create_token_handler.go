package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/marketlens/marketlens/pkg/common"
	"github.com/marketlens/marketlens/pkg/domain/auth"
	domain "github.com/marketlens/marketlens/pkg/domain/errors"
	"github.com/marketlens/marketlens/pkg/infra/auth/jwt"
)

type createTokenHandler struct {
	logger      *logrus.Logger
	credentials auth.CredentialStore
	jwtManager  jwt.Manager
}

func NewCreateTokenHandler(
	logger *logrus.Logger,
	credentials auth.CredentialStore,
	jwtManager jwt.Manager,
) Handler {
	return &createTokenHandler{
		logger:      logger,
		credentials: credentials,
		jwtManager:  jwtManager,
	}
}

// Handle @Summary Issue an access token
// @Description Verifies a username and password and returns a signed bearer token
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} map[string]interface{} "Access token"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /token [post]
func (h *createTokenHandler) Handle(c *fiber.Ctx) error {
	username := c.FormValue("username")
	if username == "" {
		username = c.Query("username")
	}
	password := c.FormValue("password")
	if password == "" {
		password = c.Query("password")
	}

	if !h.credentials.Verify(username, password) {
		h.logger.WithFields(logrus.Fields{
			"trace_id": c.Locals(common.TraceIdKey),
			"username": username,
		}).Warn("login failed")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": domain.ErrInvalidCredentials.Error(),
		})
	}

	token, err := h.jwtManager.CreateToken(username)
	if err != nil {
		h.logger.WithError(err).Error("failed to sign access token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}
