package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/marketlens/marketlens/pkg/common"
	"github.com/marketlens/marketlens/pkg/infra/auth/jwt"
)

type AuthMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

func NewAuthMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &AuthMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

// Middleware authenticates requests via a bearer token and stores the
// token subject in the request locals for downstream handlers.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get("Authorization")
		if header == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization header",
			})
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authorization header format, expected 'Bearer <token>'",
			})
		}

		username, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.logger.WithFields(logrus.Fields{
				"trace_id": ctx.Locals(common.TraceIdKey),
				"error":    err,
			}).Warn("token validation failed")

			if errors.Is(err, jwt.ErrExpiredToken) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "token has expired",
				})
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authentication token",
			})
		}

		ctx.Locals(common.UserContextKey, username)
		return ctx.Next()
	}
}
