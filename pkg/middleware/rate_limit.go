package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/marketlens/marketlens/pkg/common"
	"github.com/marketlens/marketlens/pkg/infra/prometheus"
	"github.com/marketlens/marketlens/pkg/ratelimit"
)

type RateLimitMiddleware struct {
	logger  *logrus.Logger
	limiter ratelimit.Limiter
}

func NewRateLimitMiddleware(logger *logrus.Logger, limiter ratelimit.Limiter) Middleware {
	return &RateLimitMiddleware{
		logger:  logger,
		limiter: limiter,
	}
}

// Middleware enforces the per-user quota. It must run after authentication
// so the username is available in the request locals.
func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		username, ok := ctx.Locals(common.UserContextKey).(string)
		if !ok || username == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authentication token",
			})
		}

		result, err := m.limiter.Allow(username)
		ctx.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		ctx.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		ctx.Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset.Unix(), 10))

		if err != nil {
			var limitErr *ratelimit.LimitExceededError
			if errors.As(err, &limitErr) {
				m.logger.WithFields(logrus.Fields{
					"trace_id": ctx.Locals(common.TraceIdKey),
					"username": username,
				}).Warn("rate limit exceeded")

				prometheus.RateLimitRejectedTotal.Inc()
				ctx.Set("Retry-After", strconv.Itoa(int(limitErr.RetryAfter.Seconds())+1))
				return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": limitErr.Error(),
				})
			}
			m.logger.WithError(err).Error("rate limiter failure")
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		return ctx.Next()
	}
}
