package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/marketlens/marketlens/pkg/common"
)

type TraceIdMiddleware struct{}

func NewTraceIdMiddleware() Middleware {
	return &TraceIdMiddleware{}
}

// Middleware assigns every request a trace id, accepting an incoming
// X-Trace-Id header when present so callers can correlate retries.
func (m *TraceIdMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		traceID := ctx.Get(common.TraceIdHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		ctx.Locals(common.TraceIdKey, traceID)
		ctx.Set(common.TraceIdHeader, traceID)
		return ctx.Next()
	}
}
