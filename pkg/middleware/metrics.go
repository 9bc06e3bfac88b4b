package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marketlens/marketlens/pkg/infra/prometheus"
)

type MetricsMiddleware struct{}

func NewMetricsMiddleware() Middleware {
	return &MetricsMiddleware{}
}

// Middleware records request counts and latency. The route template is
// used as the path label so sector names do not blow up cardinality.
func (m *MetricsMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		path := ctx.Route().Path
		prometheus.RequestTotal.WithLabelValues(
			ctx.Method(),
			path,
			strconv.Itoa(ctx.Response().StatusCode()),
		).Inc()
		prometheus.RequestLatency.WithLabelValues(path).
			Observe(float64(time.Since(start).Milliseconds()))

		return err
	}
}
