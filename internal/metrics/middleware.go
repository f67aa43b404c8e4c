package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	slowRequestThreshold = time.Second
	unmatchedRoute       = "unmatched"
	trackIDHeader        = "X-Track-ID"
)

// HTTPMetricsMiddleware labels requests by route template. Requests that
// matched no route share one label so probes against random paths cannot
// grow the series count.
func HTTPMetricsMiddleware(metrics *Metrics, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		err := c.Next()
		if err != nil {
			// Render now so the recorded status matches the response.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := routeLabel(c, status)

		metrics.RecordHTTPRequest(c.Method(), route, strconv.Itoa(status), elapsed, len(c.Response().Body()))

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("route", route),
			zap.Int("statusCode", status),
			zap.Duration("duration", elapsed),
			zap.String("trackID", string(c.Response().Header.Peek(trackIDHeader))),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("HTTP request failed", append(fields, zap.Error(err))...)
		case elapsed > slowRequestThreshold:
			logger.Warn("Slow HTTP request", fields...)
		}

		return nil
	}
}

func routeLabel(c *fiber.Ctx, status int) string {
	if status == fiber.StatusNotFound || status == fiber.StatusMethodNotAllowed {
		if route := c.Route(); route.Path == "/" || route.Path == "*" || route.Path == "/*" {
			return unmatchedRoute
		}
	}

	return c.Route().Path
}
