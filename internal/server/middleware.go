package server

import (
	"strconv"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/logging"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Observe logs one line per request and records request metrics. Errors from
// the chain are rendered here so the logged status matches the response.
func Observe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID, _ := c.Locals("requestid").(string)
		if requestID != "" {
			c.SetUserContext(logging.ContextWithRequestID(c.UserContext(), requestID))
		}

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		latency := time.Since(start)
		route := c.Route().Path

		metrics.RecordHTTPRequest(c.Method(), route, strconv.Itoa(status), latency)

		logger := logging.Ctx(c.UserContext())
		event := logger.Info()
		if status >= fiber.StatusInternalServerError {
			event = logger.Error()
		}
		event.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Msg("request")

		return nil
	}
}
