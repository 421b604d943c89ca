package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wearwise/style-advisor/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger logs each request with zerolog, attaches a request-scoped
// logger to the user context and updates the request counters.
func RequestLogger(reg *metrics.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(RequestIDHeader, rid)

		logger := log.With().
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("remote_ip", c.IP()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Logger()

		c.SetUserContext(logger.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			// Let the app's error handler write the response so the status is final.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		duration := time.Since(start)
		route := c.Route().Path

		reg.Inc(c.UserContext(), metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Method(),
			"path":   route,
			"status": statusClass(status),
		}, 1)

		if status >= fiber.StatusInternalServerError {
			logger.Error().
				Err(err).
				Int("status", status).
				Dur("duration", duration).
				Msg("http request failed")
			reg.Inc(c.UserContext(), metrics.HTTPRequestErrorsTotal, map[string]string{
				"method": c.Method(),
				"path":   route,
				"status": statusClass(status),
			}, 1)
		} else {
			logger.Info().
				Int("status", status).
				Dur("duration", duration).
				Msg("http request served")
		}

		return nil
	}
}

func statusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "0"
	}
}
