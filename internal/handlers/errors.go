package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"wearwise/style-advisor/internal/repositories"
	"wearwise/style-advisor/internal/services"
)

// respondError maps service and repository errors onto HTTP responses.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validation *services.ValidationError
		provider   *services.ProviderError
		malformed  *services.MalformedResponseError
		upstream   *services.ServiceError
	)

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validation.Error(),
			"field": validation.Field,
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrProfileRequired),
		errors.Is(err, services.ErrAnalysisRequired),
		errors.Is(err, services.ErrNotRecognized):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrSpeechDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "upstream request timed out",
		})
	case errors.As(err, &provider):
		// Provider messages are shown to the user as-is.
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": provider.Message,
			"code":  provider.Code,
		})
	case errors.As(err, &malformed):
		zerolog.Ctx(c.UserContext()).Warn().
			Str("reason", malformed.Reason).
			Str("raw", malformed.Raw).
			Msg("malformed model response")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": malformed.Error(),
		})
	case errors.As(err, &upstream):
		zerolog.Ctx(c.UserContext()).Warn().Err(err).Str("provider", upstream.Provider).Msg("upstream call failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

func invalidID(c *fiber.Ctx, label string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid " + label + " ID format",
	})
}
