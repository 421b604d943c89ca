package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"wearwise/style-advisor/internal/services"
)

type WeatherHandler struct {
	weatherService services.WeatherService
	defaultNx      int
	defaultNy      int
	now            func() time.Time
}

func NewWeatherHandler(weatherService services.WeatherService, defaultNx, defaultNy int) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		defaultNx:      defaultNx,
		defaultNy:      defaultNy,
		now:            time.Now,
	}
}

// HandleWeather handles GET /weather?nx=&ny=
func (h *WeatherHandler) HandleWeather(c *fiber.Ctx) error {
	nx, err := gridParam(c, "nx", h.defaultNx)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "nx must be an integer",
		})
	}

	ny, err := gridParam(c, "ny", h.defaultNy)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ny must be an integer",
		})
	}

	advice, err := h.weatherService.Advise(c.UserContext(), nx, ny, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(advice)
}

func gridParam(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
