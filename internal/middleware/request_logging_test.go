package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wearwise/style-advisor/internal/metrics"
)

func TestRequestLogger(t *testing.T) {
	reg := metrics.NewRegistry()
	app := fiber.New()
	app.Use(RequestLogger(reg))

	var hasLogger bool
	app.Get("/ok", func(c *fiber.Ctx) error {
		hasLogger = zerolog.Ctx(c.UserContext()).GetLevel() != zerolog.Disabled
		return c.SendString("ok")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "upstream down")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	assert.True(t, hasLogger)

	req := httptest.NewRequest("GET", "/boom", nil)
	req.Header.Set(RequestIDHeader, "rid-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "rid-123", resp.Header.Get(RequestIDHeader))

	assert.Equal(t, int64(1), reg.Value(metrics.HTTPRequestsTotal, map[string]string{"method": "GET", "path": "/ok", "status": "2xx"}))
	assert.Equal(t, int64(1), reg.Value(metrics.HTTPRequestErrorsTotal, map[string]string{"method": "GET", "path": "/boom", "status": "5xx"}))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(204))
	assert.Equal(t, "4xx", statusClass(404))
	assert.Equal(t, "5xx", statusClass(503))
	assert.Equal(t, "0", statusClass(0))
}
