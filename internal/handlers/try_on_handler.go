package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wearwise/style-advisor/internal/models"
)

const tryOnNotice = "가상 피팅은 외부 서비스에서 제공됩니다. 서비스 사정에 따라 접속이 원활하지 않을 수 있습니다."

type TryOnHandler struct {
	url string
}

func NewTryOnHandler(url string) *TryOnHandler {
	return &TryOnHandler{url: url}
}

// HandleTryOn handles GET /try-on
func (h *TryOnHandler) HandleTryOn(c *fiber.Ctx) error {
	return c.JSON(models.TryOnResponse{
		URL:     h.url,
		Message: tryOnNotice,
	})
}
