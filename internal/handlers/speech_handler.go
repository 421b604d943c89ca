package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"wearwise/style-advisor/internal/models"
	"wearwise/style-advisor/internal/services"
)

type SpeechHandler struct {
	synthesizer services.SpeechSynthesizer
}

func NewSpeechHandler(synthesizer services.SpeechSynthesizer) *SpeechHandler {
	return &SpeechHandler{
		synthesizer: synthesizer,
	}
}

// HandleSpeech handles POST /speech
func (h *SpeechHandler) HandleSpeech(c *fiber.Ctx) error {
	var req models.SpeechRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	audio, err := h.synthesizer.Synthesize(c.UserContext(), req.Text)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}
