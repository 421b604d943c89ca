package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wearwise/style-advisor/internal/models"
	"wearwise/style-advisor/internal/services"
)

type AnalysisHandler struct {
	advisor        services.AdvisorService
	storageService services.StorageService
}

func NewAnalysisHandler(
	advisor services.AdvisorService,
	storageService services.StorageService,
) *AnalysisHandler {
	return &AnalysisHandler{
		advisor:        advisor,
		storageService: storageService,
	}
}

// HandleAnalyze handles POST /sessions/:id/analyze
func (h *AnalysisHandler) HandleAnalyze(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "session")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload a clothing photo as 'image' (jpg, jpeg or png).",
		})
	}

	image, err := h.storageService.ReadImage(file)
	if err != nil {
		return respondError(c, err)
	}

	record, err := h.advisor.AnalyzeClothing(c.UserContext(), sessionID, image)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.AnalyzeResponse{
		ID:          record.ID.String(),
		Attributes:  record.Attributes,
		NotClothing: record.Attributes.NotClothing(),
	})
}

// HandleInsights handles GET /sessions/:id/insights
func (h *AnalysisHandler) HandleInsights(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "session")
	}

	insights, err := h.advisor.Insights(c.UserContext(), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(insights)
}
