package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wearwise/style-advisor/internal/models"
	"wearwise/style-advisor/internal/repositories"
)

type ResultHandler struct {
	jobRepo repositories.RecommendationJobRepository
}

func NewResultHandler(jobRepo repositories.RecommendationJobRepository) *ResultHandler {
	return &ResultHandler{
		jobRepo: jobRepo,
	}
}

// HandleGetResult handles GET /recommendations/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "recommendation")
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return respondError(c, err)
	}

	response := models.JobResultResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	}

	if job.Status == models.StatusCompleted {
		response.Result = job.Result
		response.Images = job.Images
	}

	if job.Status == models.StatusFailed {
		response.ErrorMessage = job.ErrorMessage
	}

	return c.JSON(response)
}
