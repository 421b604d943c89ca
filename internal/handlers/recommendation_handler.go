package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wearwise/style-advisor/internal/models"
	"wearwise/style-advisor/internal/services"
)

type RecommendationHandler struct {
	advisor services.AdvisorService
	worker  services.Worker
}

func NewRecommendationHandler(
	advisor services.AdvisorService,
	worker services.Worker,
) *RecommendationHandler {
	return &RecommendationHandler{
		advisor: advisor,
		worker:  worker,
	}
}

// HandleRecommend handles POST /sessions/:id/recommendations
func (h *RecommendationHandler) HandleRecommend(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "session")
	}

	req, err := parseRecommendRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	resp, err := h.advisor.Recommend(c.UserContext(), sessionID, req.Situation)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

// HandleCreateJob handles POST /sessions/:id/recommendations/jobs
func (h *RecommendationHandler) HandleCreateJob(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "session")
	}

	req, err := parseRecommendRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	job, err := h.advisor.CreateRecommendationJob(c.UserContext(), sessionID, req.Situation)
	if err != nil {
		return respondError(c, err)
	}

	h.worker.EnqueueJob(job.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.JobResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	})
}

// parseRecommendRequest accepts an empty body; the situation then defaults.
func parseRecommendRequest(c *fiber.Ctx) (models.RecommendRequest, error) {
	var req models.RecommendRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	err := c.BodyParser(&req)
	return req, err
}
