package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wearwise/style-advisor/internal/services"
)

type PersonalColorHandler struct {
	advisor        services.AdvisorService
	storageService services.StorageService
}

func NewPersonalColorHandler(
	advisor services.AdvisorService,
	storageService services.StorageService,
) *PersonalColorHandler {
	return &PersonalColorHandler{
		advisor:        advisor,
		storageService: storageService,
	}
}

// HandleDiagnose handles POST /sessions/:id/personal-color
func (h *PersonalColorHandler) HandleDiagnose(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "session")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload a face photo as 'image' (jpg, jpeg or png).",
		})
	}

	face, err := h.storageService.ReadImage(file)
	if err != nil {
		return respondError(c, err)
	}

	diagnosis, err := h.advisor.DiagnosePersonalColor(c.UserContext(), sessionID, face)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"diagnosis":  diagnosis,
		"recognized": diagnosis.Recognized(),
	})
}

// HandleApply handles POST /sessions/:id/personal-color/apply
func (h *PersonalColorHandler) HandleApply(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "session")
	}

	session, err := h.advisor.ApplyPersonalColor(c.UserContext(), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(session)
}
