package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wearwise/style-advisor/internal/models"
	"wearwise/style-advisor/internal/repositories"
	"wearwise/style-advisor/internal/services"
)

type SessionHandler struct {
	sessionRepo repositories.SessionRepository
	advisor     services.AdvisorService
}

func NewSessionHandler(
	sessionRepo repositories.SessionRepository,
	advisor services.AdvisorService,
) *SessionHandler {
	return &SessionHandler{
		sessionRepo: sessionRepo,
		advisor:     advisor,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session, err := h.sessionRepo.Create()
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "session")
	}

	session, err := h.sessionRepo.FindByID(sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(session)
}

// HandleSaveProfile handles PUT /sessions/:id/profile
func (h *SessionHandler) HandleSaveProfile(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "session")
	}

	var req models.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	session, err := h.advisor.SaveProfile(c.UserContext(), sessionID, models.UserProfile{
		Gender:          req.Gender,
		HeightCM:        req.HeightCM,
		WeightKG:        req.WeightKG,
		SkinTone:        req.SkinTone,
		PreferredStyles: req.PreferredStyles,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(session)
}

// HandleSessionSize handles GET /sessions/:id/size
func (h *SessionHandler) HandleSessionSize(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "session")
	}

	session, err := h.sessionRepo.FindByID(sessionID)
	if err != nil {
		return respondError(c, err)
	}
	if session.Profile == nil {
		return respondError(c, services.ErrProfileRequired)
	}

	p := session.Profile
	return c.JSON(services.EstimateSize(p.HeightCM, p.WeightKG, p.Gender))
}

// HandleEstimateSize handles GET /size?height=&weight=&gender=
func (h *SessionHandler) HandleEstimateSize(c *fiber.Ctx) error {
	height, err := strconv.ParseFloat(c.Query("height"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "height must be a number",
		})
	}

	weight, err := strconv.ParseFloat(c.Query("weight"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "weight must be a number",
		})
	}

	gender := models.Gender(c.Query("gender"))
	if err := services.ValidateMeasurements(gender, height, weight); err != nil {
		return respondError(c, err)
	}

	return c.JSON(services.EstimateSize(height, weight, gender))
}
