package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every API handler so the route table is declared once.
type Handlers struct {
	Session        *SessionHandler
	Analysis       *AnalysisHandler
	Recommendation *RecommendationHandler
	Result         *ResultHandler
	PersonalColor  *PersonalColorHandler
	Weather        *WeatherHandler
	Speech         *SpeechHandler
	TryOn          *TryOnHandler
}

func (h *Handlers) Register(api fiber.Router) {
	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/sessions", h.Session.HandleCreate)
	api.Get("/sessions/:id", h.Session.HandleGet)
	api.Put("/sessions/:id/profile", h.Session.HandleSaveProfile)
	api.Get("/sessions/:id/size", h.Session.HandleSessionSize)
	api.Get("/size", h.Session.HandleEstimateSize)

	api.Post("/sessions/:id/analyze", h.Analysis.HandleAnalyze)
	api.Get("/sessions/:id/insights", h.Analysis.HandleInsights)

	api.Post("/sessions/:id/recommendations", h.Recommendation.HandleRecommend)
	api.Post("/sessions/:id/recommendations/jobs", h.Recommendation.HandleCreateJob)
	api.Get("/recommendations/:id", h.Result.HandleGetResult)

	api.Post("/sessions/:id/personal-color", h.PersonalColor.HandleDiagnose)
	api.Post("/sessions/:id/personal-color/apply", h.PersonalColor.HandleApply)

	api.Get("/weather", h.Weather.HandleWeather)
	api.Post("/speech", h.Speech.HandleSpeech)
	api.Get("/try-on", h.TryOn.HandleTryOn)
}

// Endpoints lists the routes shown on the index page.
var Endpoints = []string{
	"POST /api/v1/sessions",
	"GET /api/v1/sessions/:id",
	"PUT /api/v1/sessions/:id/profile",
	"GET /api/v1/sessions/:id/size",
	"GET /api/v1/size",
	"POST /api/v1/sessions/:id/analyze",
	"GET /api/v1/sessions/:id/insights",
	"POST /api/v1/sessions/:id/recommendations",
	"POST /api/v1/sessions/:id/recommendations/jobs",
	"GET /api/v1/recommendations/:id",
	"POST /api/v1/sessions/:id/personal-color",
	"POST /api/v1/sessions/:id/personal-color/apply",
	"GET /api/v1/weather",
	"POST /api/v1/speech",
	"GET /api/v1/try-on",
}
