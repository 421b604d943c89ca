package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"wearwise/style-advisor/internal/config"
	"wearwise/style-advisor/internal/handlers"
	"wearwise/style-advisor/internal/logging"
	"wearwise/style-advisor/internal/metrics"
	"wearwise/style-advisor/internal/middleware"
	"wearwise/style-advisor/internal/repositories"
	"wearwise/style-advisor/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	logging.Setup(cfg.IsDevelopment())

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("❌ Invalid configuration")
	}
	log.Info().Msg("✅ Config loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository(cfg.Session.TTL)
	analysisRepo := repositories.NewAnalysisRepository(db)
	jobRepo := repositories.NewRecommendationJobRepository(db)
	log.Info().Msg("✅ Repositories initialized successfully")

	// Initialize AI clients
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize Gemini AI")
	}
	imageGenerator := services.NewOpenAIImageGenerator(cfg.Image.APIKey, cfg.Image.Model)
	log.Info().Str("model", cfg.Gemini.Model).Str("image_model", cfg.Image.Model).Msg("✅ AI clients initialized successfully")

	speech, err := newSpeechSynthesizer(ctx, cfg.Speech)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize text-to-speech")
	}
	defer speech.Close()

	weatherService := services.NewWeatherService(
		services.NewKMAClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Server.RequestTimeout),
	)
	storageService := services.NewStorageService(cfg.Storage.MaxFileSize)
	reg := metrics.NewRegistry()

	advisor := services.NewAdvisorService(
		sessionRepo,
		analysisRepo,
		jobRepo,
		geminiService,
		imageGenerator,
		services.RetryPolicy{
			MaxAttempts: cfg.Image.MaxAttempts,
			Delay:       cfg.Image.RetryDelay,
			Sleep:       services.SleepContext,
		},
		cfg.Server.RequestTimeout,
		reg,
	)
	log.Info().Msg("✅ Advisor service initialized")

	// Initialize and start worker
	worker := services.NewWorker(jobRepo, advisor, cfg.Worker.Concurrency, cfg.Worker.PollInterval)
	worker.Start(log.Logger.WithContext(ctx))
	log.Info().Msg("✅ Worker started successfully")

	h := &handlers.Handlers{
		Session:        handlers.NewSessionHandler(sessionRepo, advisor),
		Analysis:       handlers.NewAnalysisHandler(advisor, storageService),
		Recommendation: handlers.NewRecommendationHandler(advisor, worker),
		Result:         handlers.NewResultHandler(jobRepo),
		PersonalColor:  handlers.NewPersonalColorHandler(advisor, storageService),
		Weather:        handlers.NewWeatherHandler(weatherService, cfg.Weather.DefaultNx, cfg.Weather.DefaultNy),
		Speech:         handlers.NewSpeechHandler(speech),
		TryOn:          handlers.NewTryOnHandler(cfg.TryOn.URL),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Style Advisor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * cfg.Server.RequestTimeout,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(reg))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
	}))

	// Routes
	h.Register(app.Group("/api/v1"))
	app.Get("/metrics", reg.HandlerText)
	app.Get("/metrics.json", reg.HandlerJSON)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Style Advisor API",
			"version":   "1.0.0",
			"endpoints": handlers.Endpoints,
		})
	})

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Info().Msg("🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("❌ Failed to start server")
		worker.Stop()
		os.Exit(1)
	}
}

func newSpeechSynthesizer(ctx context.Context, cfg config.SpeechConfig) (services.SpeechSynthesizer, error) {
	if !cfg.Enabled {
		log.Info().Msg("Text-to-speech disabled")
		return services.NewDisabledSpeechSynthesizer(), nil
	}
	return services.NewGoogleSpeechSynthesizer(ctx, cfg.CredentialsFile, cfg.Voice)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
