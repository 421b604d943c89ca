package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wearwise/style-advisor/internal/metrics"
	"wearwise/style-advisor/internal/models"
	"wearwise/style-advisor/internal/repositories"
)

// AdvisorService runs the recommendation pipeline against a session's state.
type AdvisorService interface {
	SaveProfile(ctx context.Context, sessionID uuid.UUID, profile models.UserProfile) (*models.Session, error)
	AnalyzeClothing(ctx context.Context, sessionID uuid.UUID, images ...ImageInput) (*models.AnalysisRecord, error)
	Recommend(ctx context.Context, sessionID uuid.UUID, situation string) (*models.RecommendResponse, error)
	CreateRecommendationJob(ctx context.Context, sessionID uuid.UUID, situation string) (*models.RecommendationJob, error)
	ProcessJob(ctx context.Context, jobID uuid.UUID) error
	DiagnosePersonalColor(ctx context.Context, sessionID uuid.UUID, face ImageInput) (*models.PersonalColorDiagnosis, error)
	ApplyPersonalColor(ctx context.Context, sessionID uuid.UUID) (*models.Session, error)
	Insights(ctx context.Context, sessionID uuid.UUID) (*models.StyleInsights, error)
}

type advisorService struct {
	sessionRepo    repositories.SessionRepository
	analysisRepo   repositories.AnalysisRepository
	jobRepo        repositories.RecommendationJobRepository
	analyzer       ClothingAnalyzer
	recommender    Recommender
	diagnoser      PersonalColorDiagnoser
	imageGenerator ImageGenerator
	retryPolicy    RetryPolicy
	requestTimeout time.Duration
	metrics        *metrics.Registry
}

func NewAdvisorService(
	sessionRepo repositories.SessionRepository,
	analysisRepo repositories.AnalysisRepository,
	jobRepo repositories.RecommendationJobRepository,
	textService TextVisionService,
	imageGenerator ImageGenerator,
	retryPolicy RetryPolicy,
	requestTimeout time.Duration,
	reg *metrics.Registry,
) AdvisorService {
	return &advisorService{
		sessionRepo:    sessionRepo,
		analysisRepo:   analysisRepo,
		jobRepo:        jobRepo,
		analyzer:       NewClothingAnalyzer(textService),
		recommender:    NewRecommender(textService),
		diagnoser:      NewPersonalColorDiagnoser(textService),
		imageGenerator: &timedImageGenerator{next: imageGenerator, timeout: requestTimeout},
		retryPolicy:    retryPolicy,
		requestTimeout: requestTimeout,
		metrics:        reg,
	}
}

// timedImageGenerator bounds every single generation attempt.
type timedImageGenerator struct {
	next    ImageGenerator
	timeout time.Duration
}

func (g *timedImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()
	return g.next.GenerateImage(ctx, prompt)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// SaveProfile overwrites the session's profile wholesale.
func (a *advisorService) SaveProfile(ctx context.Context, sessionID uuid.UUID, profile models.UserProfile) (*models.Session, error) {
	profile, err := ValidateProfile(profile)
	if err != nil {
		return nil, err
	}

	session, err := a.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	session.Profile = &profile
	if err := a.sessionRepo.Save(session); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("session_id", sessionID.String()).Msg("profile saved")
	return session, nil
}

// AnalyzeClothing requires a saved profile. Successful results become the
// session's latest analysis and are appended to its history.
func (a *advisorService) AnalyzeClothing(ctx context.Context, sessionID uuid.UUID, images ...ImageInput) (*models.AnalysisRecord, error) {
	session, err := a.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Profile == nil {
		return nil, ErrProfileRequired
	}

	callCtx, cancel := withTimeout(ctx, a.requestTimeout)
	defer cancel()

	attrs, err := a.analyzer.Analyze(callCtx, images...)
	if err != nil {
		a.metrics.Inc(ctx, metrics.ClothingAnalysesTotal, map[string]string{"result": "failed"}, 1)
		return nil, err
	}

	result := "clothing"
	if attrs.NotClothing() {
		result = "not_clothing"
	}
	a.metrics.Inc(ctx, metrics.ClothingAnalysesTotal, map[string]string{"result": result}, 1)

	record := &models.AnalysisRecord{
		ID:         uuid.New(),
		SessionID:  sessionID,
		Attributes: *attrs,
		CreatedAt:  time.Now(),
	}
	if len(images) > 0 {
		record.MimeType = images[0].MimeType
	}
	if err := a.analysisRepo.Create(record); err != nil {
		return nil, err
	}

	session.LatestAnalysis = attrs
	if err := a.sessionRepo.Save(session); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("session_id", sessionID.String()).
		Str("item_type", string(attrs.ItemType)).
		Str("category", attrs.Category).
		Msg("clothing analyzed")

	return record, nil
}

func (a *advisorService) Recommend(ctx context.Context, sessionID uuid.UUID, situation string) (*models.RecommendResponse, error) {
	session, err := a.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	profile, clothing, err := recommendationInputs(session)
	if err != nil {
		return nil, err
	}

	result, images, err := a.runPipeline(ctx, profile, clothing, situation)
	if err != nil {
		return nil, err
	}

	return &models.RecommendResponse{Result: *result, Images: images}, nil
}

// CreateRecommendationJob snapshots the session inputs into a queued job.
func (a *advisorService) CreateRecommendationJob(ctx context.Context, sessionID uuid.UUID, situation string) (*models.RecommendationJob, error) {
	session, err := a.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	profile, clothing, err := recommendationInputs(session)
	if err != nil {
		return nil, err
	}

	job := &models.RecommendationJob{
		ID:        uuid.New(),
		SessionID: sessionID,
		Situation: NormalizeSituation(situation),
		Profile:   profile,
		Clothing:  clothing,
		Status:    models.StatusQueued,
	}
	if err := a.jobRepo.Create(job); err != nil {
		return nil, err
	}

	a.metrics.Inc(ctx, metrics.RecommendationJobsTotal, map[string]string{"status": string(models.StatusQueued)}, 1)
	return job, nil
}

func (a *advisorService) ProcessJob(ctx context.Context, jobID uuid.UUID) error {
	claimed, err := a.jobRepo.MarkProcessing(jobID)
	if err != nil {
		return fmt.Errorf("failed to claim job: %w", err)
	}
	logger := zerolog.Ctx(ctx).With().Str("job_id", jobID.String()).Logger()
	if !claimed {
		logger.Debug().Msg("job already claimed, skipping")
		return nil
	}

	ctx = logger.WithContext(ctx)
	logger.Info().Msg("starting recommendation job")

	job, err := a.jobRepo.FindByID(jobID)
	if err != nil {
		a.failJob(ctx, jobID, err)
		return fmt.Errorf("failed to get recommendation job: %w", err)
	}

	result, images, err := a.runPipeline(ctx, job.Profile, job.Clothing, job.Situation)
	if err != nil {
		a.failJob(ctx, jobID, err)
		return err
	}

	if err := a.jobRepo.UpdateResult(jobID, &repositories.JobResultData{Result: result, Images: images}); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	a.metrics.Inc(ctx, metrics.RecommendationJobsTotal, map[string]string{"status": string(models.StatusCompleted)}, 1)
	logger.Info().Msg("recommendation job completed")
	return nil
}

func (a *advisorService) failJob(ctx context.Context, jobID uuid.UUID, cause error) {
	a.metrics.Inc(ctx, metrics.RecommendationJobsTotal, map[string]string{"status": string(models.StatusFailed)}, 1)
	if err := a.jobRepo.UpdateError(jobID, cause.Error()); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to record job error")
	}
}

// runPipeline composes the recommendation and generates one image per prompt.
func (a *advisorService) runPipeline(ctx context.Context, profile models.UserProfile, clothing models.ClothingAttributes, situation string) (*models.RecommendationResult, []models.GeneratedImage, error) {
	callCtx, cancel := withTimeout(ctx, a.requestTimeout)
	result, err := a.recommender.Recommend(callCtx, profile, clothing, situation)
	cancel()
	if err != nil {
		return nil, nil, err
	}

	images := GenerateAll(ctx, a.imageGenerator, result.ImagePrompts, a.retryPolicy)
	for _, img := range images {
		status := "ok"
		if img.URL == nil {
			status = "failed"
		}
		a.metrics.Inc(ctx, metrics.ImagesGeneratedTotal, map[string]string{"status": status}, 1)
	}

	return result, images, nil
}

func recommendationInputs(session *models.Session) (models.UserProfile, models.ClothingAttributes, error) {
	if session.Profile == nil {
		return models.UserProfile{}, models.ClothingAttributes{}, ErrProfileRequired
	}
	if session.LatestAnalysis == nil {
		return models.UserProfile{}, models.ClothingAttributes{}, ErrAnalysisRequired
	}
	return *session.Profile, *session.LatestAnalysis, nil
}

func (a *advisorService) DiagnosePersonalColor(ctx context.Context, sessionID uuid.UUID, face ImageInput) (*models.PersonalColorDiagnosis, error) {
	session, err := a.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := withTimeout(ctx, a.requestTimeout)
	defer cancel()

	diagnosis, err := a.diagnoser.Diagnose(callCtx, face)
	if err != nil {
		return nil, err
	}

	recognized := "unrecognized"
	if diagnosis.Recognized() {
		recognized = string(*diagnosis.Category)
	}
	a.metrics.Inc(ctx, metrics.PersonalColorDiagnosesTotal, map[string]string{"category": recognized}, 1)

	session.Diagnosis = diagnosis
	if err := a.sessionRepo.Save(session); err != nil {
		return nil, err
	}

	return diagnosis, nil
}

// ApplyPersonalColor copies the stored diagnosis onto the profile. Unrecognized
// diagnoses are rejected and leave the profile untouched.
func (a *advisorService) ApplyPersonalColor(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	session, err := a.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Diagnosis == nil {
		return nil, ErrNotRecognized
	}

	if session.Profile == nil {
		return nil, ErrProfileRequired
	}
	profile := *session.Profile
	if err := ApplyDiagnosis(&profile, *session.Diagnosis); err != nil {
		return nil, err
	}

	session.Profile = &profile
	if err := a.sessionRepo.Save(session); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("session_id", sessionID.String()).
		Str("skin_tone", string(profile.SkinTone)).
		Msg("personal color applied to profile")

	return session, nil
}

func (a *advisorService) Insights(ctx context.Context, sessionID uuid.UUID) (*models.StyleInsights, error) {
	session, err := a.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	records, err := a.analysisRepo.FindBySession(sessionID)
	if err != nil {
		return nil, err
	}

	insights := BuildInsights(sessionID, records, session.Profile)
	return &insights, nil
}
