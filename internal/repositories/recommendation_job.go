package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wearwise/style-advisor/internal/models"
)

var ErrNotFound = errors.New("record not found")

type RecommendationJobRepository interface {
	Create(job *models.RecommendationJob) error
	FindByID(id uuid.UUID) (*models.RecommendationJob, error)
	MarkProcessing(id uuid.UUID) (bool, error)
	UpdateResult(id uuid.UUID, data *JobResultData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.RecommendationJob, error)
}

type JobResultData struct {
	Result *models.RecommendationResult
	Images []models.GeneratedImage
}

type recommendationJobRepository struct {
	db *gorm.DB
}

func NewRecommendationJobRepository(db *gorm.DB) RecommendationJobRepository {
	return &recommendationJobRepository{db: db}
}

func (r *recommendationJobRepository) Create(job *models.RecommendationJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create recommendation job: %w", err)
	}
	return nil
}

func (r *recommendationJobRepository) FindByID(id uuid.UUID) (*models.RecommendationJob, error) {
	var job models.RecommendationJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recommendation job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find recommendation job: %w", err)
	}
	return &job, nil
}

// MarkProcessing moves a queued job to processing. It reports false when the
// job exists but was already claimed.
func (r *recommendationJobRepository) MarkProcessing(id uuid.UUID) (bool, error) {
	result := r.db.Model(&models.RecommendationJob{}).
		Where("id = ? AND status = ?", id, models.StatusQueued).
		Updates(map[string]interface{}{
			"status":     models.StatusProcessing,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		if _, err := r.FindByID(id); err != nil {
			return false, err
		}
		return false, nil
	}

	return true, nil
}

// UpdateResult stores the outcome and marks the job completed.
func (r *recommendationJobRepository) UpdateResult(id uuid.UUID, data *JobResultData) error {
	job, err := r.FindByID(id)
	if err != nil {
		return err
	}

	job.Status = models.StatusCompleted
	job.Result = data.Result
	job.Images = data.Images
	job.ErrorMessage = nil

	if err := r.db.Save(job).Error; err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}

	return nil
}

func (r *recommendationJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.RecommendationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("recommendation job %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *recommendationJobRepository) FindPendingJobs(limit int) ([]models.RecommendationJob, error) {
	var jobs []models.RecommendationJob
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return jobs, nil
}
