package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wearwise/style-advisor/internal/models"
)

type AnalysisRepository interface {
	Create(record *models.AnalysisRecord) error
	FindBySession(sessionID uuid.UUID) ([]models.AnalysisRecord, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(record *models.AnalysisRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindBySession(sessionID uuid.UUID) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find analysis records: %w", err)
	}

	return records, nil
}
