package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSituation is used when the caller leaves the situation empty.
const DefaultSituation = "일상적인 상황"

type RecommendationResult struct {
	DisplayText    string   `json:"display_text"`
	ImagePrompts   []string `json:"image_prompts"`
	SearchKeywords []string `json:"search_keywords"`
}

// GeneratedImage carries a nil URL when generation failed after retries.
type GeneratedImage struct {
	SourcePrompt string  `json:"source_prompt"`
	URL          *string `json:"url"`
}

type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

type RecommendationJob struct {
	ID           uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID    uuid.UUID             `gorm:"type:uuid;not null;index" json:"session_id"`
	Situation    string                `gorm:"type:text" json:"situation"`
	Profile      UserProfile           `gorm:"serializer:json" json:"profile"`
	Clothing     ClothingAttributes    `gorm:"serializer:json" json:"clothing"`
	Status       JobStatus             `gorm:"not null;default:'queued'" json:"status"`
	Result       *RecommendationResult `gorm:"serializer:json" json:"result,omitempty"`
	Images       []GeneratedImage      `gorm:"serializer:json" json:"images,omitempty"`
	ErrorMessage *string               `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

func (RecommendationJob) TableName() string {
	return "recommendation_jobs"
}
