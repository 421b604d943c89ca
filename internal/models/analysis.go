package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is one entry of a session's clothing analysis history.
type AnalysisRecord struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"session_id"`
	Attributes ClothingAttributes `gorm:"serializer:json" json:"attributes"`
	MimeType   string             `gorm:"type:text" json:"mime_type"`
	CreatedAt  time.Time          `json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type StyleInsights struct {
	SessionID        uuid.UUID    `json:"session_id"`
	TotalAnalyses    int          `json:"total_analyses"`
	NonClothing      int          `json:"non_clothing"`
	ItemTypes        []CountEntry `json:"item_types"`
	Colors           []CountEntry `json:"colors"`
	StyleTags        []CountEntry `json:"style_tags"`
	PreferredMatches []string     `json:"preferred_matches"`
}
