package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the caller-owned state of one user's visit. Services receive it
// explicitly and never hold on to it.
type Session struct {
	ID             uuid.UUID               `json:"id"`
	Profile        *UserProfile            `json:"profile,omitempty"`
	LatestAnalysis *ClothingAttributes     `json:"latest_analysis,omitempty"`
	Diagnosis      *PersonalColorDiagnosis `json:"diagnosis,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}
