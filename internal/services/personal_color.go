package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"wearwise/style-advisor/internal/models"
)

var diagnosisResultPattern = regexp.MustCompile(`진단 결과\s*\**\s*:\s*([^\r\n]+)`)

type PersonalColorDiagnoser interface {
	Diagnose(ctx context.Context, face ImageInput) (*models.PersonalColorDiagnosis, error)
}

type personalColorDiagnoser struct {
	textService   TextVisionService
	promptBuilder *PromptBuilder
}

func NewPersonalColorDiagnoser(textService TextVisionService) PersonalColorDiagnoser {
	return &personalColorDiagnoser{
		textService:   textService,
		promptBuilder: NewPromptBuilder(),
	}
}

// Diagnose implements PersonalColorDiagnoser.
func (d *personalColorDiagnoser) Diagnose(ctx context.Context, face ImageInput) (*models.PersonalColorDiagnosis, error) {
	if len(face.Data) == 0 {
		return nil, &ValidationError{Field: "image", Message: "a face image is required"}
	}

	response, err := d.textService.GenerateText(ctx, d.promptBuilder.BuildPersonalColorPrompt(), face)
	if err != nil {
		return nil, fmt.Errorf("failed to diagnose personal color: %w", err)
	}

	diagnosis := ParseDiagnosis(response)
	return &diagnosis, nil
}

// ParseDiagnosis finds the "진단 결과" line and matches its value exactly
// against the four season labels. Anything else stays unrecognized.
func ParseDiagnosis(text string) models.PersonalColorDiagnosis {
	diagnosis := models.PersonalColorDiagnosis{RationaleText: strings.TrimSpace(text)}

	m := diagnosisResultPattern.FindStringSubmatch(text)
	if m == nil {
		return diagnosis
	}

	label := strings.Trim(strings.TrimSpace(m[1]), "*")
	label = strings.TrimSpace(label)
	diagnosis.RawLabel = label

	if tone, ok := models.SkinToneFromLabel(label); ok {
		diagnosis.Category = &tone
	}
	return diagnosis
}

// ApplyDiagnosis sets the profile's skin tone from a recognized diagnosis.
func ApplyDiagnosis(profile *models.UserProfile, diagnosis models.PersonalColorDiagnosis) error {
	if profile == nil {
		return ErrProfileRequired
	}
	if !diagnosis.Recognized() {
		return ErrNotRecognized
	}
	profile.SkinTone = *diagnosis.Category
	return nil
}
