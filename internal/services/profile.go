package services

import (
	"fmt"
	"strings"

	"wearwise/style-advisor/internal/models"
)

// ValidateProfile checks ranges and enums, returning the profile with
// preferred styles trimmed and de-duplicated.
func ValidateProfile(p models.UserProfile) (models.UserProfile, error) {
	if err := ValidateMeasurements(p.Gender, p.HeightCM, p.WeightKG); err != nil {
		return p, err
	}
	if !p.SkinTone.Valid() {
		return p, &ValidationError{Field: "skin_tone", Message: "must be one of spring_warm, summer_cool, autumn_warm, winter_cool"}
	}

	styles := make([]string, 0, len(p.PreferredStyles))
	seen := make(map[string]struct{})
	for _, s := range p.PreferredStyles {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		styles = append(styles, s)
	}
	p.PreferredStyles = styles

	return p, nil
}

// ValidateMeasurements checks the inputs the size estimator depends on. The
// range checks are written so NaN fails them.
func ValidateMeasurements(gender models.Gender, heightCM, weightKG float64) error {
	if !gender.Valid() {
		return &ValidationError{Field: "gender", Message: "must be M or F"}
	}
	if !(heightCM >= models.MinHeightCM && heightCM <= models.MaxHeightCM) {
		return &ValidationError{Field: "height_cm", Message: fmt.Sprintf("must be between %d and %d", models.MinHeightCM, models.MaxHeightCM)}
	}
	if !(weightKG >= models.MinWeightKG && weightKG <= models.MaxWeightKG) {
		return &ValidationError{Field: "weight_kg", Message: fmt.Sprintf("must be between %d and %d", models.MinWeightKG, models.MaxWeightKG)}
	}
	return nil
}
