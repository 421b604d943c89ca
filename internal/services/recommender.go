package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"wearwise/style-advisor/internal/models"
)

type Recommender interface {
	Recommend(ctx context.Context, profile models.UserProfile, clothing models.ClothingAttributes, situation string) (*models.RecommendationResult, error)
}

type recommender struct {
	textService   TextVisionService
	promptBuilder *PromptBuilder
}

func NewRecommender(textService TextVisionService) Recommender {
	return &recommender{
		textService:   textService,
		promptBuilder: NewPromptBuilder(),
	}
}

// Recommend implements Recommender. It succeeds with however many image
// prompts the reply actually contains.
func (r *recommender) Recommend(ctx context.Context, profile models.UserProfile, clothing models.ClothingAttributes, situation string) (*models.RecommendationResult, error) {
	situation = NormalizeSituation(situation)
	prompt := r.promptBuilder.BuildRecommendationPrompt(profile, clothing, situation)

	response, err := r.textService.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendation: %w", err)
	}

	result := ExtractRecommendation(response)
	zerolog.Ctx(ctx).Info().
		Int("image_prompts", len(result.ImagePrompts)).
		Int("search_keywords", len(result.SearchKeywords)).
		Msg("recommendation composed")

	return &result, nil
}

func NormalizeSituation(situation string) string {
	if s := strings.TrimSpace(situation); s != "" {
		return s
	}
	return models.DefaultSituation
}
