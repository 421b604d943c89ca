package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"wearwise/style-advisor/internal/models"
)

type ClothingAnalyzer interface {
	Analyze(ctx context.Context, images ...ImageInput) (*models.ClothingAttributes, error)
}

type clothingAnalyzer struct {
	textService   TextVisionService
	promptBuilder *PromptBuilder
}

func NewClothingAnalyzer(textService TextVisionService) ClothingAnalyzer {
	return &clothingAnalyzer{
		textService:   textService,
		promptBuilder: NewPromptBuilder(),
	}
}

// Analyze implements ClothingAnalyzer.
func (a *clothingAnalyzer) Analyze(ctx context.Context, images ...ImageInput) (*models.ClothingAttributes, error) {
	usable := make([]ImageInput, 0, len(images))
	for _, img := range images {
		if len(img.Data) > 0 {
			usable = append(usable, img)
		}
	}
	if len(usable) == 0 {
		return nil, &ValidationError{Field: "image", Message: "an uploaded or captured clothing image is required"}
	}

	response, err := a.textService.GenerateText(ctx, a.promptBuilder.BuildClothingAnalysisPrompt(), usable...)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze clothing image: %w", err)
	}

	attrs, err := ParseClothingAttributes(response)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("response", response).Msg("clothing analysis response could not be parsed")
		return nil, err
	}

	return attrs, nil
}

// ParseClothingAttributes reads the analyzer's JSON reply. Missing or
// unreadable fields fall back to "N/A" so the record is always complete.
func ParseClothingAttributes(raw string) (*models.ClothingAttributes, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(obj, &fields); err != nil {
		return nil, &MalformedResponseError{Reason: "clothing attributes are not an object", Raw: string(obj), Err: err}
	}

	return &models.ClothingAttributes{
		ItemType:  models.ParseItemType(stringField(fields, "item_type")),
		Category:  stringField(fields, "category"),
		Color:     stringField(fields, "color"),
		Pattern:   stringField(fields, "pattern"),
		StyleTags: stringListField(fields, "style_tags"),
	}, nil
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	case []any:
		if tags := toStrings(v); len(tags) > 0 {
			return tags[0]
		}
	}
	return models.NotAvailable
}

func stringListField(fields map[string]any, key string) []string {
	var tags []string
	switch v := fields[key].(type) {
	case []any:
		tags = toStrings(v)
	case string:
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				tags = append(tags, s)
			}
		}
	}
	if len(tags) == 0 {
		return []string{models.NotAvailable}
	}
	return tags
}

func toStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
