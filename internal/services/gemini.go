package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const geminiProvider = "gemini"

// ImageInput is an uploaded image held in memory.
type ImageInput struct {
	Data     []byte
	MimeType string
}

type TextVisionService interface {
	GenerateText(ctx context.Context, prompt string, images ...ImageInput) (string, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiService(ctx context.Context, apiKey, modelName string) (TextVisionService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   modelName,
		temperature: 0.7,
	}, nil
}

// GenerateText implements TextVisionService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, images ...ImageInput) (string, error) {
	logger := zerolog.Ctx(ctx)

	parts := make([]*genai.Part, 0, len(images)+1)
	parts = append(parts, genai.NewPartFromText(prompt))
	for _, img := range images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MimeType))
	}

	config := &genai.GenerateContentConfig{
		Temperature:     &g.temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		config,
	)
	if err != nil {
		logger.Error().Err(err).Str("model", g.modelName).Msg("gemini request failed")
		return "", &ServiceError{Provider: geminiProvider, Err: err}
	}

	if resp == nil {
		return "", &ServiceError{Provider: geminiProvider, Err: errors.New("nil response")}
	}

	text := resp.Text()
	if text == "" {
		reason := "no text content in response"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", &ServiceError{Provider: geminiProvider, Err: errors.New(reason)}
	}

	logger.Debug().
		Str("model", g.modelName).
		Int("images", len(images)).
		Int("response_chars", len(text)).
		Msg("gemini response received")

	return text, nil
}
