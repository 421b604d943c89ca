package services

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wearwise/style-advisor/internal/models"
)

const imageProvider = "openai"

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type openAIImageGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIImageGenerator builds a DALL-E client. The SDK's own retries are
// disabled so RetryPolicy is the only retry layer.
func NewOpenAIImageGenerator(apiKey, model string) ImageGenerator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &openAIImageGenerator{
		client: client,
		model:  model,
	}
}

func (g *openAIImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:  prompt,
		Model:   openai.ImageModel(g.model),
		Size:    openai.ImageGenerateParamsSize1024x1024,
		Quality: openai.ImageGenerateParamsQualityStandard,
		N:       openai.Int(1),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", &ServiceError{Provider: imageProvider, Err: err}
		}
		return "", NewTransientNetworkError(imageProvider, err)
	}

	if resp == nil || len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", &ServiceError{Provider: imageProvider, Err: errors.New("no image returned")}
	}

	return resp.Data[0].URL, nil
}

// GenerateWithRetry never fails: a nil URL marks a prompt whose generation
// failed after the policy gave up.
func GenerateWithRetry(ctx context.Context, gen ImageGenerator, prompt string, policy RetryPolicy) models.GeneratedImage {
	logger := zerolog.Ctx(ctx)
	image := models.GeneratedImage{SourcePrompt: prompt}

	var url string
	err := policy.Do(ctx, func(ctx context.Context, attempt int) error {
		var err error
		url, err = gen.GenerateImage(ctx, prompt)
		if err != nil && IsTransient(err) && attempt < policy.MaxAttempts {
			logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Int("max_attempts", policy.MaxAttempts).
				Dur("delay", policy.Delay).
				Msg("image generation connection error, retrying")
		}
		return err
	})
	if err != nil {
		logger.Error().Err(err).Str("prompt", prompt).Msg("image generation failed")
		return image
	}

	image.URL = &url
	return image
}

// GenerateAll generates one image per prompt concurrently, keeping prompt order.
func GenerateAll(ctx context.Context, gen ImageGenerator, prompts []string, policy RetryPolicy) []models.GeneratedImage {
	images := make([]models.GeneratedImage, len(prompts))

	g, gctx := errgroup.WithContext(ctx)
	for i, prompt := range prompts {
		g.Go(func() error {
			images[i] = GenerateWithRetry(gctx, gen, prompt, policy)
			return nil
		})
	}
	_ = g.Wait()

	return images
}
