package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

const (
	speechProvider    = "google-tts"
	maxNarrationBytes = 4800
)

var (
	spanTagPattern      = regexp.MustCompile(`</?span[^>]*>`)
	markdownMarkPattern = regexp.MustCompile("[#*_`>]+")
	blankLinesPattern   = regexp.MustCompile(`\n{2,}`)
)

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Close() error
}

type googleSpeechSynthesizer struct {
	client *texttospeech.Client
	voice  string
}

func NewGoogleSpeechSynthesizer(ctx context.Context, credentialsFile, voice string) (SpeechSynthesizer, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	return &googleSpeechSynthesizer{
		client: client,
		voice:  voice,
	}, nil
}

func (s *googleSpeechSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = NarrationText(text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Message: "nothing to read aloud"}
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "ko-KR",
			Name:         s.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, &ServiceError{Provider: speechProvider, Err: err}
	}

	zerolog.Ctx(ctx).Debug().
		Int("chars", len([]rune(text))).
		Int("audio_bytes", len(resp.AudioContent)).
		Msg("speech synthesized")

	return resp.AudioContent, nil
}

func (s *googleSpeechSynthesizer) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

type disabledSpeechSynthesizer struct{}

// NewDisabledSpeechSynthesizer is used when TTS is switched off in config.
func NewDisabledSpeechSynthesizer() SpeechSynthesizer {
	return disabledSpeechSynthesizer{}
}

func (disabledSpeechSynthesizer) Synthesize(context.Context, string) ([]byte, error) {
	return nil, ErrSpeechDisabled
}

func (disabledSpeechSynthesizer) Close() error {
	return nil
}

// NarrationText drops markup from recommendation text so it reads naturally.
// The result is cut on a rune boundary to stay under the 5000-byte TTS
// request limit.
func NarrationText(displayText string) string {
	text := spanTagPattern.ReplaceAllString(displayText, "")
	text = markdownMarkPattern.ReplaceAllString(text, "")
	text = blankLinesPattern.ReplaceAllString(text, "\n")
	text = strings.TrimSpace(text)

	if len(text) > maxNarrationBytes {
		cut := maxNarrationBytes
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
