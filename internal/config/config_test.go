package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("OPENAI_API_KEY", "o")
	t.Setenv("WEATHER_API_KEY", "w")

	var cfg Config
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 3, cfg.Image.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.Image.RetryDelay)
	assert.Equal(t, 60, cfg.Weather.DefaultNx)
	assert.Equal(t, 127, cfg.Weather.DefaultNy)
	assert.Equal(t, "ko-KR-Wavenet-A", cfg.Speech.Voice)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, "https://huggingface.co/spaces/levihsu/OOTDiffusion", cfg.TryOn.URL)
	assert.NoError(t, cfg.Validate())
}

func TestValidateReportsMissingKeys(t *testing.T) {
	cfg := Config{
		Image:   ImageConfig{MaxAttempts: 3},
		Worker:  WorkerConfig{Concurrency: 1},
		Storage: StorageConfig{MaxFileSize: 1},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.Contains(t, err.Error(), "WEATHER_API_KEY")
}

func TestValidateRequiresCredentialsWhenSpeechEnabled(t *testing.T) {
	cfg := Config{
		Gemini:  GeminiConfig{APIKey: "g"},
		Image:   ImageConfig{APIKey: "o", MaxAttempts: 3},
		Weather: WeatherConfig{APIKey: "w"},
		Speech:  SpeechConfig{Enabled: true},
		Worker:  WorkerConfig{Concurrency: 1},
		Storage: StorageConfig{MaxFileSize: 1},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TTS_CREDENTIALS_FILE")
}

func TestValidateRejectsNonPositivePollInterval(t *testing.T) {
	cfg := Config{
		Gemini:  GeminiConfig{APIKey: "g"},
		Image:   ImageConfig{APIKey: "o", MaxAttempts: 3},
		Weather: WeatherConfig{APIKey: "w"},
		Worker:  WorkerConfig{Concurrency: 1},
		Storage: StorageConfig{MaxFileSize: 1},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKER_POLL_INTERVAL")

	cfg.Worker.PollInterval = time.Second
	assert.NoError(t, cfg.Validate())
}
