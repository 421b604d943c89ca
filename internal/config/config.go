package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Image    ImageConfig
	Weather  WeatherConfig
	Speech   SpeechConfig
	Storage  StorageConfig
	Session  SessionConfig
	Worker   WorkerConfig
	TryOn    TryOnConfig
}

type ServerConfig struct {
	Port           string        `env:"PORT" envDefault:"3000"`
	Env            string        `env:"ENV" envDefault:"development"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
}

type DatabaseConfig struct {
	// Shared in-memory SQLite; contents are gone when the process exits.
	DSN string `env:"DATABASE_DSN" envDefault:"file::memory:?cache=shared"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

type ImageConfig struct {
	APIKey      string        `env:"OPENAI_API_KEY"`
	Model       string        `env:"IMAGE_MODEL" envDefault:"dall-e-3"`
	MaxAttempts int           `env:"IMAGE_MAX_ATTEMPTS" envDefault:"3"`
	RetryDelay  time.Duration `env:"IMAGE_RETRY_DELAY" envDefault:"5s"`
}

type WeatherConfig struct {
	APIKey    string `env:"WEATHER_API_KEY"`
	BaseURL   string `env:"WEATHER_BASE_URL" envDefault:"http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0/getVilageFcst"`
	DefaultNx int    `env:"WEATHER_DEFAULT_NX" envDefault:"60"`
	DefaultNy int    `env:"WEATHER_DEFAULT_NY" envDefault:"127"`
}

type SpeechConfig struct {
	Enabled         bool   `env:"TTS_ENABLED" envDefault:"false"`
	CredentialsFile string `env:"TTS_CREDENTIALS_FILE"`
	Voice           string `env:"TTS_VOICE" envDefault:"ko-KR-Wavenet-A"`
}

type StorageConfig struct {
	MaxFileSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
}

type SessionConfig struct {
	TTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`
}

type WorkerConfig struct {
	Concurrency  int           `env:"WORKER_CONCURRENCY" envDefault:"2"`
	PollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"10s"`
}

type TryOnConfig struct {
	URL string `env:"TRY_ON_URL" envDefault:"https://huggingface.co/spaces/levihsu/OOTDiffusion"`
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Using environment and default values.")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate fails fast on missing credentials, before any client is built.
func (c *Config) Validate() error {
	var missing []string
	if c.Gemini.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.Image.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.Weather.APIKey == "" {
		missing = append(missing, "WEATHER_API_KEY")
	}
	if c.Speech.Enabled && c.Speech.CredentialsFile == "" {
		missing = append(missing, "TTS_CREDENTIALS_FILE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.Image.MaxAttempts < 1 {
		return errors.New("IMAGE_MAX_ATTEMPTS must be at least 1")
	}
	if c.Worker.Concurrency < 1 {
		return errors.New("WORKER_CONCURRENCY must be at least 1")
	}
	if c.Worker.PollInterval <= 0 {
		return errors.New("WORKER_POLL_INTERVAL must be positive")
	}
	if c.Storage.MaxFileSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
