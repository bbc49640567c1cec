package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Script writing (OpenAI-compatible API)
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// Text to speech
	ElevenLabsAPIKey  string `envconfig:"ELEVENLABS_API_KEY"`
	ElevenLabsBaseURL string `envconfig:"ELEVENLABS_BASE_URL" default:"https://api.elevenlabs.io/v1"`
	DefaultVoiceID    string `envconfig:"ELEVENLABS_DEFAULT_VOICE" default:"pNInz6obpgDQGcFmaJgB"`

	// Media search providers
	PexelsAPIKey  string `envconfig:"PEXELS_API_KEY"`
	PexelsBaseURL string `envconfig:"PEXELS_BASE_URL" default:"https://api.pexels.com"`
	GiphyAPIKey   string `envconfig:"GIPHY_API_KEY"`
	GiphyBaseURL  string `envconfig:"GIPHY_BASE_URL" default:"https://api.giphy.com"`

	// Video rendering service
	RenderAPIKey  string `envconfig:"RENDER_API_KEY"`
	RenderBaseURL string `envconfig:"RENDER_BASE_URL"`

	// Artifact storage (S3-compatible)
	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"talkover-artifacts"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`

	// External call bounds. Every upstream call runs under CallTimeout;
	// individual media searches use the tighter SearchTimeout so one slow
	// provider cannot stall the whole sourcing fan-out.
	CallTimeout   time.Duration `envconfig:"CALL_TIMEOUT" default:"60s"`
	SearchTimeout time.Duration `envconfig:"SEARCH_TIMEOUT" default:"15s"`
	RenderTimeout time.Duration `envconfig:"RENDER_TIMEOUT" default:"5m"`

	// Results requested per provider search call.
	SearchPageSize int `envconfig:"SEARCH_PAGE_SIZE" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.ElevenLabsAPIKey == "" {
		return fmt.Errorf("ELEVENLABS_API_KEY is required")
	}
	if c.PexelsAPIKey == "" {
		return fmt.Errorf("PEXELS_API_KEY is required")
	}
	if c.GiphyAPIKey == "" {
		return fmt.Errorf("GIPHY_API_KEY is required")
	}
	if c.RenderBaseURL == "" {
		return fmt.Errorf("RENDER_BASE_URL is required")
	}
	if c.SearchPageSize <= 0 {
		return fmt.Errorf("SEARCH_PAGE_SIZE must be positive")
	}
	return nil
}
