package callmodel

import (
	"time"

	"truecheck/internal/common/config"
	commonhttp "truecheck/internal/common/http"
)

type Config struct {
	BaseURL        string
	APIVersion     string
	Model          string
	Timeout        time.Duration // per attempt
	MaxRetries     int
	InitialBackoff time.Duration
}

// LoadConfig maps the apis.genai section onto the handler config.
func LoadConfig(cfg config.GenAIConfig) *Config {
	return &Config{
		BaseURL:        cfg.BaseURL,
		APIVersion:     cfg.APIVersion,
		Model:          cfg.Model,
		Timeout:        config.GetDuration(cfg.Timeout),
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: commonhttp.DefaultInitialBackoff,
	}
}
