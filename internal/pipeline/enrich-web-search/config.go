package enrichwebsearch

import (
	"time"

	"truecheck/internal/common/config"
)

type Config struct {
	SearchAPIBaseURL string
	SearchAPIKey     string
	SearchEngineID   string
	Timeout          time.Duration
	MaxResults       int
	Safe             string
}

// LoadConfig maps the apis.web_search section onto the handler config.
func LoadConfig(cfg config.WebSearchConfig) *Config {
	return &Config{
		SearchAPIBaseURL: cfg.BaseURL,
		SearchAPIKey:     cfg.APIKey,
		SearchEngineID:   cfg.EngineID,
		Timeout:          config.GetDuration(cfg.Timeout),
		MaxResults:       cfg.MaxResults,
		Safe:             cfg.Safe,
	}
}

// Live reports whether both the key and the engine id are present.
func (c *Config) Live() bool {
	return c.SearchAPIKey != "" && c.SearchEngineID != ""
}
