package config

import (
	"time"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/coding"
)

// Config holds the front-end configuration.
// Loaded from ./config.yaml or $HOME/.codingfe/config.yaml when present.
type Config struct {
	Service ServiceCfg `mapstructure:"service" yaml:"service" json:"service"`
	App     AppCfg     `mapstructure:"app" yaml:"app" json:"app"`
}

// ServiceCfg configures access to the remote OCR and coding service.
type ServiceCfg struct {
	BaseURL        string `mapstructure:"base_url" yaml:"base_url" json:"base_url"`                         // Coding service endpoint
	HistoryBaseURL string `mapstructure:"history_base_url" yaml:"history_base_url" json:"history_base_url"` // Request history endpoint
	AuthToken      string `mapstructure:"auth_token" yaml:"auth_token" json:"auth_token"`                   // Bearer token (supports ${ENV_VAR} syntax)
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`    // Per-request timeout
}

// AppCfg holds settings for the surrounding application surface.
type AppCfg struct {
	AccessToken string `mapstructure:"access_token" yaml:"access_token" json:"access_token"` // Review surface gate (supports ${ENV_VAR} syntax)
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceCfg{
			BaseURL:        coding.DefaultBaseURL,
			HistoryBaseURL: coding.DefaultHistoryBaseURL,
			AuthToken:      "${API_AUTH_TOKEN}",
			TimeoutSeconds: int(coding.DefaultTimeout / time.Second),
		},
		App: AppCfg{
			AccessToken: "${APP_ACCESS_TOKEN}",
		},
	}
}
