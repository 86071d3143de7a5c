package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/coding"
)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("service.base_url", defaults.Service.BaseURL)
	viper.SetDefault("service.history_base_url", defaults.Service.HistoryBaseURL)
	viper.SetDefault("service.auth_token", defaults.Service.AuthToken)
	viper.SetDefault("service.timeout_seconds", defaults.Service.TimeoutSeconds)
	viper.SetDefault("app.access_token", defaults.App.AccessToken)

	// Environment variables with CODINGFE_ prefix
	viper.SetEnvPrefix("CODINGFE")
	viper.AutomaticEnv()

	// Deployments set these without the prefix
	_ = viper.BindEnv("service.base_url", "GCP_BASE_URL")
	_ = viper.BindEnv("service.history_base_url", "HISTORY_BASE_URL")
	_ = viper.BindEnv("service.auth_token", "API_AUTH_TOKEN")
	_ = viper.BindEnv("app.access_token", "APP_ACCESS_TOKEN")

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.codingfe")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// ToClientConfig converts the config into a coding client configuration.
// It resolves ${ENV_VAR} references in the auth token.
func (c *Config) ToClientConfig() coding.Config {
	return coding.Config{
		BaseURL:        c.Service.BaseURL,
		HistoryBaseURL: c.Service.HistoryBaseURL,
		AuthToken:      ResolveEnvVars(c.Service.AuthToken),
		Timeout:        time.Duration(c.Service.TimeoutSeconds) * time.Second,
	}
}

// AppAccessToken returns the review surface gate with ${ENV_VAR} references resolved.
func (c *Config) AppAccessToken() string {
	return ResolveEnvVars(c.App.AccessToken)
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# ai-coding-fe configuration
# Tokens use ${ENV_VAR} syntax to reference environment variables
# Set these in your shell or .env file: API_AUTH_TOKEN=xxx APP_ACCESS_TOKEN=xxx

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
