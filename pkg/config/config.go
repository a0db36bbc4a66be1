// Package config loads engine configuration from config.yaml with
// environment variable overrides.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// Config holds all configuration for the engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys, passwords) must only come from environment variables.
type Config struct {
	Env string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	// Models holds the two configured model roles.
	Models ModelsConfig `yaml:"models"`

	// Generation holds generation behavior toggles.
	Generation GenerationConfig `yaml:"generation"`

	// Usage holds usage accounting settings.
	Usage UsageConfig `yaml:"usage"`
}

// ModelsConfig holds the accuracy and turbo model identities. The accuracy
// model serves final SQL generation; the turbo model serves the cheaper
// selection and judgement operations. When the turbo model is unset, its
// traffic goes to the accuracy model.
type ModelsConfig struct {
	Accuracy ModelConfig `yaml:"accuracy"`
	Turbo    ModelConfig `yaml:"turbo"`
}

// ModelConfig is one model endpoint definition.
type ModelConfig struct {
	Name     string `yaml:"name" env-default:""`
	Provider string `yaml:"provider" env-default:"openai"`
	BaseURL  string `yaml:"base_url" env-default:""`
	Model    string `yaml:"model" env-default:""`
	// APIKey comes from the environment only, never YAML.
	APIKey string `yaml:"-"`
}

// GenerationConfig holds generation behavior toggles.
type GenerationConfig struct {
	// QueryEnumValues enables fetching actual enum column values from the
	// database before final generation when the request filters on one.
	QueryEnumValues bool `yaml:"query_enum_values" env:"QUERY_ENUM_VALUES" env-default:"true"`
}

// UsageConfig holds token usage accounting settings.
type UsageConfig struct {
	// QueueSize is the buffer size of the async usage recorder.
	QueueSize int `yaml:"queue_size" env:"USAGE_QUEUE_SIZE" env-default:"100"`
}

// envKeys binds role names to the environment variables carrying secrets.
type envKeys struct {
	AccuracyAPIKey string `env:"ACCURACY_MODEL_API_KEY" env-default:""`
	TurboAPIKey    string `env:"TURBO_MODEL_API_KEY" env-default:""`
}

// Load reads configuration from the given YAML path with environment
// variable overrides. API keys come exclusively from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var keys envKeys
	if err := cleanenv.ReadEnv(&keys); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.Models.Accuracy.APIKey = keys.AccuracyAPIKey
	cfg.Models.Turbo.APIKey = keys.TurboAPIKey

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Models.Accuracy.Model == "" {
		return fmt.Errorf("models.accuracy.model is required")
	}
	return nil
}

// AccuracyIdentity returns the accuracy model identity.
func (c *Config) AccuracyIdentity() *models.ModelIdentity {
	return c.Models.Accuracy.identity()
}

// TurboIdentity returns the turbo model identity, or nil when unset.
func (c *Config) TurboIdentity() *models.ModelIdentity {
	if c.Models.Turbo.Model == "" {
		return nil
	}
	return c.Models.Turbo.identity()
}

func (m *ModelConfig) identity() *models.ModelIdentity {
	return &models.ModelIdentity{
		Name:     m.Name,
		Provider: models.ModelProvider(m.Provider),
		BaseURL:  m.BaseURL,
		Model:    m.Model,
		APIKey:   m.APIKey,
	}
}
