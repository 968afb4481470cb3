// Package config loads process configuration from the environment and an
// optional .env file. It is read once in main.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyAPIKey      = "OPEN_AI_API_KEY"
	KeyModel       = "OPEN_AI_MODEL"
	KeyTemperature = "OPEN_AI_TEMPERATURE"
	KeyMaxTokens   = "OPEN_AI_MAX_TOKENS"
	KeyBaseURL     = "OPEN_AI_BASE_URL"
	KeyStateTable  = "STATE_TABLE"
	KeyParamPrefix = "PARAM_PREFIX"
	KeyLogLevel    = "LOG_LEVEL"
	KeyLogFormat   = "LOG_FORMAT"
)

// Config is the resolved process configuration.
type Config struct {
	OpenAI     OpenAIConfig
	StateTable string
	// ParamPrefix locates the SSM credential when APIKey is empty.
	ParamPrefix string
	Logging     LoggingConfig
}

type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	BaseURL     string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// HasCredential reports whether a completion credential is configured
// directly through the environment.
func (c Config) HasCredential() bool {
	return c.OpenAI.APIKey != ""
}

// Load reads .env (if present) and the environment. Missing or malformed
// required settings are returned as a single error.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(KeyBaseURL, "https://api.openai.com/v1")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var errs []error

	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(v.GetString(KeyAPIKey)),
			Model:   strings.TrimSpace(v.GetString(KeyModel)),
			BaseURL: strings.TrimSpace(v.GetString(KeyBaseURL)),
		},
		StateTable:  strings.TrimSpace(v.GetString(KeyStateTable)),
		ParamPrefix: strings.TrimRight(strings.TrimSpace(v.GetString(KeyParamPrefix)), "/"),
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
	}

	if cfg.OpenAI.Model == "" {
		errs = append(errs, missing(KeyModel))
	}
	if cfg.StateTable == "" {
		errs = append(errs, missing(KeyStateTable))
	}

	if raw := strings.TrimSpace(v.GetString(KeyTemperature)); raw == "" {
		errs = append(errs, missing(KeyTemperature))
	} else if t, err := strconv.ParseFloat(raw, 64); err != nil {
		errs = append(errs, fmt.Errorf("config: %s: %w", KeyTemperature, err))
	} else {
		cfg.OpenAI.Temperature = t
	}

	if raw := strings.TrimSpace(v.GetString(KeyMaxTokens)); raw == "" {
		errs = append(errs, missing(KeyMaxTokens))
	} else if n, err := strconv.Atoi(raw); err != nil {
		errs = append(errs, fmt.Errorf("config: %s: %w", KeyMaxTokens, err))
	} else if n <= 0 {
		errs = append(errs, fmt.Errorf("config: %s must be positive", KeyMaxTokens))
	} else {
		cfg.OpenAI.MaxTokens = n
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func missing(key string) error {
	return fmt.Errorf("config: required setting %s is not set", key)
}
