package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func validViper() *viper.Viper {
	v := newViper()
	v.Set(KeyModel, "gpt-4o-mini")
	v.Set(KeyTemperature, "0.7")
	v.Set(KeyMaxTokens, "2000")
	v.Set(KeyStateTable, "outreach-state")
	return v
}

func TestFromViper_HappyPath(t *testing.T) {
	t.Setenv(KeyAPIKey, "")
	v := validViper()
	v.Set(KeyParamPrefix, "/outreach/")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	require.Equal(t, 0.7, cfg.OpenAI.Temperature)
	require.Equal(t, 2000, cfg.OpenAI.MaxTokens)
	require.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
	require.Equal(t, "outreach-state", cfg.StateTable)
	require.Equal(t, "/outreach", cfg.ParamPrefix)
	require.Equal(t, LoggingConfig{Level: "info", Format: "json"}, cfg.Logging)
	require.False(t, cfg.HasCredential())
}

func TestFromViper_MissingRequired(t *testing.T) {
	_, err := FromViper(newViper())
	require.Error(t, err)
	for _, key := range []string{KeyModel, KeyTemperature, KeyMaxTokens, KeyStateTable} {
		require.Contains(t, err.Error(), key)
	}
}

func TestFromViper_Malformed(t *testing.T) {
	v := validViper()
	v.Set(KeyTemperature, "warm")
	v.Set(KeyMaxTokens, "-5")

	_, err := FromViper(v)
	require.Error(t, err)
	require.Contains(t, err.Error(), KeyTemperature)
	require.Contains(t, err.Error(), "must be positive")
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv(KeyAPIKey, "sk-env")
	t.Setenv(KeyModel, "gpt-env")
	t.Setenv(KeyTemperature, "0.2")
	t.Setenv(KeyMaxTokens, "900")
	t.Setenv(KeyStateTable, "table")
	t.Setenv(KeyLogLevel, "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.HasCredential())
	require.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	require.Equal(t, "gpt-env", cfg.OpenAI.Model)
	require.Equal(t, "debug", cfg.Logging.Level)
}
