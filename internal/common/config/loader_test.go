// internal/common/config/loader_test.go
package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears the given variables for the test duration. t.Setenv
// registers the restore; the unset makes os.ExpandEnv see them as absent.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// ==========================
// End-To-End Load
// ==========================

func TestLoad_UnsetPlaceholdersBecomeEmpty(t *testing.T) {
	unsetEnv(t, "OPENAI_API_KEY", "PERPLEXITY_API_KEY", "REDIS_ADDRESS", "REDIS_PASSWORD", "APP_ENVIRONMENT")

	cfg, err := Load()
	require.NoError(t, err)

	// The shipped config file must actually have been read; defaults alone
	// leave the version blank.
	assert.Equal(t, "1.0.0", cfg.App.Version)

	// Unresolved ${...} placeholders must collapse to empty strings. A
	// surviving literal would make the adapters report themselves available
	// and send the placeholder text as a bearer token.
	assert.Empty(t, cfg.Backends.LanguageModel.APIKey)
	assert.Empty(t, cfg.Backends.Search.APIKey)
	assert.Empty(t, cfg.RateLimit.Redis.Address)
	assert.Empty(t, cfg.RateLimit.Redis.Password)
}

func TestLoad_PlaceholderExpandsFromEnv(t *testing.T) {
	unsetEnv(t, "PERPLEXITY_API_KEY", "REDIS_ADDRESS", "REDIS_PASSWORD", "APP_ENVIRONMENT")
	t.Setenv("OPENAI_API_KEY", "sk-live")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-live", cfg.Backends.LanguageModel.APIKey)
	assert.Empty(t, cfg.Backends.Search.APIKey)
}

// ==========================
// Defaults
// ==========================

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "svatbot-assistant", cfg.App.Name)
	assert.Equal(t, ":8086", cfg.Server.Address)
	assert.Equal(t, 90000, cfg.Server.WriteTimeout)

	assert.Equal(t, "https://api.openai.com/v1", cfg.Backends.LanguageModel.BaseURL)
	assert.Equal(t, "gpt-5-mini", cfg.Backends.LanguageModel.Model)
	assert.Equal(t, 2000, cfg.Backends.LanguageModel.PollInterval)
	assert.Equal(t, 20, cfg.Backends.LanguageModel.MaxPollAttempts)

	assert.Equal(t, "https://api.perplexity.ai", cfg.Backends.Search.BaseURL)
	assert.Equal(t, "sonar", cfg.Backends.Search.Model)
	assert.Equal(t, 1000, cfg.Backends.Search.MaxTokens)

	assert.Equal(t, 30, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 60000, cfg.RateLimit.Window)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestApplyDefaults_DoesNotOverwrite(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Address = ":9999"
	cfg.Backends.LanguageModel.Model = "gpt-5"
	cfg.Backends.LanguageModel.MaxPollAttempts = 5

	applyDefaults(cfg)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "gpt-5", cfg.Backends.LanguageModel.Model)
	assert.Equal(t, 5, cfg.Backends.LanguageModel.MaxPollAttempts)
}

// ==========================
// Validation
// ==========================

func TestValidateConfig(t *testing.T) {
	valid := &Config{}
	applyDefaults(valid)
	require.NoError(t, validateConfig(valid))

	noAddress := &Config{}
	applyDefaults(noAddress)
	noAddress.Server.Address = ""
	assert.Error(t, validateConfig(noAddress))

	noPolling := &Config{}
	applyDefaults(noPolling)
	noPolling.Backends.LanguageModel.MaxPollAttempts = -1
	assert.Error(t, validateConfig(noPolling))
}

func TestValidateConfig_APIKeysNotRequired(t *testing.T) {
	// Missing credentials must pass startup validation. They only surface
	// later as CONFIGURATION_MISSING on the first Ask.
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Backends.LanguageModel.APIKey = ""
	cfg.Backends.Search.APIKey = ""

	assert.NoError(t, validateConfig(cfg))
}

// ==========================
// Env Override
// ==========================

func TestOverrideEmptyConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("PERPLEXITY_API_KEY", "pplx-from-env")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg := &Config{}
	overrideEmptyConfig(cfg)

	assert.Equal(t, "sk-from-env", cfg.Backends.LanguageModel.APIKey)
	assert.Equal(t, "pplx-from-env", cfg.Backends.Search.APIKey)
	assert.Equal(t, "localhost:6379", cfg.RateLimit.Redis.Address)
}

func TestOverrideEmptyConfig_KeepsExplicitValue(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg := &Config{}
	cfg.Backends.LanguageModel.APIKey = "sk-explicit"
	overrideEmptyConfig(cfg)

	assert.Equal(t, "sk-explicit", cfg.Backends.LanguageModel.APIKey)
}

// ==========================
// Helpers
// ==========================

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, GetDuration(2000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
