// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.Reset()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")
	if rootDir := findProjectRoot(); rootDir != "" {
		viper.AddConfigPath(filepath.Join(rootDir, "configs"))
	}

	// Enable ENV override like OPENAI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if not present
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from multiple possible locations so the binary and
// the tests can both find it.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values. A placeholder
// whose variable is unset expands to the empty string; it must never survive
// as a literal, or the adapters would treat the placeholder text as a
// configured credential.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				v.Set(key, os.ExpandEnv(strVal))
			}
		}
	}
}

// overrideEmptyConfig applies direct env fallbacks for values that are still
// empty after expansion.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Backends.LanguageModel.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.Backends.LanguageModel.APIKey = val
		}
	}

	if cfg.Backends.Search.APIKey == "" {
		if val := os.Getenv("PERPLEXITY_API_KEY"); val != "" {
			cfg.Backends.Search.APIKey = val
		}
	}

	if cfg.RateLimit.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.RateLimit.Redis.Address = val
		}
	}
	if cfg.RateLimit.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.RateLimit.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "svatbot-assistant"
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8086"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		// Ask calls can legitimately hold the connection through the whole
		// polling window (40s), plus the search round-trip.
		cfg.Server.WriteTimeout = 90000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	// Language model defaults
	if cfg.Backends.LanguageModel.BaseURL == "" {
		cfg.Backends.LanguageModel.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Backends.LanguageModel.Model == "" {
		cfg.Backends.LanguageModel.Model = "gpt-5-mini"
	}
	if cfg.Backends.LanguageModel.Timeout == 0 {
		cfg.Backends.LanguageModel.Timeout = 60000
	}
	if cfg.Backends.LanguageModel.PollInterval == 0 {
		cfg.Backends.LanguageModel.PollInterval = 2000
	}
	if cfg.Backends.LanguageModel.MaxPollAttempts == 0 {
		cfg.Backends.LanguageModel.MaxPollAttempts = 20
	}

	// Search defaults
	if cfg.Backends.Search.BaseURL == "" {
		cfg.Backends.Search.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Backends.Search.Model == "" {
		cfg.Backends.Search.Model = "sonar"
	}
	if cfg.Backends.Search.MaxTokens == 0 {
		cfg.Backends.Search.MaxTokens = 1000
	}
	if cfg.Backends.Search.Timeout == 0 {
		cfg.Backends.Search.Timeout = 30000
	}

	// Rate limit defaults
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 30
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = 60000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields. Backend API keys
// are deliberately not checked here: the language model key is enforced
// lazily on the first Ask and the search key is optional.
func validateConfig(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}

	if cfg.Backends.LanguageModel.BaseURL == "" {
		return fmt.Errorf("backends.language_model.base_url is required")
	}
	if cfg.Backends.Search.BaseURL == "" {
		return fmt.Errorf("backends.search.base_url is required")
	}

	if cfg.Backends.LanguageModel.MaxPollAttempts < 1 {
		return fmt.Errorf("backends.language_model.max_poll_attempts must be positive")
	}

	return nil
}
