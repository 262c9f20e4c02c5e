// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Backends  BackendsConfig  `mapstructure:"backends"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string   `mapstructure:"address"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// BackendsConfig holds settings for the two outbound API dependencies.
type BackendsConfig struct {
	LanguageModel LanguageModelConfig `mapstructure:"language_model"`
	Search        SearchConfig        `mapstructure:"search"`
}

// LanguageModelConfig configures the asynchronous completion backend.
// APIKey may legitimately be empty at load time; the router raises
// CONFIGURATION_MISSING on the first Ask instead.
type LanguageModelConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	Timeout         int    `mapstructure:"timeout"`       // milliseconds, per HTTP round-trip
	PollInterval    int    `mapstructure:"poll_interval"` // milliseconds
	MaxPollAttempts int    `mapstructure:"max_poll_attempts"`
}

// SearchConfig configures the real-time web-search backend. The API key is
// optional; without it the search adapter reports itself unavailable.
type SearchConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

// RateLimitConfig configures the per-client fixed window limiter. An empty
// redis address disables rate limiting entirely.
type RateLimitConfig struct {
	Redis       RedisConfig `mapstructure:"redis"`
	MaxRequests int         `mapstructure:"max_requests"`
	Window      int         `mapstructure:"window"` // milliseconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
