// internal/assistant/llm/config.go
package llm

import "time"

// Config holds the completion backend settings. Defaults come from the
// application config layer; this package never fills its own.
type Config struct {
	BaseURL         string
	APIKey          string
	Model           string
	Timeout         time.Duration // per HTTP round-trip, not per completion
	PollInterval    time.Duration
	MaxPollAttempts int
}
