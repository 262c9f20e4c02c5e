// internal/assistant/search/config.go
package search

import "time"

// shortContextLimit is the ceiling above which caller context is dropped
// (never truncated) to keep the search call fast and cheap.
const shortContextLimit = 100

// Config holds the search backend settings. Defaults come from the
// application config layer; this package never fills its own.
type Config struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}
