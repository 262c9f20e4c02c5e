// internal/assistant/router/models.go
package router

import "github.com/SpdVpr/svatbot-assistant/internal/assistant/search"

// Provider records which execution path actually produced the answer. It may
// be coarser than the classifier's query type.
type Provider string

const (
	ProviderLanguageModel Provider = "language-model"
	ProviderSearch        Provider = "search"
	ProviderHybrid        Provider = "hybrid"
)

// ChatTurn is one already-serialized prior dialogue turn.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Task struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type Guest struct {
	Name string `json:"name"`
	RSVP string `json:"rsvp,omitempty"`
}

// Context is the caller-supplied structured payload. The router inspects it
// only to decide whether meaningful personal context exists and to forward
// prior turns as dialogue history; it never mutates or persists it.
type Context struct {
	WeddingDate string     `json:"weddingDate,omitempty"`
	Budget      float64    `json:"budget,omitempty"`
	GuestCount  int        `json:"guestCount,omitempty"`
	Venue       string     `json:"venue,omitempty"`
	Tasks       []Task     `json:"tasks,omitempty"`
	Guests      []Guest    `json:"guests,omitempty"`
	History     []ChatTurn `json:"history,omitempty"`
}

// HasMeaningful reports whether at least one recognized personal field is
// populated. Prior chat turns alone do not count as personal context.
func (c *Context) HasMeaningful() bool {
	if c == nil {
		return false
	}
	return c.WeddingDate != "" ||
		c.Venue != "" ||
		c.Budget > 0 ||
		c.GuestCount > 0 ||
		len(c.Tasks) > 0 ||
		len(c.Guests) > 0
}

// AskRequest is the router's single entry point input. PreferFreshness
// selects the two-stage retrieval path that prioritizes result recency over
// model-side retrieval quality.
type AskRequest struct {
	Query           string   `json:"query"`
	Context         *Context `json:"context,omitempty"`
	SystemPrompt    string   `json:"systemPrompt,omitempty"`
	PreferFreshness bool     `json:"preferFreshness,omitempty"`
}

// Response is the normalized envelope. Answer is never blank; Reasoning is a
// one-line diagnostic of the path taken, never parsed by callers.
type Response struct {
	Answer    string          `json:"answer"`
	Sources   []search.Source `json:"sources"`
	Provider  Provider        `json:"provider"`
	Reasoning string          `json:"reasoning"`
}
