// internal/assistant/llm/models.go
package llm

// CompleteOptions controls a single completion request.
type CompleteOptions struct {
	EnableSearchTool bool
	MaxOutputTokens  int
	ReasoningEffort  string
}

// responseStatus models the backend's asynchronous completion lifecycle.
type responseStatus string

const (
	statusQueued     responseStatus = "queued"
	statusInProgress responseStatus = "in_progress"
	statusIncomplete responseStatus = "incomplete"
	statusCompleted  responseStatus = "completed"
	statusFailed     responseStatus = "failed"
)

// isTerminal reports whether polling should stop for this status. An
// incomplete response keeps polling until the attempt cap; whatever state is
// reached at the cap is accepted as-is.
func (s responseStatus) isTerminal() bool {
	return s == statusCompleted || s == statusFailed
}

type responseRequest struct {
	Model           string         `json:"model"`
	Input           string         `json:"input"`
	MaxOutputTokens int            `json:"max_output_tokens,omitempty"`
	Tools           []toolSpec     `json:"tools,omitempty"`
	Reasoning       *reasoningSpec `json:"reasoning,omitempty"`
	Text            *textSpec      `json:"text,omitempty"`
}

type toolSpec struct {
	Type string `json:"type"`
}

type reasoningSpec struct {
	Effort string `json:"effort"`
}

type textSpec struct {
	Verbosity string `json:"verbosity"`
}

type responseObject struct {
	ID     string         `json:"id"`
	Status responseStatus `json:"status"`
	Output []outputItem   `json:"output"`
}

type outputItem struct {
	Type    string        `json:"type"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
