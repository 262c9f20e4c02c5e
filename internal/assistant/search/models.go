// internal/assistant/search/models.go
package search

// Source is one citation entry. The provider returns bare URLs, so Title is
// a generated placeholder and Snippet stays unset on this path.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Result is the parsed search answer with its citation list.
type Result struct {
	Answer    string   `json:"answer"`
	Sources   []Source `json:"sources"`
	Citations []string `json:"citations"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model                  string        `json:"model"`
	Messages               []chatMessage `json:"messages"`
	MaxTokens              int           `json:"max_tokens"`
	Temperature            float64       `json:"temperature"`
	ReturnCitations        bool          `json:"return_citations"`
	ReturnImages           bool          `json:"return_images"`
	ReturnRelatedQuestions bool          `json:"return_related_questions"`
	SearchRecencyFilter    string        `json:"search_recency_filter"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}
