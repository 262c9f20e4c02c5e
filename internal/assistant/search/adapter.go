// internal/assistant/search/adapter.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/SpdVpr/svatbot-assistant/internal/common/errors"
	commonhttp "github.com/SpdVpr/svatbot-assistant/internal/common/http"
	"github.com/SpdVpr/svatbot-assistant/internal/common/logger"
	"github.com/SpdVpr/svatbot-assistant/internal/common/metrics"
)

const backendName = "search"

// Adapter is a thin client over a real-time web-search answer provider with
// a chat-completions-shaped endpoint. One synchronous POST per search, no
// retries at this layer.
type Adapter struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewAdapter(config *Config, log logger.Logger) *Adapter {
	return &Adapter{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"backend": backendName,
		}),
	}
}

// Available reports whether the optional search credential is configured.
func (a *Adapter) Available() bool {
	return a.config.APIKey != ""
}

// Search runs one deterministic search call. shortContext is forwarded as a
// system instruction only when present and under the character limit; longer
// context is dropped outright.
func (a *Adapter) Search(ctx context.Context, query, shortContext string) (*Result, error) {
	if !a.Available() {
		return nil, apperrors.NewSearchUnavailableError()
	}

	messages := []chatMessage{}
	if shortContext != "" && len(shortContext) <= shortContextLimit {
		messages = append(messages, chatMessage{Role: "system", Content: shortContext})
	}
	messages = append(messages, chatMessage{Role: "user", Content: query})

	payload := chatRequest{
		Model:                  a.config.Model,
		Messages:               messages,
		MaxTokens:              a.config.MaxTokens,
		Temperature:            0,
		ReturnCitations:        true,
		ReturnImages:           false,
		ReturnRelatedQuestions: false,
		SearchRecencyFilter:    "month",
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", a.config.BaseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		metrics.BackendCallsTotal.WithLabelValues(backendName, "error").Inc()
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		metrics.BackendCallsTotal.WithLabelValues(backendName, "error").Inc()
		return nil, apperrors.NewBackendHTTPError(backendName, resp.StatusCode, string(raw))
	}

	var apiResponse chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	metrics.BackendCallsTotal.WithLabelValues(backendName, "ok").Inc()
	metrics.BackendCallDuration.WithLabelValues(backendName).Observe(time.Since(start).Seconds())

	result := &Result{
		Citations: apiResponse.Citations,
		Sources:   mapCitations(apiResponse.Citations),
	}
	if len(apiResponse.Choices) > 0 {
		result.Answer = apiResponse.Choices[0].Message.Content
	}

	a.logger.Info("search completed", map[string]interface{}{
		"citationCount": len(apiResponse.Citations),
		"answerChars":   len(result.Answer),
	})

	return result, nil
}

// mapCitations converts the provider's flat URL list 1:1 into sources with
// generated placeholder titles; the provider supplies no titles or snippets.
func mapCitations(citations []string) []Source {
	sources := make([]Source, 0, len(citations))
	for i, url := range citations {
		sources = append(sources, Source{
			Title: fmt.Sprintf("Source %d", i+1),
			URL:   url,
		})
	}
	return sources
}
