// internal/assistant/llm/adapter.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/SpdVpr/svatbot-assistant/internal/common/errors"
	commonhttp "github.com/SpdVpr/svatbot-assistant/internal/common/http"
	"github.com/SpdVpr/svatbot-assistant/internal/common/logger"
	"github.com/SpdVpr/svatbot-assistant/internal/common/metrics"
)

const backendName = "language-model"

const (
	defaultMaxOutputTokens    = 2000
	searchToolMaxOutputTokens = 3000
)

// Adapter is a thin client over an asynchronous completion backend. A
// completion is created with one POST and, while the backend reports a
// non-terminal status, retrieved again by id on a fixed interval up to a
// bounded number of attempts. Exhausting the attempt budget is not an error;
// whatever text is present at that point is extracted.
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

// Available reports whether the backend credential is configured.
func (a *Adapter) Available() bool {
	return a.config.APIKey != ""
}

// Complete submits a combined prompt and returns the extracted answer text.
// The returned string may be empty; the caller substitutes its fallback.
func (a *Adapter) Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error) {
	if !a.Available() {
		return "", apperrors.NewConfigurationMissingError(backendName)
	}

	payload := a.buildRequest(prompt, opts)

	start := time.Now()
	resp, err := a.createResponse(ctx, payload)
	if err != nil {
		metrics.BackendCallsTotal.WithLabelValues(backendName, "error").Inc()
		return "", err
	}

	attempts := 0
	for !resp.Status.isTerminal() && attempts < a.config.MaxPollAttempts {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(a.config.PollInterval):
		}

		resp, err = a.retrieveResponse(ctx, resp.ID)
		if err != nil {
			metrics.BackendCallsTotal.WithLabelValues(backendName, "error").Inc()
			return "", err
		}
		attempts++
	}

	metrics.BackendCallsTotal.WithLabelValues(backendName, "ok").Inc()
	metrics.BackendCallDuration.WithLabelValues(backendName).Observe(time.Since(start).Seconds())
	metrics.CompletionPollAttempts.Observe(float64(attempts))

	answer := extractText(resp)

	a.logger.Info("completion finished", map[string]interface{}{
		"status":       string(resp.Status),
		"pollAttempts": attempts,
		"answerChars":  len(answer),
		"searchTool":   opts.EnableSearchTool,
	})

	return answer, nil
}

func (a *Adapter) buildRequest(prompt string, opts CompleteOptions) *responseRequest {
	maxTokens := opts.MaxOutputTokens
	if maxTokens == 0 {
		if opts.EnableSearchTool {
			// Search-augmented answers carry citation material, so they get
			// a larger budget.
			maxTokens = searchToolMaxOutputTokens
		} else {
			maxTokens = defaultMaxOutputTokens
		}
	}

	req := &responseRequest{
		Model:           a.config.Model,
		Input:           prompt,
		MaxOutputTokens: maxTokens,
		Text:            &textSpec{Verbosity: "medium"},
	}

	if opts.EnableSearchTool {
		req.Tools = []toolSpec{{Type: "web_search"}}
	}
	if opts.ReasoningEffort != "" {
		req.Reasoning = &reasoningSpec{Effort: opts.ReasoningEffort}
	}

	return req
}

func (a *Adapter) createResponse(ctx context.Context, payload *responseRequest) (*responseObject, error) {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", a.config.BaseURL+"/responses", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build create request: %w", err)
	}

	return a.send(req)
}

func (a *Adapter) retrieveResponse(ctx context.Context, id string) (*responseObject, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", a.config.BaseURL+"/responses/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("build retrieve request: %w", err)
	}

	return a.send(req)
}

func (a *Adapter) send(req *http.Request) (*responseObject, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("language model request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, apperrors.NewBackendHTTPError(backendName, resp.StatusCode, string(raw))
	}

	var out responseObject
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode language model response: %w", err)
	}

	return &out, nil
}

// extractText concatenates the output_text fragments of all message items,
// joined by blank lines. Missing fragments yield an empty string.
func extractText(resp *responseObject) string {
	var parts []string

	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type != "output_text" {
				continue
			}
			if content.Text != "" {
				parts = append(parts, content.Text)
			}
		}
	}

	return strings.Join(parts, "\n\n")
}
