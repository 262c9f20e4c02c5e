// internal/assistant/router/router.go
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SpdVpr/svatbot-assistant/internal/assistant/classify"
	"github.com/SpdVpr/svatbot-assistant/internal/assistant/llm"
	"github.com/SpdVpr/svatbot-assistant/internal/assistant/search"
	apperrors "github.com/SpdVpr/svatbot-assistant/internal/common/errors"
	"github.com/SpdVpr/svatbot-assistant/internal/common/logger"
	"github.com/SpdVpr/svatbot-assistant/internal/common/metrics"
)

// fallbackAnswer replaces an empty or whitespace-only backend answer. This
// is a UX substitution, not error recovery; real backend failures propagate.
const fallbackAnswer = "Omlouvám se, odpověď se teď nepodařilo připravit. Zkuste to prosím znovu."

// CompletionBackend is the language-model adapter surface the router needs.
type CompletionBackend interface {
	Complete(ctx context.Context, prompt string, opts llm.CompleteOptions) (string, error)
	Available() bool
}

// SearchBackend is the web-search adapter surface the router needs.
type SearchBackend interface {
	Search(ctx context.Context, query, shortContext string) (*search.Result, error)
	Available() bool
}

// Router decides, per question, whether to answer from the language model,
// from web search, or by combining both. Adapters are injected once at
// construction; the router itself holds no per-call state.
type Router struct {
	completion CompletionBackend
	searcher   SearchBackend
	logger     logger.Logger
}

func New(completion CompletionBackend, searcher SearchBackend, log logger.Logger) *Router {
	return &Router{
		completion: completion,
		searcher:   searcher,
		logger: log.With(map[string]interface{}{
			"component": "hybrid-router",
		}),
	}
}

// Ask classifies the question, executes the selected strategy and returns
// the normalized envelope. The language model backend is required
// unconditionally; its absence fails the call with CONFIGURATION_MISSING.
func (r *Router) Ask(ctx context.Context, req *AskRequest) (*Response, error) {
	if r.completion == nil || !r.completion.Available() {
		return nil, apperrors.NewConfigurationMissingError("language-model")
	}

	hasContext := req.Context.HasMeaningful()
	classification := classify.Analyze(req.Query, hasContext)

	r.logger.Info("query classified", map[string]interface{}{
		"queryType":  string(classification.QueryType),
		"confidence": classification.Confidence,
		"hasContext": hasContext,
		"freshness":  req.PreferFreshness,
	})

	start := time.Now()

	var resp *Response
	var err error

	switch {
	case req.PreferFreshness:
		resp, err = r.searchThenSynthesize(ctx, req, classification, hasContext)
	case classification.QueryType == classify.QueryTypePersonal:
		resp, err = r.completeDirect(ctx, req, classification, false)
	default:
		resp, err = r.completeDirect(ctx, req, classification, true)
	}

	if err != nil {
		metrics.AssistantRequestErrors.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		return nil, err
	}

	if strings.TrimSpace(resp.Answer) == "" {
		resp.Answer = fallbackAnswer
	}

	metrics.AssistantRequestsTotal.WithLabelValues(string(resp.Provider)).Inc()
	metrics.AssistantRequestDuration.WithLabelValues(string(resp.Provider)).Observe(time.Since(start).Seconds())

	r.logger.Info("ask completed", map[string]interface{}{
		"provider":    string(resp.Provider),
		"sourceCount": len(resp.Sources),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return resp, nil
}

// completeDirect invokes the language model, with or without its web-search
// tool. Personal answers run on a tighter token budget since no citation
// material needs to be echoed. Source lists on the tool path are whatever
// the backend embeds in the answer text; no sources array is imputed.
func (r *Router) completeDirect(ctx context.Context, req *AskRequest, classification classify.Result, enableTool bool) (*Response, error) {
	prompt := buildPrompt(req, "")

	answer, err := r.completion.Complete(ctx, prompt, llm.CompleteOptions{
		EnableSearchTool: enableTool,
	})
	if err != nil {
		return nil, err
	}

	provider := ProviderLanguageModel
	reasoning := fmt.Sprintf("classified %s (%.2f): language model only", classification.QueryType, classification.Confidence)
	if enableTool {
		provider = ProviderHybrid
		reasoning = fmt.Sprintf("classified %s (%.2f): language model with search tool", classification.QueryType, classification.Confidence)
	}

	return &Response{
		Answer:    answer,
		Sources:   []search.Source{},
		Provider:  provider,
		Reasoning: reasoning,
	}, nil
}

// searchThenSynthesize runs the two-stage retrieval path: search first, then
// a model call only when meaningful personal context exists. Without context
// the search answer is returned verbatim, skipping the model entirely. When
// the search backend has no credential the path downgrades to the
// model-with-tool strategy instead of failing the whole call.
func (r *Router) searchThenSynthesize(ctx context.Context, req *AskRequest, classification classify.Result, hasContext bool) (*Response, error) {
	if r.searcher == nil || !r.searcher.Available() {
		r.logger.Warn("search backend unavailable, downgrading to language model", map[string]interface{}{
			"queryType": string(classification.QueryType),
		})
		resp, err := r.completeDirect(ctx, req, classification, true)
		if err != nil {
			return nil, err
		}
		resp.Reasoning += "; search backend unavailable, downgraded"
		return resp, nil
	}

	result, err := r.searcher.Search(ctx, req.Query, buildShortContext(req.Context))
	if err != nil {
		return nil, err
	}

	if !hasContext {
		return &Response{
			Answer:    result.Answer,
			Sources:   result.Sources,
			Provider:  ProviderSearch,
			Reasoning: fmt.Sprintf("classified %s (%.2f): fresh search, no personal context to apply", classification.QueryType, classification.Confidence),
		}, nil
	}

	answer, err := r.completion.Complete(ctx, buildPrompt(req, result.Answer), llm.CompleteOptions{})
	if err != nil {
		return nil, err
	}

	return &Response{
		Answer:    answer,
		Sources:   result.Sources,
		Provider:  ProviderHybrid,
		Reasoning: fmt.Sprintf("classified %s (%.2f): fresh search personalized by language model", classification.QueryType, classification.Confidence),
	}, nil
}
