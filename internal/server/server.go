// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SpdVpr/svatbot-assistant/internal/assistant/router"
	apperrors "github.com/SpdVpr/svatbot-assistant/internal/common/errors"
	"github.com/SpdVpr/svatbot-assistant/internal/common/logger"
)

const maxRequestBody = 1 << 20 // 1 MiB

// AskService is the router surface the HTTP layer depends on.
type AskService interface {
	Ask(ctx context.Context, req *router.AskRequest) (*router.Response, error)
}

type Server struct {
	ask            AskService
	limiter        *RateLimiter
	allowedOrigins []string
	logger         logger.Logger
}

// New builds the HTTP surface. limiter may be nil, which disables rate
// limiting entirely.
func New(ask AskService, limiter *RateLimiter, allowedOrigins []string, log logger.Logger) *Server {
	return &Server{
		ask:            ask,
		limiter:        limiter,
		allowedOrigins: allowedOrigins,
		logger: log.With(map[string]interface{}{
			"component": "http-server",
		}),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(gr chi.Router) {
		if s.limiter != nil {
			gr.Use(s.limiter.Middleware)
		}
		gr.Post("/api/assistant/ask", s.handleAsk)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := s.logger.With(map[string]interface{}{"requestId": requestID})

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, apperrors.NewRequestInvalidError("unreadable request body"))
		return
	}

	if err := ValidateAskRequest(body); err != nil {
		writeError(w, err)
		return
	}

	var req router.AskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, apperrors.NewRequestInvalidError("malformed JSON payload"))
		return
	}

	log.Info("ask received", map[string]interface{}{
		"queryChars": len(req.Query),
		"hasContext": req.Context != nil,
	})

	resp, err := s.ask.Ask(r.Context(), &req)
	if err != nil {
		log.WithError(err).Error("ask failed", map[string]interface{}{
			"errorCode": string(apperrors.CodeOf(err)),
		})
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	if code == "" {
		code = "INTERNAL_ERROR"
	}

	// Backend failures collapse to one generic user-facing message; only
	// client-side conditions get a specific one.
	message := "Asistent je dočasně nedostupný, zkuste to prosím později."
	switch code {
	case apperrors.ErrCodeRequestInvalid:
		message = "Neplatný požadavek."
	case apperrors.ErrCodeRateLimited:
		message = "Příliš mnoho požadavků, zkuste to prosím za chvíli."
	}

	writeJSON(w, apperrors.HTTPStatus(err), map[string]interface{}{
		"error": map[string]string{
			"code":    string(code),
			"message": message,
		},
	})
}
