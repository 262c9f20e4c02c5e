// cmd/assistant-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/SpdVpr/svatbot-assistant/internal/assistant/llm"
	"github.com/SpdVpr/svatbot-assistant/internal/assistant/router"
	"github.com/SpdVpr/svatbot-assistant/internal/assistant/search"
	"github.com/SpdVpr/svatbot-assistant/internal/common/config"
	"github.com/SpdVpr/svatbot-assistant/internal/common/database"
	"github.com/SpdVpr/svatbot-assistant/internal/common/logger"
	"github.com/SpdVpr/svatbot-assistant/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assistant server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("address", cfg.Server.Address),
	)

	// --- Backend adapters, built once from configuration ---
	llmAdapter := llm.NewAdapter(&llm.Config{
		BaseURL:         cfg.Backends.LanguageModel.BaseURL,
		APIKey:          cfg.Backends.LanguageModel.APIKey,
		Model:           cfg.Backends.LanguageModel.Model,
		Timeout:         config.GetDuration(cfg.Backends.LanguageModel.Timeout),
		PollInterval:    config.GetDuration(cfg.Backends.LanguageModel.PollInterval),
		MaxPollAttempts: cfg.Backends.LanguageModel.MaxPollAttempts,
	}, log)

	searchAdapter := search.NewAdapter(&search.Config{
		BaseURL:   cfg.Backends.Search.BaseURL,
		APIKey:    cfg.Backends.Search.APIKey,
		Model:     cfg.Backends.Search.Model,
		MaxTokens: cfg.Backends.Search.MaxTokens,
		Timeout:   config.GetDuration(cfg.Backends.Search.Timeout),
	}, log)

	if !llmAdapter.Available() {
		zapLog.Warn("language model API key missing; ask requests will fail until configured")
	}
	if !searchAdapter.Available() {
		zapLog.Warn("search API key missing; freshness path will downgrade to language model")
	}

	hybridRouter := router.New(llmAdapter, searchAdapter, log)

	// --- Optional redis-backed rate limiter ---
	var limiter *server.RateLimiter
	if cfg.RateLimit.Redis.Address != "" {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.RateLimit.Redis)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return rdb.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			limiter = server.NewRateLimiter(
				rdb.GetClient(),
				cfg.RateLimit.MaxRequests,
				config.GetDuration(cfg.RateLimit.Window),
				log,
			)
			zapLog.Info("rate limiter enabled",
				zap.Int("maxRequests", cfg.RateLimit.MaxRequests),
				zap.Int("windowMs", cfg.RateLimit.Window),
			)
		}
	} else {
		zapLog.Info("no redis address configured, rate limiting disabled")
	}

	srv := server.New(hybridRouter, limiter, cfg.Server.AllowedOrigins, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Routes(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}

	zapLog.Info("Shutdown complete")
}
