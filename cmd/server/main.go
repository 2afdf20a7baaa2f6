// Package main is the entry point for the searchbrief HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"searchbrief/internal/config"
	"searchbrief/internal/llm"
	"searchbrief/internal/pipeline"
	"searchbrief/internal/reveal"
	"searchbrief/internal/search"
	"searchbrief/internal/server"
)

func main() {
	// run() is separate so deferred cleanup executes before os.Exit
	// (deferred functions don't run when os.Exit is called directly).
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("BRIEF_CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// zap outputs JSON in production and human-readable format in development.
	var logger *zap.Logger
	if cfg.Log.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	// Sync commonly fails on stdout/stderr; not a real problem.
	defer func() { _ = logger.Sync() }()

	searchClient := search.NewGoogleClient(cfg.Search.APIKey, cfg.Search.EngineID, cfg.Search.BaseURL)
	completer := newCompleter(cfg)
	controller := pipeline.New(searchClient, completer, cfg.Search.SnippetCount, cfg.Search.ImageCount, logger)
	animator := reveal.New(time.Duration(cfg.Reveal.SpeedMs) * time.Millisecond)

	srv := server.New(cfg, server.Deps{
		Pipeline:  controller,
		Animator:  animator,
		ModelName: completer.ModelName(),
	}, logger)

	// Graceful shutdown on SIGINT (Ctrl+C) or SIGTERM (docker stop).
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	// Give in-flight requests 10 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

// newCompleter picks the completion backend from config. The OpenAI-compatible
// client (Groq by default) is primary; Anthropic is the alternative.
func newCompleter(cfg *config.Config) llm.Client {
	if cfg.LLM.Provider == "anthropic" {
		return llm.NewAnthropicClient(
			cfg.LLM.Anthropic.APIKey,
			cfg.LLM.Anthropic.Model,
			cfg.LLM.Temperature,
			int64(cfg.LLM.MaxTokens),
		)
	}
	return llm.NewOpenAIClient(
		cfg.LLM.OpenAI.APIKey,
		cfg.LLM.OpenAI.Model,
		cfg.LLM.OpenAI.BaseURL,
		float32(cfg.LLM.Temperature),
		cfg.LLM.MaxTokens,
	)
}
