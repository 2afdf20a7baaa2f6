// Package main provides the searchbrief CLI. Uses Cobra for command parsing —
// the standard Go CLI framework (kubectl, docker, hugo all use it).
//
// Run with: go run ./cmd/cli ask "why is the sky blue"
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"searchbrief/internal/config"
	"searchbrief/internal/llm"
	"searchbrief/internal/pipeline"
	"searchbrief/internal/reveal"
	"searchbrief/internal/search"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "brief",
		Short: "Search the web and summarize the results with an LLM",
	}

	root.AddCommand(askCmd())
	return root
}

func askCmd() *cobra.Command {
	var (
		snippets int
		images   int
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Run one search-and-summarize cycle in the terminal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(strings.Join(args, " "), snippets, images, plain)
		},
	}

	cmd.Flags().IntVar(&snippets, "snippets", 0, "Web results to feed the model (default from config)")
	cmd.Flags().IntVar(&images, "images", 0, "Image results to list (default from config)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the summary at once, without the typing animation")
	return cmd
}

func runAsk(query string, snippets, images int, plain bool) error {
	configPath := os.Getenv("BRIEF_CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Development logger for the CLI — human-readable, goes to stderr.
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if snippets <= 0 {
		snippets = cfg.Search.SnippetCount
	}
	if images <= 0 {
		images = cfg.Search.ImageCount
	}

	searchClient := search.NewGoogleClient(cfg.Search.APIKey, cfg.Search.EngineID, cfg.Search.BaseURL)
	completer := newCompleter(cfg)
	controller := pipeline.New(searchClient, completer, snippets, images, logger)

	// Ctrl+C cancels the in-flight requests and the animation.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	brief, err := controller.Submit(ctx, query)
	if err != nil {
		fmt.Fprintln(os.Stderr, pipeline.ErrorMessage(err))
		return err
	}

	if len(brief.Images) > 0 {
		fmt.Println("Images:")
		for _, img := range brief.Images {
			fmt.Printf("  %s\n", img.URL)
		}
		fmt.Println()
	}

	if plain {
		fmt.Println(brief.Summary)
	} else {
		animator := reveal.New(time.Duration(cfg.Reveal.SpeedMs) * time.Millisecond)
		if err := animator.Reveal(ctx, brief.Summary, &reveal.WriterSink{W: os.Stdout}); err != nil {
			return err
		}
		fmt.Println()
	}

	fmt.Printf("\n%s\n", brief.Metadata)
	return nil
}

// newCompleter picks the completion backend from config, mirroring the server.
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
