package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// DefaultAnthropicModel is used when the config leaves the model blank.
const DefaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicClient implements Client using Claude. The Messages API takes the
// system prompt as a dedicated parameter rather than a message role.
type AnthropicClient struct {
	client      *anthropic.Client
	model       string
	temperature float64
	maxTokens   int64
}

// NewAnthropicClient creates a Claude-backed completion client.
func NewAnthropicClient(apiKey, model string, temperature float64, maxTokens int64) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicClient{
		client:      &client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (a *AnthropicClient) ProviderName() string { return "anthropic" }
func (a *AnthropicClient) ModelName() string    { return a.model }

// Complete mirrors the OpenAI client's contract: non-success HTTP becomes a
// *CompletionError, an empty successful payload becomes FallbackSummary.
func (a *AnthropicClient) Complete(ctx context.Context, query, system string) (*Completion, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   a.maxTokens,
		Temperature: param.NewOpt(a.temperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(query)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, &CompletionError{
				Provider:   a.ProviderName(),
				StatusCode: apiErr.StatusCode,
				Message:    apiErr.Error(),
			}
		}
		return nil, fmt.Errorf("anthropic completion: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}

	if sb.Len() == 0 {
		return &Completion{Text: FallbackSummary, Raw: message}, nil
	}
	return &Completion{Text: sb.String(), Raw: message}, nil
}
