package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Defaults target Groq's OpenAI-compatible endpoint. Any server speaking the
// chat completions protocol works — the base URL is just config.
const (
	DefaultOpenAIBaseURL = "https://api.groq.com/openai/v1"
	DefaultOpenAIModel   = "mixtral-8x7b-32768"
)

// OpenAIClient implements Client against any OpenAI-compatible chat endpoint.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIClient creates a completion client. Empty model/baseURL fall back
// to the Groq defaults.
func NewOpenAIClient(apiKey, model, baseURL string, temperature float32, maxTokens int) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	cfg.BaseURL = baseURL

	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (o *OpenAIClient) ProviderName() string { return "openai" }
func (o *OpenAIClient) ModelName() string    { return o.model }

// Complete sends the built prompt as the system message and the raw query as
// the user message. A successful response with no choices (or empty content)
// degrades to FallbackSummary instead of failing.
func (o *OpenAIClient) Complete(ctx context.Context, query, system string) (*Completion, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &CompletionError{
				Provider:   o.ProviderName(),
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
			}
		}
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return &Completion{Text: FallbackSummary, Raw: resp}, nil
	}

	return &Completion{Text: resp.Choices[0].Message.Content, Raw: resp}, nil
}
