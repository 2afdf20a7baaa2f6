// Package llm provides a provider-agnostic interface for the chat completion
// that turns search context into a written summary. Both the OpenAI-compatible
// client (Groq by default) and Anthropic implement the same interface, so
// swapping providers is a config change, not a code change.
package llm

import (
	"context"
	"fmt"
)

// FallbackSummary is substituted when the provider answers successfully but
// the payload carries no usable text. A malformed completion is a soft
// degradation, not an error.
const FallbackSummary = "No summary available."

// Completion is the parsed result of one chat completion call. Raw keeps the
// provider's full response for callers that want more than the text.
type Completion struct {
	Text string
	Raw  any
}

// Client is the interface for completion providers. system carries the built
// search-context prompt; query is the user's raw question.
type Client interface {
	Complete(ctx context.Context, query, system string) (*Completion, error)
	ProviderName() string
	ModelName() string
}

// CompletionError reports a non-success HTTP status from the completion
// provider, with the provider's own message when it sent one.
type CompletionError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *CompletionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s completion failed (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s completion failed (HTTP %d)", e.Provider, e.StatusCode)
}
