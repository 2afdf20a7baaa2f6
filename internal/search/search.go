// Package search is the client for the external web/image search provider.
// The pipeline issues two independent read-only lookups per submission: one
// for text snippets (LLM context) and one for images (gallery).
package search

import (
	"context"
	"fmt"

	"searchbrief/internal/model"
)

// Client is the read side of the pipeline.
//
// Go interface design tip: keep interfaces small and define them where they
// are consumed. Two methods is plenty here — both callers (pipeline, tests)
// only ever need these lookups.
type Client interface {
	// FetchSnippets returns up to count web hits for the query.
	FetchSnippets(ctx context.Context, query string, count int) ([]model.SnippetResult, error)

	// FetchImages returns up to count image hits for the query.
	FetchImages(ctx context.Context, query string, count int) ([]model.ImageResult, error)
}

// Error reports a non-success HTTP status from the search provider.
// The provider's own status line is surfaced so the top-level handler can
// show it to the user.
type Error struct {
	StatusCode int
	Status     string // e.g. "403 Forbidden"
}

func (e *Error) Error() string {
	return fmt.Sprintf("search provider returned %s", e.Status)
}
