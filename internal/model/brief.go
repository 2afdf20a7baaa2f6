// Package model defines the core data types for the search-brief pipeline.
// In Go, we use plain structs instead of classes. The `json:"..."` tags tell
// the serialization layer how to name fields in API responses.
package model

import "fmt"

// SnippetResult is one web search hit: the page URL plus the short text
// excerpt the engine returned for it. Snippets live only long enough to be
// templated into the LLM prompt — they are never rendered to the user.
type SnippetResult struct {
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// ImageResult is one image search hit. Only the URL is kept; the image bytes
// are never fetched or inspected, the browser loads them directly.
type ImageResult struct {
	URL string `json:"url"`
}

// Brief is the settled outcome of one successful submission: everything the
// page needs to render.
type Brief struct {
	Query    string        `json:"query"`
	Images   []ImageResult `json:"images"`
	Summary  string        `json:"summary"`
	Model    string        `json:"model"`
	Metadata string        `json:"metadata"`
}

// Metadata formats the display string shown under the summary panel.
// Recomputed on every submission, never persisted.
func Metadata(query, model string) string {
	return fmt.Sprintf("Query: %s\nModel: %s", query, model)
}
