package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"searchbrief/internal/model"
)

// DefaultBaseURL is the Google Custom Search JSON API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// GoogleClient implements Client against the Google Custom Search API.
// Web and image search share one endpoint — image search just adds
// searchType=image to the query string.
type GoogleClient struct {
	apiKey     string
	engineID   string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleClient creates a search client. baseURL may be empty to use the
// real API; tests point it at an httptest server instead.
//
// Credentials are deliberately not validated here: an empty key is sent as-is
// and rejected by the provider, which surfaces as a normal search failure.
func NewGoogleClient(apiKey, engineID, baseURL string) *GoogleClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GoogleClient{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// googleItem is the slice of a search hit we care about. The API returns many
// more fields; for image hits `link` points directly at the image.
type googleItem struct {
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type googleResponse struct {
	Items []googleItem `json:"items"`
}

// FetchSnippets returns the query's web hits narrowed to URL + snippet.
func (g *GoogleClient) FetchSnippets(ctx context.Context, query string, count int) ([]model.SnippetResult, error) {
	items, err := g.search(ctx, query, count, false)
	if err != nil {
		return nil, err
	}

	results := make([]model.SnippetResult, 0, len(items))
	for _, it := range items {
		results = append(results, model.SnippetResult{URL: it.Link, Snippet: it.Snippet})
	}
	return results, nil
}

// FetchImages returns the query's image hits as bare URLs.
func (g *GoogleClient) FetchImages(ctx context.Context, query string, count int) ([]model.ImageResult, error) {
	items, err := g.search(ctx, query, count, true)
	if err != nil {
		return nil, err
	}

	results := make([]model.ImageResult, 0, len(items))
	for _, it := range items {
		results = append(results, model.ImageResult{URL: it.Link})
	}
	return results, nil
}

// search performs one GET against the provider. A response without an items
// list is a valid empty result, not an error — the API omits the field
// entirely when there are no hits.
func (g *GoogleClient) search(ctx context.Context, query string, count int, imageSearch bool) ([]googleItem, error) {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing search URL: %w", err)
	}

	q := u.Query()
	q.Set("key", g.apiKey)
	q.Set("cx", g.engineID)
	q.Set("q", query)
	q.Set("num", strconv.Itoa(count))
	if imageSearch {
		q.Set("searchType", "image")
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var result googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return result.Items, nil
}
