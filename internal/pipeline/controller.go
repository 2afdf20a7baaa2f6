// Package pipeline owns the submission state machine:
//
//	Idle → Loading → {Success, Failed} → Idle (re-entrant)
//
// One Controller instance owns the single mutable State record behind the
// page, mirroring the one-owner rule of the UI: state is only ever mutated
// through the transition methods below.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"searchbrief/internal/llm"
	"searchbrief/internal/model"
	"searchbrief/internal/prompt"
	"searchbrief/internal/search"
)

// LoadingSummary is the placeholder summary while a submission is in flight.
const LoadingSummary = "Processing query..."

// ErrEmptyQuery rejects blank submissions before any provider is contacted.
var ErrEmptyQuery = errors.New("query must not be empty")

const errorPrefix = "An error occurred: "

// ErrorMessage formats a pipeline failure the way the page displays it.
func ErrorMessage(err error) string {
	return errorPrefix + err.Error()
}

// State is the single mutable record behind the page. Once a submission
// settles, exactly one of Summary (success) or Error (failure) reflects its
// outcome; IsLoading is true exactly while one submission is in flight.
type State struct {
	Query     string              `json:"query"`
	Results   []model.ImageResult `json:"results"`
	Summary   string              `json:"summary"`
	Metadata  string              `json:"metadata"`
	IsLoading bool                `json:"is_loading"`
	Error     string              `json:"error,omitempty"`
}

// Controller runs the search → prompt → completion pipeline.
//
// Every submission is tagged with a generation number. Settlement only
// mutates shared state while its generation is still current, so a slow
// request from a superseded query can no longer overwrite fresher state.
// The superseded caller still receives its own Brief.
type Controller struct {
	search       search.Client
	completer    llm.Client
	snippetCount int
	imageCount   int
	logger       *zap.Logger

	mu    sync.Mutex
	gen   uint64
	state State
}

// New creates a controller. Non-positive counts fall back to the provider
// defaults (15 snippets, 4 images).
func New(searchClient search.Client, completer llm.Client, snippetCount, imageCount int, logger *zap.Logger) *Controller {
	if snippetCount <= 0 {
		snippetCount = 15
	}
	if imageCount <= 0 {
		imageCount = 4
	}
	return &Controller{
		search:       searchClient,
		completer:    completer,
		snippetCount: snippetCount,
		imageCount:   imageCount,
		logger:       logger,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Results = append([]model.ImageResult(nil), c.state.Results...)
	return s
}

// Submit runs one full submission cycle and returns the settled Brief.
//
// The two search calls run concurrently and are joined all-or-nothing: the
// first rejection cancels the other and fails the whole submission. The
// completion call only starts once both have resolved.
func (c *Controller) Submit(ctx context.Context, query string) (*model.Brief, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	gen := c.begin(query)

	var (
		snippets []model.SnippetResult
		images   []model.ImageResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snippets, err = c.search.FetchSnippets(gctx, query, c.snippetCount)
		return err
	})
	g.Go(func() error {
		var err error
		images, err = c.search.FetchImages(gctx, query, c.imageCount)
		return err
	})
	if err := g.Wait(); err != nil {
		c.fail(gen, err)
		return nil, err
	}

	c.storeImages(gen, images)

	system := prompt.Build(snippets, images)
	completion, err := c.completer.Complete(ctx, query, system)
	if err != nil {
		c.fail(gen, err)
		return nil, err
	}

	brief := &model.Brief{
		Query:    query,
		Images:   images,
		Summary:  completion.Text,
		Model:    c.completer.ModelName(),
		Metadata: model.Metadata(query, c.completer.ModelName()),
	}
	c.succeed(gen, brief)

	c.logger.Info("submission settled",
		zap.String("query", query),
		zap.Int("snippets", len(snippets)),
		zap.Int("images", len(images)),
		zap.String("provider", c.completer.ProviderName()),
	)

	return brief, nil
}

// begin clears the previous outcome and enters Loading. Results, metadata and
// error are reset so a failure later leaves them empty, not stale.
func (c *Controller) begin(query string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = State{
		Query:     query,
		Results:   []model.ImageResult{},
		Summary:   LoadingSummary,
		IsLoading: true,
	}
	return c.gen
}

// storeImages publishes the gallery as soon as the search half resolves,
// before the (slower) completion call.
func (c *Controller) storeImages(gen uint64, images []model.ImageResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.state.Results = images
}

func (c *Controller) succeed(gen uint64, brief *model.Brief) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.state = State{
		Query:    brief.Query,
		Results:  brief.Images,
		Summary:  brief.Summary,
		Metadata: brief.Metadata,
	}
}

func (c *Controller) fail(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.state.IsLoading = false
	c.state.Error = ErrorMessage(err)
}
