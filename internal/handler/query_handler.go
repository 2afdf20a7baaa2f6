package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"searchbrief/internal/model"
	"searchbrief/internal/pipeline"
	"searchbrief/internal/reveal"
)

// Pipeline is the slice of the controller the handlers need. Declared here,
// where it is consumed, so tests can stub it.
type Pipeline interface {
	Submit(ctx context.Context, query string) (*model.Brief, error)
	Snapshot() pipeline.State
}

// QueryHandler serves the search-and-summarize API.
type QueryHandler struct {
	pipeline Pipeline
	animator *reveal.Animator
	logger   *zap.Logger
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(p Pipeline, animator *reveal.Animator, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{
		pipeline: p,
		animator: animator,
		logger:   logger,
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

// Submit handles POST /api/v1/query: runs the full pipeline and returns the
// settled Brief as JSON. This is the non-animated API surface.
func (h *QueryHandler) Submit(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query is required",
		})
		return
	}

	brief, err := h.pipeline.Submit(c.Request.Context(), req.Query)
	if err != nil {
		h.logger.Warn("submission failed",
			zap.String("query", req.Query),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": pipeline.ErrorMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, brief)
}

// State handles GET /api/v1/state: the current pipeline state record.
func (h *QueryHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.pipeline.Snapshot())
}

// Stream handles GET /api/v1/query/stream?q=... as a Server-Sent Events
// response. The event order mirrors the pipeline stages:
//
//	images   — the gallery, as soon as search settles
//	delta    — one event per summary character, paced by the animator
//	metadata — the "Query: .. / Model: .." display string
//	done     — the stream is complete
//	error    — instead of all of the above when any stage fails
//
// EventSource in the browser can only GET, which is why this is not a POST.
func (h *QueryHandler) Stream(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	brief, err := h.pipeline.Submit(c.Request.Context(), query)
	if err != nil {
		h.logger.Warn("submission failed",
			zap.String("query", query),
			zap.Error(err),
		)
		c.SSEvent("error", gin.H{"message": pipeline.ErrorMessage(err)})
		c.Writer.Flush()
		return
	}

	c.SSEvent("images", brief.Images)
	c.Writer.Flush()

	// The client disconnecting cancels the request context, which stops the
	// reveal loop; there is nothing useful to send after that.
	if err := h.animator.Reveal(c.Request.Context(), brief.Summary, &sseSink{c: c}); err != nil {
		return
	}

	c.SSEvent("metadata", gin.H{"text": brief.Metadata, "model": brief.Model})
	c.SSEvent("done", "complete")
	c.Writer.Flush()
}

// sseSink streams reveal frames as SSE "delta" events.
type sseSink struct {
	c *gin.Context
}

func (s *sseSink) Emit(paragraph, offset int, r rune) error {
	s.c.SSEvent("delta", gin.H{"p": paragraph, "i": offset, "ch": string(r)})
	s.c.Writer.Flush()
	return nil
}
