package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexHandler renders the embedded single-page UI.
type IndexHandler struct {
	suggestions []string
	model       string
}

// NewIndexHandler creates the page handler. suggestions are the clickable
// example queries; model is shown in the metadata panel template.
func NewIndexHandler(suggestions []string, model string) *IndexHandler {
	return &IndexHandler{suggestions: suggestions, model: model}
}

// Index serves the page at GET /.
func (h *IndexHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Suggestions": h.suggestions,
		"Model":       h.model,
	})
}
