package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"searchbrief/internal/model"
	"searchbrief/internal/pipeline"
	"searchbrief/internal/reveal"
)

type stubPipeline struct {
	brief *model.Brief
	err   error
	state pipeline.State
}

func (s *stubPipeline) Submit(ctx context.Context, query string) (*model.Brief, error) {
	return s.brief, s.err
}

func (s *stubPipeline) Snapshot() pipeline.State {
	return s.state
}

func newTestRouter(p Pipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewQueryHandler(p, reveal.New(time.Nanosecond), zap.NewNop())
	router := gin.New()
	router.POST("/api/v1/query", h.Submit)
	router.GET("/api/v1/query/stream", h.Stream)
	router.GET("/api/v1/state", h.State)
	return router
}

func TestSubmit_ReturnsBrief(t *testing.T) {
	p := &stubPipeline{
		brief: &model.Brief{
			Query:    "cats",
			Images:   []model.ImageResult{{URL: "https://img/cat.jpg"}},
			Summary:  "Cats are small carnivores.",
			Model:    "mixtral-8x7b-32768",
			Metadata: "Query: cats\nModel: mixtral-8x7b-32768",
		},
	}
	router := newTestRouter(p)

	req := httptest.NewRequest("POST", "/api/v1/query", strings.NewReader(`{"query":"cats"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got model.Brief
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Summary != "Cats are small carnivores." {
		t.Errorf("unexpected summary: %q", got.Summary)
	}
	if len(got.Images) != 1 || got.Images[0].URL != "https://img/cat.jpg" {
		t.Errorf("unexpected images: %+v", got.Images)
	}
}

func TestSubmit_EmptyQueryRejected(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	for _, body := range []string{`{"query":""}`, `{"query":"   "}`, `{}`, `not json`} {
		req := httptest.NewRequest("POST", "/api/v1/query", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestSubmit_PipelineFailure(t *testing.T) {
	router := newTestRouter(&stubPipeline{err: errors.New("search provider returned 500 Internal Server Error")})

	req := httptest.NewRequest("POST", "/api/v1/query", strings.NewReader(`{"query":"boom"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "An error occurred: search provider returned") {
		t.Errorf("expected formatted error message, got %s", w.Body.String())
	}
}

func TestStream_EventOrder(t *testing.T) {
	p := &stubPipeline{
		brief: &model.Brief{
			Query:    "hi",
			Images:   []model.ImageResult{{URL: "https://img/1.jpg"}},
			Summary:  "Hi\n\nYo",
			Model:    "m",
			Metadata: "Query: hi\nModel: m",
		},
	}
	router := newTestRouter(p)

	req := httptest.NewRequest("GET", "/api/v1/query/stream?q=hi", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("expected event-stream content type, got %q", ct)
	}

	body := w.Body.String()
	images := strings.Index(body, "event:images")
	firstDelta := strings.Index(body, "event:delta")
	metadata := strings.Index(body, "event:metadata")
	done := strings.Index(body, "event:done")

	for name, idx := range map[string]int{"images": images, "delta": firstDelta, "metadata": metadata, "done": done} {
		if idx == -1 {
			t.Fatalf("expected %s event in stream:\n%s", name, body)
		}
	}
	if !(images < firstDelta && firstDelta < metadata && metadata < done) {
		t.Errorf("events out of order: images=%d delta=%d metadata=%d done=%d", images, firstDelta, metadata, done)
	}

	// Four characters across two paragraphs, one delta event each.
	if got := strings.Count(body, "event:delta"); got != 4 {
		t.Errorf("expected 4 delta events, got %d", got)
	}
}

func TestStream_ErrorEvent(t *testing.T) {
	router := newTestRouter(&stubPipeline{err: errors.New("boom")})

	req := httptest.NewRequest("GET", "/api/v1/query/stream?q=hi", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "event:error") {
		t.Fatalf("expected error event, got:\n%s", body)
	}
	if !strings.Contains(body, "An error occurred: boom") {
		t.Errorf("expected formatted message, got:\n%s", body)
	}
	if strings.Contains(body, "event:images") || strings.Contains(body, "event:done") {
		t.Error("no other events should follow a failure")
	}
}

func TestStream_MissingQuery(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	req := httptest.NewRequest("GET", "/api/v1/query/stream", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestState_ReflectsSnapshot(t *testing.T) {
	p := &stubPipeline{
		state: pipeline.State{
			Query:     "cats",
			Results:   []model.ImageResult{},
			Summary:   pipeline.LoadingSummary,
			IsLoading: true,
		},
	}
	router := newTestRouter(p)

	req := httptest.NewRequest("GET", "/api/v1/state", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var got pipeline.State
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if !got.IsLoading || got.Summary != pipeline.LoadingSummary {
		t.Errorf("unexpected state: %+v", got)
	}
}
