package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoogleClient_FetchSnippets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "test-key" {
			t.Errorf("expected key 'test-key', got %q", q.Get("key"))
		}
		if q.Get("cx") != "test-cx" {
			t.Errorf("expected cx 'test-cx', got %q", q.Get("cx"))
		}
		if q.Get("q") != "go testing" {
			t.Errorf("expected query 'go testing', got %q", q.Get("q"))
		}
		if q.Get("num") != "15" {
			t.Errorf("expected num '15', got %q", q.Get("num"))
		}
		if q.Get("searchType") != "" {
			t.Errorf("web search must not set searchType, got %q", q.Get("searchType"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"link":"https://go.dev/doc","snippet":"Go documentation"},
			{"link":"https://go.dev/test","snippet":"Testing in Go"}
		]}`))
	}))
	defer server.Close()

	client := NewGoogleClient("test-key", "test-cx", server.URL)
	results, err := client.FetchSnippets(context.Background(), "go testing", 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://go.dev/doc" {
		t.Errorf("expected first URL 'https://go.dev/doc', got %q", results[0].URL)
	}
	if results[1].Snippet != "Testing in Go" {
		t.Errorf("expected second snippet 'Testing in Go', got %q", results[1].Snippet)
	}
}

func TestGoogleClient_FetchImages_SetsSearchType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("searchType") != "image" {
			t.Errorf("expected searchType=image, got %q", r.URL.Query().Get("searchType"))
		}
		if r.URL.Query().Get("num") != "4" {
			t.Errorf("expected num '4', got %q", r.URL.Query().Get("num"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"link":"https://example.com/cat.jpg"}]}`))
	}))
	defer server.Close()

	client := NewGoogleClient("k", "cx", server.URL)
	results, err := client.FetchImages(context.Background(), "cats", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].URL != "https://example.com/cat.jpg" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestGoogleClient_MissingItemsIsEmpty(t *testing.T) {
	// The API omits "items" entirely when there are no hits.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"kind":"customsearch#search"}`))
	}))
	defer server.Close()

	client := NewGoogleClient("k", "cx", server.URL)
	results, err := client.FetchSnippets(context.Background(), "nothing", 15)
	if err != nil {
		t.Fatalf("missing items must not be an error, got: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
}

func TestGoogleClient_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewGoogleClient("k", "cx", server.URL)
	_, err := client.FetchSnippets(context.Background(), "boom", 15)
	if err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}

	var searchErr *Error
	if !errors.As(err, &searchErr) {
		t.Fatalf("expected *search.Error, got %T", err)
	}
	if searchErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status code 500, got %d", searchErr.StatusCode)
	}
}
