package model

import "testing"

func TestMetadata(t *testing.T) {
	got := Metadata("cats", "mixtral-8x7b-32768")
	want := "Query: cats\nModel: mixtral-8x7b-32768"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMetadata_EmptyQuery(t *testing.T) {
	got := Metadata("", "m")
	if got != "Query: \nModel: m" {
		t.Errorf("unexpected metadata for empty query: %q", got)
	}
}
