// Package reveal renders already-known text progressively, one character at a
// time, for a typing-effect illusion. It is purely cosmetic: the full summary
// is stored before the animation starts, and skipping the animation changes
// nothing about the pipeline's state.
//
// The animator is decoupled from any rendering surface through the Sink
// interface, so the same loop drives the browser's SSE stream, the CLI's
// stdout, and the tests.
package reveal

import (
	"context"
	"io"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultSpeed is the per-character delay.
const DefaultSpeed = 5 * time.Millisecond

// Sink receives animation frames. paragraph and offset are 0-based; offset 0
// marks the start of a new paragraph. Returning an error stops the animation.
type Sink interface {
	Emit(paragraph, offset int, r rune) error
}

// Animator paces the reveal: one character per speed interval, with a 2×speed
// pause between paragraphs.
type Animator struct {
	speed time.Duration
}

// New creates an animator. Non-positive speeds fall back to DefaultSpeed.
func New(speed time.Duration) *Animator {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Animator{speed: speed}
}

// Reveal splits text on blank-line boundaries and emits it character by
// character, left to right, finishing each paragraph before the next begins.
// The rate limiter starts with a full bucket, so the first character goes out
// immediately. Cancelling the context stops the loop mid-animation.
func (a *Animator) Reveal(ctx context.Context, text string, sink Sink) error {
	paragraphs := strings.Split(text, "\n\n")
	limiter := rate.NewLimiter(rate.Every(a.speed), 1)

	for pi, paragraph := range paragraphs {
		if pi > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * a.speed):
			}
		}

		for offset, r := range []rune(paragraph) {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			if err := sink.Emit(pi, offset, r); err != nil {
				return err
			}
		}
	}

	return nil
}

// WriterSink streams the animation to an io.Writer (the CLI's stdout),
// restoring the blank line between paragraphs.
type WriterSink struct {
	W io.Writer
}

func (s *WriterSink) Emit(paragraph, offset int, r rune) error {
	if paragraph > 0 && offset == 0 {
		if _, err := io.WriteString(s.W, "\n\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(s.W, string(r))
	return err
}
