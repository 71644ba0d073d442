// Package provider holds the interchangeable generation backends and the
// engine that walks them in priority order.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// Provider is one generation backend.
type Provider interface {
	Name() string
	// Submit sends the rendered prompt and returns the completion text.
	// Rate-limit conditions come back as *RateLimitedError; anything else
	// is a hard error.
	Submit(ctx context.Context, prompt string) (string, error)
}

// RateLimitedError marks a transient quota/429 condition worth retrying.
type RateLimitedError struct {
	Err error
}

func (e *RateLimitedError) Error() string { return "rate limited: " + e.Err.Error() }
func (e *RateLimitedError) Unwrap() error { return e.Err }

// IsRateLimited reports whether err is a retryable rate-limit signal.
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}

var ErrEmptyCompletion = errors.New("provider: empty completion from model")

func statusError(provider string, status string) error {
	return fmt.Errorf("%s: unexpected status %s", provider, status)
}
