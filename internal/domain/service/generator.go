package service

import "context"

// TextGenerator produces a completion for a single prompt. An empty string
// with a nil error means the model answered with no text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider in logs and health checks
	Name() string
}

// BackendChecker is implemented by generators that can confirm their backend
// answers without spending a generation
type BackendChecker interface {
	CheckBackend(ctx context.Context) error
}
