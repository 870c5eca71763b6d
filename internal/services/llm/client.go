package llm

import (
	"context"
)

// Client is the completion surface the gateway needs from a language
// model provider.
type Client interface {
	// Complete sends a single prompt and returns the model's text reply.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteGrounded is Complete backed by a search-augmented model,
	// for prompts whose answer depends on live data (e.g. prices).
	CompleteGrounded(ctx context.Context, prompt string) (string, error)
}
