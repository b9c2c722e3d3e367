package provider

import (
	"context"
	"time"
)

// Client is the boundary to a generative-text backend. The reconciler only
// needs a single blocking round-trip; streaming and multi-turn context are
// deliberately out of scope.
type Client interface {
	// Generate sends a prompt and returns the complete response.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is configured and ready to use.
	IsAvailable() bool

	// Close cleans up any resources used by the provider.
	Close() error
}

// GenerateRequest contains all parameters for generating a response
type GenerateRequest struct {
	// Prompt is the main input text for the model
	Prompt string

	// Model overrides the client's default model when non-empty
	Model string

	// Temperature controls randomness (0.0 = deterministic)
	Temperature float64

	// JSONOutput directs the backend to return machine-parseable JSON
	JSONOutput bool
}

// GenerateResponse contains the model's response
type GenerateResponse struct {
	// Content is the generated text
	Content string

	// Model is the model that generated the response
	Model string

	// TokensUsed is the total tokens consumed (input + output)
	TokensUsed int

	// FinishReason explains why generation stopped
	FinishReason string

	// Latency is how long the generation took
	Latency time.Duration
}
