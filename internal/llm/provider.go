package llm

import (
	"context"
)

// Provider is the core abstraction for remote text generation.
// Consumers call Generate with a single instruction string and receive the
// generated text.
type Provider interface {
	// Generate sends the prompt to the model and returns its completion.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// Prompt is the full instruction string, persona preamble included.
	Prompt string

	// MaxTokens caps the response length. Zero leaves it to the provider.
	MaxTokens int

	// Temperature controls randomness. Zero leaves it to the provider.
	Temperature float64

	// TopP enables nucleus sampling when greater than zero.
	TopP float64
}

// Response holds the model's output.
type Response struct {
	// Text is the generated completion.
	Text string

	// Usage reports token consumption for this request, when the provider
	// reports it.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
