package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the provider answered the call but
// produced no usable text (empty or policy-blocked output).
var ErrEmptyCompletion = errors.New("llm returned empty completion")

// Message represents a chat message in a provider-agnostic format.
type Message struct {
	Role    string // "user", "model", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature       float64
	MaxOutputTokens   int
	Model             string // Override default model
	SystemInstruction string
	EnableWebSearch   bool
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxOutputTokens(n int) Option {
	return func(o *Options) {
		o.MaxOutputTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystemInstruction(instruction string) Option {
	return func(o *Options) {
		o.SystemInstruction = instruction
	}
}

// WithWebSearch toggles the provider's open-domain search tool. The response
// policy disables it when the local knowledge base answered with high
// confidence.
func WithWebSearch(enabled bool) Option {
	return func(o *Options) {
		o.EnableWebSearch = enabled
	}
}

// LLMProvider defines the contract for any LLM backend.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
