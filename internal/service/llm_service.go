package service

import (
	"context"
)

// CompletionMeta describes one completion returned by an LLM provider,
// carrying enough information to account for its cost.
type CompletionMeta struct {
	Model            string
	PromptTokens     int32
	CompletionTokens int32
}

// GenerationOptions are provider-agnostic generation knobs.
type GenerationOptions struct {
	MaxTokens   *int32
	Temperature *float32
}

// LLMService is the completion client consumed by the feedback generation
// task. Implementations prompt an external model with a batch of prompts and
// return one text output plus metadata per prompt.
type LLMService interface {
	Complete(ctx context.Context, prompts []string, opts GenerationOptions) ([]string, []CompletionMeta, error)

	// ComputePrice returns the USD cost of the given completions.
	ComputePrice(meta []CompletionMeta) float64
}
