// Package llm is the provider-neutral client the quiz generator uses to get
// structured JSON out of hosted language models.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider requests JSON output and Content is validated
	// against the schema before it is returned.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when set, is the JSON Schema the output must satisfy.
	Schema *Schema

	// Article names the Wikipedia article being quizzed, for logs only.
	Article string

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema.
type Schema struct {
	// Name is sent as the schema or tool name, e.g. "wiki-quiz".
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the normalized reason generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response holds the model output.
type Response struct {
	// Content is the validated JSON when a schema was requested, otherwise
	// the raw text.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish validates content against req.Schema and assembles the Response.
// A truncated response that fails validation reports ErrMaxTokensExceeded.
func finish(req Request, content json.RawMessage, model string, stop StopReason, usage Usage) (*Response, error) {
	if err := validateResponse(req.Schema, content); err != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are used as-is.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
