package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/abhisek/wikiquiz/internal/config"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.1-8b-instant"
)

// GroqProvider implements Provider against Groq's OpenAI-compatible
// endpoint through langchaingo. Groq has no strict schema mode, so the
// schema is sent as instructions, JSON mode is enabled and the reply is
// validated locally.
type GroqProvider struct {
	model   llms.Model
	modelID string
}

// NewGroqProvider creates a provider from cfg.
func NewGroqProvider(cfg config.ProviderConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("groq API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	modelID := cfg.Model
	if modelID == "" {
		modelID = defaultGroqModel
	}

	model, err := lcopenai.New(
		lcopenai.WithToken(cfg.APIKey),
		lcopenai.WithBaseURL(baseURL),
		lcopenai.WithModel(modelID),
	)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}
	return &GroqProvider{model: model, modelID: modelID}, nil
}

func (p *GroqProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	system := req.System
	if req.Schema != nil {
		schema, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		system = strings.TrimSpace(system + "\n\nRespond with a single JSON object matching this JSON Schema:\n" + string(schema))
	}

	var messages []llms.MessageContent
	if system != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	opts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Schema != nil {
		opts = append(opts, llms.WithJSONMode())
	}

	resp, err := p.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if strings.Contains(err.Error(), "429") {
			return nil, &ErrRateLimit{Err: err}
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no choices in groq response")}
	}

	choice := resp.Choices[0]
	stop := StopEnd
	if choice.StopReason == "length" {
		stop = StopMaxTokens
	}
	content := choice.Content
	if req.Schema != nil {
		content = extractJSONObject(content)
	}
	return finish(req, json.RawMessage(content), p.modelID, stop, Usage{
		InputTokens:  intInfo(choice.GenerationInfo, "PromptTokens"),
		OutputTokens: intInfo(choice.GenerationInfo, "CompletionTokens"),
		TotalTokens:  intInfo(choice.GenerationInfo, "TotalTokens"),
	})
}

func (p *GroqProvider) ModelID() string {
	return p.modelID
}

// extractJSONObject trims anything around the outermost JSON object, such
// as code fences or a leading sentence.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return strings.TrimSpace(s)
	}
	return s[start : end+1]
}

func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
