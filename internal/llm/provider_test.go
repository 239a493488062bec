package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/wikiquiz/internal/config"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"name":"Ada","age":36}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage(`"plain"`)},
	)

	resp, err := mock.Generate(context.Background(), Request{Prompt: "first", Schema: testSchema()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Fatalf("total tokens = %d, want 15", resp.Usage.TotalTokens)
	}
	if resp.StopReason != StopEnd || resp.Model != "mock" {
		t.Fatalf("resp = %+v", resp)
	}

	resp, err = mock.Generate(context.Background(), Request{Prompt: "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `"plain"` {
		t.Fatalf("content = %s", resp.Content)
	}
	if mock.CallCount() != 2 || mock.Calls[1].Prompt != "second" {
		t.Fatalf("calls = %+v", mock.Calls)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"name":"Ada"}`)})

	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"only"`)})
	if mock.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", mock.Pending())
	}
	if _, err := mock.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) || unavail.Permanent {
		t.Fatalf("expected transient ErrProviderUnavailable, got %T: %v", err, err)
	}
	if mock.Pending() != 0 || mock.CallCount() != 2 {
		t.Fatalf("pending = %d, calls = %d", mock.Pending(), mock.CallCount())
	}
}

func TestMockProvider_ConfiguredError(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"name":"Ada","age":36}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, zap.New(core))
	ctx := context.Background()

	if _, err := p.Generate(ctx, Request{Prompt: "x", Schema: testSchema(), Article: "Alan Turing"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{Prompt: "x"}); err == nil {
		t.Fatal("expected error")
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	ok := entries[0].ContextMap()
	if entries[0].Message != "llm request" || ok["article"] != "Alan Turing" || ok["schema"] != "test-object" || ok["input_tokens"] != int64(7) {
		t.Fatalf("success entry = %s %v", entries[0].Message, ok)
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].Message != "llm request failed" {
		t.Fatalf("failure entry = %s %s", entries[1].Level, entries[1].Message)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		wantErr bool
	}{
		{name: "mock needs no key", cfg: config.LLMConfig{Provider: "mock"}},
		{name: "groq with key", cfg: config.LLMConfig{Provider: "groq", Groq: config.ProviderConfig{APIKey: "gsk-test"}}},
		{name: "groq without key", cfg: config.LLMConfig{Provider: "groq"}, wantErr: true},
		{name: "anthropic with key", cfg: config.LLMConfig{Provider: "anthropic", Anthropic: config.ProviderConfig{APIKey: "sk-test"}}},
		{name: "openai without key", cfg: config.LLMConfig{Provider: "openai"}, wantErr: true},
		{name: "unknown provider", cfg: config.LLMConfig{Provider: "unknown"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if _, ok := p.(*RetryProvider); !ok {
					t.Fatalf("provider = %T, want *RetryProvider", p)
				}
			}
		})
	}
}
