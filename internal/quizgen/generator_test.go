package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/wikiquiz/internal/llm"
	"github.com/abhisek/wikiquiz/internal/quiz"
)

const goodOutput = `{
  "summary": "Alan Turing was a mathematician.",
  "key_entities": {"people": ["Alan Turing"], "organizations": ["GCHQ"], "locations": ["London"]},
  "quiz": [
    {"question": "Where was Turing born?", "options": ["London", "Paris", "Rome", "Oslo"], "answer": "London",
     "difficulty": "easy", "explanation": "He was born in Maida Vale, London.", "resource_hint": "Maida Vale"},
    {"question": "What did he break?", "options": ["Enigma", "Lorenz", "Purple", "Typex"], "answer": "Enigma",
     "difficulty": "hard", "explanation": "He worked on Enigma at Bletchley Park.", "resource_hint": "Bletchley Park"}
  ],
  "related_topics": [
    {"title": "Enigma machine", "description": "The cipher he helped break.", "search_query": "Enigma machine history"}
  ]
}`

func TestLLMGenerator_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(goodOutput)})
	g := New(mock, DefaultConfig())

	a, err := g.Generate(context.Background(), "Alan Turing", "Alan Turing was born in London.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.QuizContent) != 2 || a.QuizContent[1].Difficulty != quiz.DifficultyHard {
		t.Fatalf("quiz_content = %+v", a.QuizContent)
	}
	if a.KeyEntities.Organizations[0] != "GCHQ" || a.RelatedTopics[0].SearchQuery != "Enigma machine history" {
		t.Fatalf("artifact = %+v", a)
	}

	req := mock.Calls[0]
	if req.Schema != QuizSchema || req.Temperature != 0.5 || req.Article != "Alan Turing" {
		t.Fatalf("request = %+v", req)
	}
	if !strings.Contains(req.Prompt, "Article: Alan Turing") {
		t.Fatalf("prompt missing title: %s", req.Prompt)
	}
}

func TestLLMGenerator_DefaultSummary(t *testing.T) {
	out := strings.Replace(goodOutput, "Alan Turing was a mathematician.", "", 1)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(out)})

	a, err := New(mock, DefaultConfig()).Generate(context.Background(), "", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Summary != defaultSummary {
		t.Fatalf("summary = %q", a.Summary)
	}
}

func TestLLMGenerator_AnswerNotAnOption(t *testing.T) {
	out := strings.Replace(goodOutput, `"answer": "Enigma"`, `"answer": "Colossus"`, 1)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(out)})

	_, err := New(mock, DefaultConfig()).Generate(context.Background(), "", "text")
	var contract *quiz.ContractError
	if !errors.As(err, &contract) {
		t.Fatalf("expected ContractError, got %T: %v", err, err)
	}
	if contract.Index != 1 {
		t.Fatalf("index = %d, want 1", contract.Index)
	}
}

func TestLLMGenerator_SchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"summary":"s"}`)})

	_, err := New(mock, DefaultConfig()).Generate(context.Background(), "", "text")
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
	}
}

func TestBuildUserMessage_Truncates(t *testing.T) {
	text := strings.Repeat("a", 9000)
	msg := buildUserMessage("", text, DefaultConfig().MaxTextLen)

	if strings.Contains(msg, "Article:") {
		t.Error("untitled article should not have a title line")
	}
	body := strings.TrimPrefix(msg, "WIKIPEDIA TEXT:\n")
	if len(body) != 8000 {
		t.Fatalf("text length = %d, want 8000", len(body))
	}
}
