// Package quizgen turns article text into a quiz with an LLM.
package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/wikiquiz/internal/llm"
	"github.com/abhisek/wikiquiz/internal/quiz"
)

// defaultSummary stands in for a summary the model left empty.
const defaultSummary = "No summary generated."

// Generator produces quiz content for an article.
type Generator interface {
	// Generate returns the summary, entities, questions and related topics
	// for the article. Title, URL and ID are left for the caller.
	Generate(ctx context.Context, title, text string) (*quiz.Artifact, error)
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response. The model names the question list
// "quiz"; the artifact calls it quiz_content.
type quizOutput struct {
	Summary       string              `json:"summary"`
	KeyEntities   quiz.KeyEntities    `json:"key_entities"`
	Quiz          []quiz.Question     `json:"quiz"`
	RelatedTopics []quiz.RelatedTopic `json:"related_topics"`
}

func (g *LLMGenerator) Generate(ctx context.Context, title, text string) (*quiz.Artifact, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserMessage(title, text, g.config.MaxTextLen),
		Schema:      QuizSchema,
		Article:     title,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	a := &quiz.Artifact{
		Summary:       raw.Summary,
		KeyEntities:   raw.KeyEntities,
		QuizContent:   raw.Quiz,
		RelatedTopics: raw.RelatedTopics,
	}
	if a.Summary == "" {
		a.Summary = defaultSummary
	}
	if a.QuizContent == nil {
		a.QuizContent = []quiz.Question{}
	}
	if a.RelatedTopics == nil {
		a.RelatedTopics = []quiz.RelatedTopic{}
	}

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("generated quiz rejected: %w", err)
	}
	return a, nil
}
