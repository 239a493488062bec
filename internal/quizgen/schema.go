package quizgen

import "github.com/abhisek/wikiquiz/internal/llm"

func stringArray(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "wiki-quiz",
	Description: "A multiple-choice quiz with summary, entities and further reading for one article",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "A three-sentence summary of the article",
			},
			"key_entities": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"people":        stringArray("People named in the article"),
					"organizations": stringArray("Organizations named in the article"),
					"locations":     stringArray("Places named in the article"),
				},
				"required":             []any{"people", "organizations", "locations"},
				"additionalProperties": false,
			},
			"quiz": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "A clear, self-contained question answerable from the article",
						},
						"options": stringArray("Exactly 4 distinct options"),
						"answer": map[string]any{
							"type":        "string",
							"description": "The exact text of the correct option",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Two sentences explaining why the answer is correct",
						},
						"resource_hint": map[string]any{
							"type":        "string",
							"description": "A sub-topic the learner can research further",
						},
					},
					"required":             []any{"question", "options", "answer", "difficulty", "explanation", "resource_hint"},
					"additionalProperties": false,
				},
			},
			"related_topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":        map[string]any{"type": "string", "description": "A Wikipedia article title"},
						"description":  map[string]any{"type": "string", "description": "Why the topic is worth reading"},
						"search_query": map[string]any{"type": "string", "description": "A search term for Google or YouTube"},
					},
					"required":             []any{"title", "description", "search_query"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"summary", "key_entities", "quiz", "related_topics"},
		"additionalProperties": false,
	},
}
