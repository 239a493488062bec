package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Difficulty is the difficulty label attached to a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the bucket labels in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Question is a single multiple-choice item of a generated quiz.
type Question struct {
	Question     string     `json:"question"`
	Options      []string   `json:"options"`
	Answer       string     `json:"answer"`
	Explanation  string     `json:"explanation"`
	Difficulty   Difficulty `json:"difficulty"`
	ResourceHint string     `json:"resource_hint,omitempty"`
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.Answer
}

// KeyEntities groups the named entities extracted from the article.
type KeyEntities struct {
	People        []string `json:"people"`
	Locations     []string `json:"locations"`
	Organizations []string `json:"organizations,omitempty"`
}

// Empty reports whether no entities were extracted.
func (k KeyEntities) Empty() bool {
	return len(k.People) == 0 && len(k.Locations) == 0 && len(k.Organizations) == 0
}

// defaultTopicDescription is shown for topics that arrive as bare strings.
const defaultTopicDescription = "Explore more on Wikipedia."

// RelatedTopic is a further-reading suggestion. The backend sends either a
// bare string or an object, both decode into this type.
type RelatedTopic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SearchQuery string `json:"search_query,omitempty"`
}

// UnmarshalJSON accepts both `"Topic"` and `{"title": "Topic", ...}`.
func (t *RelatedTopic) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*t = RelatedTopic{Title: title, Description: defaultTopicDescription}
		return nil
	}

	type plain RelatedTopic
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("related topic: %w", err)
	}
	*t = RelatedTopic(obj)
	return nil
}

// WikiURL returns the English Wikipedia link for the topic title.
func (t RelatedTopic) WikiURL() string {
	return "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(t.Title, " ", "_")
}

// Artifact is a generated quiz as returned by the backend. It is treated as
// immutable once received and replaced wholesale on regeneration.
type Artifact struct {
	ID            int            `json:"id,omitempty"`
	Title         string         `json:"title,omitempty"`
	URL           string         `json:"url,omitempty"`
	Summary       string         `json:"summary"`
	KeyEntities   KeyEntities    `json:"key_entities"`
	QuizContent   []Question     `json:"quiz_content"`
	RelatedTopics []RelatedTopic `json:"related_topics"`
	IsCached      bool           `json:"is_cached"`
	RawHTML       string         `json:"raw_html,omitempty"`
}

// HistoryEntry is the server's summary of a previously generated quiz.
type HistoryEntry struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
