package quiz

import (
	"encoding/json"
	"errors"
	"testing"
)

func item(text string, d Difficulty) Question {
	return Question{
		Question:   text,
		Options:    []string{"a", "b", "c", "d"},
		Answer:     "a",
		Difficulty: d,
	}
}

func TestGroup_FixedOrderAndOmitsEmpty(t *testing.T) {
	items := []Question{
		item("q0", DifficultyEasy),
		item("q1", DifficultyHard),
		item("q2", DifficultyEasy),
	}

	buckets := Group(items)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].Difficulty != DifficultyEasy || buckets[1].Difficulty != DifficultyHard {
		t.Fatalf("bucket order = %s, %s", buckets[0].Difficulty, buckets[1].Difficulty)
	}
	if got := buckets[0].Items; len(got) != 2 || got[0].Question != "q0" || got[1].Question != "q2" {
		t.Errorf("easy bucket = %+v, want [q0 q2]", got)
	}
	if got := buckets[1].Items; len(got) != 1 || got[0].Question != "q1" {
		t.Errorf("hard bucket = %+v, want [q1]", got)
	}
}

func TestGroup_CaseInsensitive(t *testing.T) {
	buckets := Group([]Question{
		item("q0", "MEDIUM"),
		item("q1", "Easy"),
		item("q2", " hard "),
	})

	want := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
	if len(buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(buckets), len(want))
	}
	for i, b := range buckets {
		if b.Difficulty != want[i] {
			t.Errorf("bucket %d = %s, want %s", i, b.Difficulty, want[i])
		}
	}
}

func TestGroup_PartitionDropsUnknownLabels(t *testing.T) {
	items := []Question{
		item("q0", DifficultyEasy),
		item("q1", "expert"),
		item("q2", DifficultyMedium),
		item("q3", ""),
	}

	count := 0
	seen := map[string]int{}
	for _, b := range Group(items) {
		for _, q := range b.Items {
			count++
			seen[q.Question]++
		}
	}
	if count != 2 {
		t.Errorf("grouped %d items, want 2", count)
	}
	for q, n := range seen {
		if n != 1 {
			t.Errorf("%s appears %d times", q, n)
		}
	}

	dropped := Ungrouped(items)
	if len(dropped) != 2 || dropped[0].Question != "q1" || dropped[1].Question != "q3" {
		t.Errorf("Ungrouped = %+v, want [q1 q3]", dropped)
	}
}

func TestGroup_Empty(t *testing.T) {
	if got := Group(nil); len(got) != 0 {
		t.Errorf("Group(nil) = %+v, want empty", got)
	}
}

func TestScore(t *testing.T) {
	items := []Question{
		{Question: "Capital of France?", Options: []string{"Paris", "Rome"}, Answer: "Paris"},
		{Question: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
		{Question: "Sky colour?", Options: []string{"Blue", "Green"}, Answer: "Blue"},
	}

	tests := []struct {
		name    string
		answers Answers
		want    int
	}{
		{"none answered", Answers{}, 0},
		{"nil answers", nil, 0},
		{"all correct", Answers{"Capital of France?": "Paris", "2+2?": "4", "Sky colour?": "Blue"}, 3},
		{"one wrong", Answers{"Capital of France?": "Rome", "2+2?": "4", "Sky colour?": "Blue"}, 2},
		{"partial", Answers{"2+2?": "4"}, 1},
		{"unknown question ignored", Answers{"other": "x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(items, tt.answers)
			if got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
			if got < 0 || got > len(items) {
				t.Errorf("Score %d out of range [0, %d]", got, len(items))
			}
		})
	}
}

func TestAnswers_WithCopies(t *testing.T) {
	a := Answers{"q1": "a"}
	b := a.With("q1", "b")

	if a["q1"] != "a" {
		t.Errorf("original mutated: %q", a["q1"])
	}
	if opt, ok := b.Selected("q1"); !ok || opt != "b" {
		t.Errorf("Selected = %q, %v; want b, true", opt, ok)
	}
	if _, ok := b.Selected("q2"); ok {
		t.Error("expected q2 unanswered")
	}
}

func TestRelatedTopic_DecodesBothForms(t *testing.T) {
	var topics []RelatedTopic
	raw := `["Special relativity", {"title": "Photoelectric effect", "description": "Nobel work", "search_query": "photoelectric effect explained"}]`
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("got %d topics, want 2", len(topics))
	}
	if topics[0].Title != "Special relativity" || topics[0].Description != defaultTopicDescription {
		t.Errorf("string topic = %+v", topics[0])
	}
	if topics[1].Title != "Photoelectric effect" || topics[1].Description != "Nobel work" || topics[1].SearchQuery == "" {
		t.Errorf("object topic = %+v", topics[1])
	}
	if got := topics[0].WikiURL(); got != "https://en.wikipedia.org/wiki/Special_relativity" {
		t.Errorf("WikiURL = %q", got)
	}
}

func TestRelatedTopic_RejectsOtherShapes(t *testing.T) {
	var topic RelatedTopic
	if err := json.Unmarshal([]byte(`42`), &topic); err == nil {
		t.Error("expected error for numeric topic")
	}
}

func TestArtifact_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"valid", Question{Question: "q", Options: []string{"a", "b"}, Answer: "b"}, false},
		{"answer not in options", Question{Question: "q", Options: []string{"a", "b"}, Answer: "c"}, true},
		{"no options", Question{Question: "q", Answer: "a"}, true},
		{"duplicate options", Question{Question: "q", Options: []string{"a", "a"}, Answer: "a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Artifact{QuizContent: []Question{tt.q}}
			err := a.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var ce *ContractError
			if tt.wantErr && !errors.As(err, &ce) {
				t.Errorf("expected *ContractError, got %T", err)
			}
		})
	}
}
