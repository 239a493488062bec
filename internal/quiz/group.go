package quiz

import "strings"

// Bucket is a run of questions sharing one difficulty label.
type Bucket struct {
	Difficulty Difficulty
	Items      []Question
}

// Group partitions items into easy, medium and hard buckets, in that order.
// Labels are compared case-insensitively. Empty buckets are omitted and
// items keep their input order. Items with any other label are dropped;
// see Ungrouped.
func Group(items []Question) []Bucket {
	var buckets []Bucket
	for _, level := range Difficulties {
		var matched []Question
		for _, q := range items {
			if normalize(q.Difficulty) == level {
				matched = append(matched, q)
			}
		}
		if len(matched) == 0 {
			continue
		}
		buckets = append(buckets, Bucket{Difficulty: level, Items: matched})
	}
	return buckets
}

// Ungrouped returns the items Group drops because their label is not one of
// the known difficulties.
func Ungrouped(items []Question) []Question {
	var out []Question
	for _, q := range items {
		switch normalize(q.Difficulty) {
		case DifficultyEasy, DifficultyMedium, DifficultyHard:
		default:
			out = append(out, q)
		}
	}
	return out
}

func normalize(d Difficulty) Difficulty {
	return Difficulty(strings.ToLower(strings.TrimSpace(string(d))))
}
