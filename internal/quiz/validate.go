package quiz

import "fmt"

// ContractError reports a quiz payload that violates the data contract,
// e.g. an answer that is not one of the question's options.
type ContractError struct {
	Index    int
	Question string
	Reason   string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("question %d (%q): %s", e.Index, e.Question, e.Reason)
}

// Validate checks every question of the artifact. It returns the first
// violation found.
func (a *Artifact) Validate() error {
	for i, q := range a.QuizContent {
		if err := q.validate(); err != "" {
			return &ContractError{Index: i, Question: q.Question, Reason: err}
		}
	}
	return nil
}

func (q Question) validate() string {
	if len(q.Options) == 0 {
		return "no options"
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if seen[opt] {
			return fmt.Sprintf("duplicate option %q", opt)
		}
		seen[opt] = true
	}
	if !seen[q.Answer] {
		return fmt.Sprintf("answer %q is not one of the options", q.Answer)
	}
	return ""
}
