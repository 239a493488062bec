package quiz

// Answers maps a question's text to the option the user selected.
// Questions with identical text share one entry.
type Answers map[string]string

// Selected returns the option chosen for question, if any.
func (a Answers) Selected(question string) (string, bool) {
	opt, ok := a[question]
	return opt, ok
}

// With returns a copy of a with question set to option. The receiver is
// left untouched.
func (a Answers) With(question, option string) Answers {
	out := make(Answers, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[question] = option
	return out
}

// Score counts the items whose selected option equals the correct answer.
// Unanswered items count as incorrect.
func Score(items []Question, answers Answers) int {
	total := 0
	for _, q := range items {
		if opt, ok := answers[q.Question]; ok && q.IsCorrect(opt) {
			total++
		}
	}
	return total
}
