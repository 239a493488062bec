package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a senior educator turning Wikipedia articles into quizzes.

Rules:
- Write at least 10 multiple-choice questions, each with exactly 4 distinct options.
- Mix the difficulty: 3 easy, 4 medium and 3 hard questions at minimum.
- The answer must be the exact text of one of the options.
- Every question needs a two-sentence explanation that reinforces the fact being tested.
- Only ask about facts stated in the article text.
- Extract the people, organizations and locations the article names.
- Suggest 3 to 5 related topics. Each title must be a Wikipedia-style subject, with a search query for Google or YouTube.`

// buildUserMessage embeds the article text, cut to maxLen runes.
func buildUserMessage(title, text string, maxLen int) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "Article: %s\n\n", title)
	}
	b.WriteString("WIKIPEDIA TEXT:\n")
	b.WriteString(truncate(text, maxLen))
	return b.String()
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
