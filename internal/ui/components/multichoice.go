package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wikiquiz/internal/ui/theme"
)

// MultiChoice renders one multiple-choice question. It holds no state of
// its own; the caller fills it from the session on every render.
type MultiChoice struct {
	Number   int
	Question string
	Options  []string
	Answer   string

	// Chosen is the selected option, empty when unanswered.
	Chosen string
	// Cursor is the highlighted option index, -1 when the question is
	// not focused.
	Cursor int
	// Reveal marks the correct option and the wrong pick.
	Reveal bool
	// Explanation is printed below the options when non-empty.
	Explanation string
}

// View renders the question and its options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	qStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(max(width-2, 10))
	if m.Cursor >= 0 {
		qStyle = qStyle.Foreground(theme.Primary)
	}
	b.WriteString(qStyle.Render(fmt.Sprintf("%d. %s", m.Number, m.Question)))
	b.WriteString("\n")

	for i, opt := range m.Options {
		mark := "○"
		if opt == m.Chosen {
			mark = "●"
		}
		prefix := "   "
		if i == m.Cursor {
			prefix = " ▸ "
		}
		line := fmt.Sprintf("%s%d) %s %s", prefix, i+1, mark, opt)

		style := theme.Unselected
		switch {
		case m.Reveal && opt == m.Answer:
			style = theme.Correct
			line += "  ✓"
		case m.Reveal && opt == m.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case i == m.Cursor:
			style = theme.Selected
		case opt == m.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.Explanation != "" {
		b.WriteString(theme.Hint.Width(max(width-6, 10)).PaddingLeft(5).Render(m.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}
