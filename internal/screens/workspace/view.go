package workspace

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wikiquiz/internal/quiz"
	"github.com/abhisek/wikiquiz/internal/session"
	"github.com/abhisek/wikiquiz/internal/ui/components"
	"github.com/abhisek/wikiquiz/internal/ui/layout"
	"github.com/abhisek/wikiquiz/internal/ui/theme"
)

var tabLabels = []string{"1 Generate", "2 History"}

// View renders the active tab below the tab row. Overlays replace the
// content area.
func (w *Workspace) View(width, height int) string {
	tabs := components.Tabs(tabLabels, int(w.state.Tab))
	bodyHeight := max(height-2, 1)

	var body string
	switch {
	case w.state.Notice != "":
		body = w.viewNotice(width, bodyHeight)
	case w.state.ModalOpen:
		body = w.viewModal(width, bodyHeight)
	case w.state.Tab == session.TabHistory:
		body = w.viewHistory(width, bodyHeight)
	default:
		body = w.viewGenerate(width, bodyHeight)
	}
	return tabs + "\n\n" + body
}

func (w *Workspace) viewGenerate(width, height int) string {
	var head strings.Builder
	head.WriteString(w.input.View())
	head.WriteString("\n")
	if w.state.Preview != "" {
		head.WriteString(theme.Subtitle.Render("  Preview: " + w.state.Preview))
		head.WriteString("\n")
	}
	if w.state.Loading {
		head.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("  %s Reading the article and writing questions...", spinnerFrames[w.frame])))
		head.WriteString("\n")
	}
	if w.state.Err != nil {
		head.WriteString(theme.ErrorBanner.Render(session.ErrorMessage(w.state.Err) + "  [esc] dismiss"))
		head.WriteString("\n")
	}

	headText := strings.TrimRight(head.String(), "\n")
	if w.state.Artifact == nil {
		if !w.state.Loading && w.state.Err == nil {
			headText += "\n\n" + theme.Hint.Render("  Paste a Wikipedia article URL and press Enter.")
		}
		return headText
	}

	lines, focus := w.quizLines(width)
	avail := max(height-lipgloss.Height(headText)-1, 1)
	visible, offset := layout.Window(lines, avail, focus, w.scroll)
	w.scroll = offset
	return headText + "\n\n" + strings.Join(visible, "\n")
}

// quizLines renders the loaded quiz as lines and returns the line index of
// the focused question.
func (w *Workspace) quizLines(width int) ([]string, int) {
	a := w.state.Artifact
	var b strings.Builder

	title := theme.Title.Render(a.Title)
	if a.IsCached {
		title += "  " + components.Badge("CACHED")
	}
	b.WriteString(title + "\n")

	mode := "Study mode: answers visible"
	if w.state.Mode == session.ModeQuiz {
		mode = "Quiz mode: answers hidden until you submit"
	}
	b.WriteString(theme.Subtitle.Render(mode) + "\n")

	if score, ok := w.state.Score(); ok {
		bar := components.ScoreBar{Score: score, Total: w.state.Total(), Width: width}
		b.WriteString("\n" + bar.View() + "\n")
	}

	focusLine := 0
	n := 0
	for _, bucket := range w.state.Buckets() {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(strings.ToUpper(string(bucket.Difficulty))) + "\n")
		for _, q := range bucket.Items {
			chosen, _ := w.state.Answers.Selected(q.Question)
			mc := components.MultiChoice{
				Number:   n + 1,
				Question: q.Question,
				Options:  q.Options,
				Answer:   q.Answer,
				Chosen:   chosen,
				Cursor:   -1,
				Reveal:   w.state.ShowAnswers(),
			}
			if n == w.cursor && !w.input.Focused() {
				mc.Cursor = w.option
				focusLine = strings.Count(b.String(), "\n")
			}
			if w.state.ShowAnswers() && w.explained[q.Question] {
				mc.Explanation = q.Explanation
			}
			b.WriteString(mc.View(width))
			n++
		}
	}

	if dropped := quiz.Ungrouped(a.QuizContent); len(dropped) > 0 {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("%d question(s) with an unknown difficulty are not shown.", len(dropped))) + "\n")
	}

	if len(a.RelatedTopics) > 0 {
		b.WriteString("\n" + theme.Title.Render("Related topics") + "\n")
		for _, t := range a.RelatedTopics {
			b.WriteString("  " + theme.Body.Render(t.Title))
			if t.Description != "" {
				b.WriteString(theme.Subtitle.Render(" - " + t.Description))
			}
			b.WriteString("\n    " + theme.Link.Render(t.WikiURL()) + "\n")
		}
	}

	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n"), focusLine
}

func (w *Workspace) viewModal(width, height int) string {
	a := w.state.Artifact
	if a == nil {
		return ""
	}
	inner := max(min(width-8, 100), 20)

	var b strings.Builder
	b.WriteString(theme.Title.Render(a.Title) + "\n\n")
	b.WriteString(theme.Body.Width(inner).Render(a.Summary) + "\n")

	if !a.KeyEntities.Empty() {
		b.WriteString("\n" + theme.Title.Render("Key entities") + "\n")
		writeEntities(&b, "People", a.KeyEntities.People, inner)
		writeEntities(&b, "Locations", a.KeyEntities.Locations, inner)
		writeEntities(&b, "Organizations", a.KeyEntities.Organizations, inner)
	}
	b.WriteString("\n" + theme.Hint.Render("esc to close"))

	box := theme.Modal.Width(inner + 6).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func writeEntities(b *strings.Builder, label string, names []string, width int) {
	if len(names) == 0 {
		return
	}
	b.WriteString(theme.Subtitle.Render(label+": ") +
		theme.Body.Width(max(width-len(label)-2, 10)).Render(strings.Join(names, ", ")) + "\n")
}

func (w *Workspace) viewNotice(width, height int) string {
	box := theme.Card.Render(
		theme.Incorrect.Render(w.state.Notice) + "\n\n" + theme.Hint.Render("Press Enter to continue"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (w *Workspace) viewHistory(width, height int) string {
	var b strings.Builder

	status := fmt.Sprintf("%d saved quizzes", len(w.state.History))
	if w.state.HistoryLoading {
		status = spinnerFrames[w.frame] + " Loading history..."
	}
	b.WriteString(theme.Subtitle.Render(status) + "\n")
	if w.state.HistoryErr != nil {
		b.WriteString(theme.Incorrect.Render("Could not refresh history: "+session.ErrorMessage(w.state.HistoryErr)) + "\n")
	}
	b.WriteString("\n")

	if len(w.state.History) == 0 {
		if !w.state.HistoryLoading {
			b.WriteString(theme.Hint.Render("  No quizzes yet. Generate one from the first tab."))
		}
		return b.String()
	}

	rows := strings.Split(strings.TrimRight(w.history.View(), "\n"), "\n")
	if w.state.Deleting != nil {
		for i, e := range w.state.History {
			if e.ID == *w.state.Deleting && i < len(rows) {
				rows[i] += theme.Hint.Render("  deleting...")
			}
		}
	}
	avail := max(height-lipgloss.Height(b.String())-3, 1)
	visible, _ := layout.Window(rows, avail, w.history.Selected, 0)
	b.WriteString(strings.Join(visible, "\n"))

	if p := w.state.PendingDelete; p != nil {
		prompt := fmt.Sprintf("Delete %q? [y/n]", p.Title)
		b.WriteString("\n\n" + theme.ErrorBanner.Width(min(width-2, lipgloss.Width(prompt)+2)).Render(prompt))
	}
	return b.String()
}
