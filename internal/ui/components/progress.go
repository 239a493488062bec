package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wikiquiz/internal/ui/theme"
)

// ScoreBar displays a score as a horizontal bar with "score / total".
type ScoreBar struct {
	Score int
	Total int
	Width int
}

// Fraction is the filled share of the bar, 0 for an empty quiz.
func (p ScoreBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Score) / float64(p.Total)
}

// View renders the score bar.
func (p ScoreBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Score: %d / %d", p.Score, p.Total))

	barWidth := max(p.Width-lipgloss.Width(label)-8, 4)
	filled := min(max(int(float64(barWidth)*p.Fraction()), 0), barWidth)

	bar := theme.ScoreFilled.Render(strings.Repeat(" ", filled)) +
		theme.ScoreEmpty.Render(strings.Repeat(" ", barWidth-filled))

	pct := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %d%%", int(p.Fraction()*100)))

	return label + "  " + bar + pct
}
