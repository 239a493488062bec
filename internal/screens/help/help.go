// Package help is the key binding reference pushed over the workspace.
package help

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wikiquiz/internal/router"
	"github.com/abhisek/wikiquiz/internal/screen"
	"github.com/abhisek/wikiquiz/internal/ui/layout"
	"github.com/abhisek/wikiquiz/internal/ui/theme"
)

type section struct {
	name  string
	binds []layout.KeyHint
}

var sections = []section{
	{"Generate", []layout.KeyHint{
		{Key: "/ or i", Description: "edit the article URL"},
		{Key: "enter", Description: "generate a quiz for the URL"},
		{Key: "r", Description: "regenerate a cached quiz"},
		{Key: "esc", Description: "dismiss an error, leave the URL input"},
	}},
	{"Quiz", []layout.KeyHint{
		{Key: "↑↓ j k", Description: "move between questions"},
		{Key: "←→ h l", Description: "move between options"},
		{Key: "1-9 enter", Description: "select an option"},
		{Key: "s / q", Description: "study mode / quiz mode"},
		{Key: "x", Description: "toggle the explanation"},
		{Key: "S", Description: "submit answers (quiz mode)"},
		{Key: "d", Description: "article details (study mode)"},
	}},
	{"History", []layout.KeyHint{
		{Key: "tab 1 2", Description: "switch tabs"},
		{Key: "enter", Description: "open the selected quiz"},
		{Key: "D", Description: "delete the selected quiz"},
		{Key: "r", Description: "refresh the list"},
	}},
}

// HelpScreen lists every key binding of the workspace.
type HelpScreen struct{}

var _ screen.Screen = (*HelpScreen)(nil)

// New creates the help screen.
func New() *HelpScreen {
	return &HelpScreen{}
}

func (h *HelpScreen) Init() tea.Cmd {
	return nil
}

func (h *HelpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "?", "q", "enter":
			return h, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return h, nil
}

func (h *HelpScreen) View(width, height int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Title.Render(s.name) + "\n")
		for _, k := range s.binds {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				keyStyle.Width(12).Render(k.Key), theme.Body.Render(k.Description)))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Render(strings.TrimRight(b.String(), "\n")))
}

func (h *HelpScreen) Title() string {
	return "Help"
}

func (h *HelpScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Ctrl+C", Description: "Quit"}}
}
