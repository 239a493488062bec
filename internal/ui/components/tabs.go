package components

import (
	"strings"

	"github.com/abhisek/wikiquiz/internal/ui/theme"
)

// Tabs renders a row of tab labels with the active one highlighted.
func Tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	return strings.Join(parts, " ")
}

// Badge renders a short status label such as "CACHED".
func Badge(label string) string {
	return theme.Badge.Render(label)
}
