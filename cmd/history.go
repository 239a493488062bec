package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wikiquiz/internal/session"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List quizzes stored by the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := newClient().History(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s (%w)", session.ErrorMessage(err), err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No quizzes found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-40s  %s\n", "ID", "Title", "URL")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, e := range entries {
			title := e.Title
			if r := []rune(title); len(r) > 40 {
				title = string(r[:39]) + "…"
			}
			fmt.Fprintf(out, "%-5d  %-40s  %s\n", e.ID, title, e.URL)
		}
		return nil
	},
}
