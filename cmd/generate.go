package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wikiquiz/internal/quiz"
	"github.com/abhisek/wikiquiz/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate <wikipedia-url>",
	Short: "Generate a quiz and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		asJSON, _ := cmd.Flags().GetBool("json")

		// Same validation as the TUI: nothing is sent for a non-Wikipedia URL.
		s, req := session.StartGenerate(session.SetURL(session.New(), args[0]), force)
		if req == nil {
			return errors.New(session.ErrorMessage(s.Err))
		}

		artifact, err := newClient().GenerateQuiz(cmd.Context(), req.URL, req.ForceRefresh)
		if err != nil {
			return fmt.Errorf("%s (%w)", session.ErrorMessage(err), err)
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(artifact)
		}
		printQuiz(cmd.OutOrStdout(), artifact)
		return nil
	},
}

func init() {
	generateCmd.Flags().Bool("force", false, "Bypass the backend cache and regenerate")
	generateCmd.Flags().Bool("json", false, "Print the raw quiz as JSON")
}

// printQuiz writes the quiz grouped by difficulty with answers marked.
func printQuiz(w io.Writer, a *quiz.Artifact) {
	title := a.Title
	if a.IsCached {
		title += " [cached]"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", max(len([]rune(title)), 20)))
	if a.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", a.Summary)
	}

	if !a.KeyEntities.Empty() {
		fmt.Fprintln(w)
		printEntities(w, "People", a.KeyEntities.People)
		printEntities(w, "Locations", a.KeyEntities.Locations)
		printEntities(w, "Organizations", a.KeyEntities.Organizations)
	}

	n := 1
	for _, b := range quiz.Group(a.QuizContent) {
		fmt.Fprintf(w, "\n%s\n", strings.ToUpper(string(b.Difficulty)))
		for _, q := range b.Items {
			fmt.Fprintf(w, "%d. %s\n", n, q.Question)
			for i, opt := range q.Options {
				mark := " "
				if q.IsCorrect(opt) {
					mark = "*"
				}
				fmt.Fprintf(w, "   %s %c) %s\n", mark, 'a'+i, opt)
			}
			if q.Explanation != "" {
				fmt.Fprintf(w, "     %s\n", q.Explanation)
			}
			n++
		}
	}
	if dropped := quiz.Ungrouped(a.QuizContent); len(dropped) > 0 {
		fmt.Fprintf(w, "\n(%d question(s) with an unknown difficulty omitted)\n", len(dropped))
	}

	if len(a.RelatedTopics) > 0 {
		fmt.Fprintln(w, "\nRelated topics")
		for _, t := range a.RelatedTopics {
			fmt.Fprintf(w, "  %s  %s\n", t.Title, t.WikiURL())
		}
	}
}

func printEntities(w io.Writer, label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(names, ", "))
}
