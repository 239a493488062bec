package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "List your submitted quiz scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := st.Attempts().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts yet. Submit a quiz in quiz mode to record one.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-7s  %s\n", "ID", "Submitted", "Score", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, a := range attempts {
			fmt.Fprintf(out, "%-5d  %-19s  %-7s  %s\n",
				a.ID,
				a.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				fmt.Sprintf("%d/%d", a.Score, a.Total),
				a.Title,
			)
		}
		return nil
	},
}

func init() {
	attemptsCmd.Flags().IntP("limit", "n", 10, "Number of attempts to show (0 for all)")
}
