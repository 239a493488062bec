package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wikiquiz/internal/app"
	"github.com/abhisek/wikiquiz/internal/logger"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func runPlay(cmd *cobra.Command) error {
	log := logger.Get()
	client := newClient()

	opts := app.Options{
		Backend: client,
		Logger:  log,
		Status:  backendHost(client.BaseURL()),
	}

	// The attempt log is optional; the quiz works without it.
	st, err := openStore()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Attempt log unavailable:", err)
		log.Warn("attempt log disabled", zap.Error(err))
	} else {
		defer st.Close()
		opts.Attempts = st.Attempts()
	}

	log.Info("starting tui", zap.String("backend", client.BaseURL()))
	return app.Run(opts)
}

func backendHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
