package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/wikiquiz/internal/api"
	"github.com/abhisek/wikiquiz/internal/config"
	"github.com/abhisek/wikiquiz/internal/logger"
	"github.com/abhisek/wikiquiz/internal/store"
)

// cfg is loaded once in PersistentPreRunE for every subcommand.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wikiquiz",
	Short: "Quiz yourself on any Wikipedia article",
	Long: "Wikiquiz turns a Wikipedia article into a multiple-choice quiz.\n" +
		"Run without a subcommand to open the terminal UI.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (default ./config.yaml or $XDG_CONFIG_HOME/wikiquiz/config.yaml)")
	flags.String("backend", "", "Quiz backend URL (overrides WIKIQUIZ_BACKEND_URL)")
	flags.String("db", "", "Path to SQLite database file (overrides WIKIQUIZ_DB_PATH)")
	flags.String("log-level", "", "Log level: debug or info")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(attemptsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration with flags taking precedence and initializes
// the logger. The TUI owns stdout, so everything except serve logs to a
// file unless log.file says otherwise.
func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	v, err := config.New(path)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err = config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logCfg := cfg.Log
	if logCfg.File == "" && cmd.Name() != serveCmd.Name() {
		logCfg.File = logger.DefaultFile()
	}
	if err := logger.Initialize(logCfg); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		"backend.url": "backend",
		"db.path":     "db",
		"log.level":   "log-level",
	}
	for key, name := range bindings {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// newClient returns a backend client using the configured URL and timeout.
func newClient() *api.Client {
	return api.New(cfg.Backend.URL, &http.Client{Timeout: cfg.Backend.Timeout}, logger.Get())
}

// openStore opens the local database at db.path, or the default XDG path.
func openStore() (*store.Store, error) {
	path := cfg.DB.Path
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
