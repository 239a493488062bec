package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/wikiquiz/internal/llm"
	"github.com/abhisek/wikiquiz/internal/logger"
	"github.com/abhisek/wikiquiz/internal/quizgen"
	"github.com/abhisek/wikiquiz/internal/scraper"
	"github.com/abhisek/wikiquiz/internal/server"
)

const (
	scrapeTimeout   = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		provider, err := llm.NewProvider(ctx, cfg.LLM, log)
		if err != nil {
			return fmt.Errorf("llm provider: %w", err)
		}

		srv := server.New(server.Deps{
			Quizzes:   st.Quizzes(),
			Fetcher:   scraper.New(&http.Client{Timeout: scrapeTimeout}, log),
			Generator: quizgen.New(provider, quizgen.DefaultConfig()),
		}, cfg.Server, log)

		log.Info("backend configured",
			zap.String("provider", cfg.LLM.Provider),
			zap.Int("port", port),
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Listen(port)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		log.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides server.port)")
}
