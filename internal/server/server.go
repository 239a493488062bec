// Package server is the reference HTTP backend: it scrapes an article,
// generates a quiz for it and keeps every generated quiz as history.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/abhisek/wikiquiz/internal/config"
	"github.com/abhisek/wikiquiz/internal/quizgen"
	"github.com/abhisek/wikiquiz/internal/scraper"
	"github.com/abhisek/wikiquiz/internal/store"
)

// ArticleFetcher downloads and extracts an article.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (*scraper.Article, error)
}

// Deps are the collaborators the handlers use.
type Deps struct {
	Quizzes   store.QuizRepo
	Fetcher   ArticleFetcher
	Generator quizgen.Generator
}

// Server wraps the fiber app.
type Server struct {
	app    *fiber.App
	deps   Deps
	logger *zap.Logger
}

// New builds the app with middleware and routes installed.
func New(deps Deps, cfg config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{deps: deps, logger: logger}

	s.app = fiber.New(fiber.Config{
		AppName:               "wikiquiz",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	s.app.Use(recover.New())
	s.app.Use(requestLogger(logger))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	s.app.Post("/generate-quiz", s.generateQuiz)
	s.app.Get("/history", s.history)
	s.app.Delete("/quizzes/:id", s.deleteQuiz)

	return s
}

// App returns the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on port until Shutdown is called.
func (s *Server) Listen(port int) error {
	s.logger.Info("starting server", zap.Int("port", port))
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.app.ShutdownWithContext(ctx)
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet; report the status it will set.
			status = statusOf(err)
		}
		logger.Info("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}
