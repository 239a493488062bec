package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wikiquiz/internal/scraper"
	"github.com/abhisek/wikiquiz/internal/store"
)

type generateRequest struct {
	URL          string `json:"url"`
	ForceRefresh bool   `json:"force_refresh"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// generateQuiz serves a stored quiz for a known URL unless force_refresh
// is set; otherwise it scrapes, generates and stores a new one.
func (s *Server) generateQuiz(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, detailInvalidBody)
	}
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return fiber.NewError(fiber.StatusBadRequest, detailURLRequired)
	}
	ctx := c.UserContext()

	if !req.ForceRefresh {
		cached, err := s.deps.Quizzes.FindByURL(ctx, url)
		switch {
		case err == nil:
			s.logger.Info("cache hit", zap.String("url", url), zap.Int("id", cached.ID))
			cached.IsCached = true
			cached.RawHTML = ""
			return c.JSON(cached)
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
	}

	s.logger.Info("cache miss, generating", zap.String("url", url), zap.Bool("force_refresh", req.ForceRefresh))
	article, err := s.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, scraper.ErrUnreachable) {
			return fiber.NewError(fiber.StatusBadRequest, detailUnreachable)
		}
		return fiber.NewError(fiber.StatusInternalServerError, prefixScrape+err.Error())
	}

	generated, err := s.deps.Generator.Generate(ctx, article.Title, article.Text)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, prefixGeneration+err.Error())
	}
	generated.URL = url
	generated.Title = article.Title
	generated.RawHTML = article.RawHTML

	saved, err := s.deps.Quizzes.Create(ctx, generated)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, prefixStorageWrite+err.Error())
	}
	saved.IsCached = false
	return c.JSON(saved)
}

func (s *Server) history(c *fiber.Ctx) error {
	entries, err := s.deps.Quizzes.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (s *Server) deleteQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, detailInvalidID)
	}

	if err := s.deps.Quizzes.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, detailNotFound)
		}
		return err
	}
	s.logger.Info("quiz deleted", zap.Int("id", id))
	return c.JSON(messageResponse{Message: messageDeleted})
}
