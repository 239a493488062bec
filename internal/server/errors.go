package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Error details sent to clients.
const (
	detailURLRequired  = "URL is required"
	detailUnreachable  = "Could not reach Wikipedia. Check the URL."
	detailNotFound     = "Quiz not found"
	detailInvalidID    = "Quiz id must be an integer"
	detailInvalidBody  = "Request body must be JSON"
	detailInternal     = "Internal server error"
	prefixScrape       = "Scraping failed: "
	prefixGeneration   = "AI failed to structure the quiz correctly: "
	messageDeleted     = "Quiz deleted successfully"
	prefixStorageWrite = "Could not save quiz: "
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail string `json:"detail"`
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// errorHandler renders every error as {"detail": ...}. Errors that are
// not *fiber.Error are logged and hidden behind a generic detail.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				logger.Error("request failed",
					zap.String("path", c.Path()),
					zap.Int("status", fe.Code),
					zap.String("detail", fe.Message),
				)
			}
			return c.Status(fe.Code).JSON(errorResponse{Detail: fe.Message})
		}

		logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: detailInternal})
	}
}
