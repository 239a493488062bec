package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/wikiquiz/internal/api"
	"github.com/abhisek/wikiquiz/internal/quiz"
)

// User-facing messages.
const (
	MsgInvalidURL       = "Please enter a valid Wikipedia URL."
	MsgGenerateFailed   = "Failed to generate quiz. Please try again later."
	MsgNetwork          = "Network error: Is the backend server running?"
	MsgInvalidQuiz      = "The server returned an invalid quiz."
	MsgDeleteFailed     = "Could not delete from server."
	MsgBackendNotActive = "Check if your backend is running!"
)

// ValidationError rejects a URL before any network call.
type ValidationError struct {
	URL string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid wikipedia url %q", e.URL)
}

// DeleteFailure wraps the error of a failed delete.
type DeleteFailure struct {
	ID  int
	Err error
}

func (e *DeleteFailure) Error() string {
	return fmt.Sprintf("delete quiz %d: %v", e.ID, e.Err)
}

func (e *DeleteFailure) Unwrap() error { return e.Err }

// ErrorMessage maps an error from any session operation to the text shown
// to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var deleteErr *DeleteFailure
	if errors.As(err, &deleteErr) {
		if errors.Is(err, api.ErrBackendUnavailable) {
			return MsgBackendNotActive
		}
		return MsgDeleteFailed
	}

	var validationErr *ValidationError
	var apiErr *api.APIError
	var contractErr *quiz.ContractError
	var decodeErr *api.DecodeError
	switch {
	case errors.As(err, &validationErr):
		return MsgInvalidURL
	case errors.Is(err, api.ErrBackendUnavailable):
		return MsgNetwork
	case errors.As(err, &apiErr):
		if detail := strings.TrimSpace(apiErr.Detail); detail != "" {
			return detail
		}
		return MsgGenerateFailed
	case errors.As(err, &contractErr), errors.As(err, &decodeErr):
		return MsgInvalidQuiz
	default:
		return err.Error()
	}
}
