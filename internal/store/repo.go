package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/wikiquiz/internal/quiz"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// QuizRepo persists generated quizzes; it is the server-side history.
type QuizRepo interface {
	// FindByURL returns the oldest quiz generated for url, or ErrNotFound.
	FindByURL(ctx context.Context, url string) (*quiz.Artifact, error)

	// Create stores a and returns it with ID set.
	Create(ctx context.Context, a *quiz.Artifact) (*quiz.Artifact, error)

	// List returns every stored quiz in insertion order.
	List(ctx context.Context) ([]quiz.HistoryEntry, error)

	// Get returns the quiz with id, or ErrNotFound.
	Get(ctx context.Context, id int) (*quiz.Artifact, error)

	// Delete removes the quiz with id. It returns ErrNotFound when no row
	// matched.
	Delete(ctx context.Context, id int) error
}

// Attempt is one graded quiz submission.
type Attempt struct {
	ID        int       `db:"id"`
	SessionID string    `db:"session_id"`
	URL       string    `db:"url"`
	Title     string    `db:"title"`
	Score     int       `db:"score"`
	Total     int       `db:"total"`
	CreatedAt time.Time `db:"created_at"`
}

// AttemptRepo is the local log of submitted quizzes.
type AttemptRepo interface {
	// Append stores a and returns it with ID and CreatedAt set.
	Append(ctx context.Context, a Attempt) (Attempt, error)

	// Recent returns up to limit attempts, newest first. A limit <= 0
	// returns all.
	Recent(ctx context.Context, limit int) ([]Attempt, error)
}
