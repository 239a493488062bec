package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/wikiquiz/internal/quiz"
)

type quizRepo struct {
	db *sqlx.DB
}

// quizRow is the table representation; JSON columns are kept as text.
type quizRow struct {
	ID            int       `db:"id"`
	URL           string    `db:"url"`
	Title         string    `db:"title"`
	Summary       string    `db:"summary"`
	KeyEntities   string    `db:"key_entities"`
	QuizContent   string    `db:"quiz_content"`
	RelatedTopics string    `db:"related_topics"`
	RawHTML       string    `db:"raw_html"`
	CreatedAt     time.Time `db:"created_at"`
}

func toArtifact(row *quizRow) (*quiz.Artifact, error) {
	a := &quiz.Artifact{
		ID:      row.ID,
		Title:   row.Title,
		URL:     row.URL,
		Summary: row.Summary,
		RawHTML: row.RawHTML,
	}
	if err := unmarshalColumn(row.KeyEntities, &a.KeyEntities); err != nil {
		return nil, fmt.Errorf("quiz %d key_entities: %w", row.ID, err)
	}
	if err := unmarshalColumn(row.QuizContent, &a.QuizContent); err != nil {
		return nil, fmt.Errorf("quiz %d quiz_content: %w", row.ID, err)
	}
	if err := unmarshalColumn(row.RelatedTopics, &a.RelatedTopics); err != nil {
		return nil, fmt.Errorf("quiz %d related_topics: %w", row.ID, err)
	}
	if a.QuizContent == nil {
		a.QuizContent = []quiz.Question{}
	}
	if a.RelatedTopics == nil {
		a.RelatedTopics = []quiz.RelatedTopic{}
	}
	return a, nil
}

func fromArtifact(a *quiz.Artifact) (*quizRow, error) {
	row := &quizRow{
		URL:     a.URL,
		Title:   a.Title,
		Summary: a.Summary,
		RawHTML: a.RawHTML,
	}
	var err error
	if row.KeyEntities, err = marshalColumn(a.KeyEntities, "{}"); err != nil {
		return nil, err
	}
	if row.QuizContent, err = marshalColumn(a.QuizContent, "[]"); err != nil {
		return nil, err
	}
	if row.RelatedTopics, err = marshalColumn(a.RelatedTopics, "[]"); err != nil {
		return nil, err
	}
	return row, nil
}

func marshalColumn(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode column: %w", err)
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}

func unmarshalColumn(s string, v any) error {
	if s == "" || s == "null" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

func (r *quizRepo) FindByURL(ctx context.Context, url string) (*quiz.Artifact, error) {
	var row quizRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM quizzes WHERE url = ? ORDER BY id LIMIT 1`, url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find quiz by url: %w", err)
	}
	return toArtifact(&row)
}

func (r *quizRepo) Create(ctx context.Context, a *quiz.Artifact) (*quiz.Artifact, error) {
	row, err := fromArtifact(a)
	if err != nil {
		return nil, err
	}
	row.CreatedAt = time.Now().UTC()

	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO quizzes (url, title, summary, key_entities, quiz_content, related_topics, raw_html, created_at)
		VALUES (:url, :title, :summary, :key_entities, :quiz_content, :related_topics, :raw_html, :created_at)`, row)
	if err != nil {
		return nil, fmt.Errorf("insert quiz: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert quiz id: %w", err)
	}

	out := *a
	out.ID = int(id)
	return &out, nil
}

func (r *quizRepo) List(ctx context.Context) ([]quiz.HistoryEntry, error) {
	entries := []quiz.HistoryEntry{}
	if err := r.db.SelectContext(ctx, &entries, `SELECT id, title, url FROM quizzes ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return entries, nil
}

func (r *quizRepo) Get(ctx context.Context, id int) (*quiz.Artifact, error) {
	var row quizRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM quizzes WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz %d: %w", id, err)
	}
	return toArtifact(&row)
}

func (r *quizRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quiz %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quiz %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
