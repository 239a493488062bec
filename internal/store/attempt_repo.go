package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type attemptRepo struct {
	db *sqlx.DB
}

func (r *attemptRepo) Append(ctx context.Context, a Attempt) (Attempt, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO attempts (session_id, url, title, score, total, created_at)
		VALUES (:session_id, :url, :title, :score, :total, :created_at)`, a)
	if err != nil {
		return Attempt{}, fmt.Errorf("insert attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Attempt{}, fmt.Errorf("insert attempt id: %w", err)
	}
	a.ID = int(id)
	return a, nil
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	query := `SELECT id, session_id, url, title, score, total, created_at FROM attempts ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	attempts := []Attempt{}
	if err := r.db.SelectContext(ctx, &attempts, query, args...); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}
