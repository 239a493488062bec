package workspace

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wikiquiz/internal/session"
	"github.com/abhisek/wikiquiz/internal/store"
)

// generateDoneMsg carries the result of a generate call.
type generateDoneMsg session.GenerateResult

// historyDoneMsg carries the result of a history fetch.
type historyDoneMsg session.HistoryResult

// deleteDoneMsg carries the result of a delete call.
type deleteDoneMsg session.DeleteResult

// attemptLoggedMsg reports the attempt log write; failures are only logged.
type attemptLoggedMsg struct {
	Err error
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (w *Workspace) generateCmd(req *session.GenerateRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	backend := w.backend
	r := *req
	return tea.Batch(func() tea.Msg {
		a, err := backend.GenerateQuiz(context.Background(), r.URL, r.ForceRefresh)
		return generateDoneMsg{ID: r.ID, Artifact: a, Err: err}
	}, w.startSpinner())
}

func (w *Workspace) historyCmd(req *session.HistoryRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	backend := w.backend
	id := req.ID
	return tea.Batch(func() tea.Msg {
		entries, err := backend.History(context.Background())
		return historyDoneMsg{ID: id, Entries: entries, Err: err}
	}, w.startSpinner())
}

func (w *Workspace) deleteCmd(req *session.DeleteRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	backend := w.backend
	id := req.ID
	return func() tea.Msg {
		return deleteDoneMsg{ID: id, Err: backend.DeleteQuiz(context.Background(), id)}
	}
}

func (w *Workspace) logAttemptCmd() tea.Cmd {
	if w.attempts == nil || w.state.Artifact == nil {
		return nil
	}
	score, _ := w.state.Score()
	attempt := store.Attempt{
		SessionID: w.sessionID,
		URL:       w.state.Artifact.URL,
		Title:     w.state.Artifact.Title,
		Score:     score,
		Total:     w.state.Total(),
	}
	if attempt.URL == "" {
		attempt.URL = w.state.URL
	}
	if attempt.Title == "" {
		attempt.Title = w.state.Preview
	}

	attempts, logger := w.attempts, w.logger
	return func() tea.Msg {
		_, err := attempts.Append(context.Background(), attempt)
		if err != nil {
			logger.Warn("failed to record attempt", zap.String("url", attempt.URL), zap.Error(err))
		}
		return attemptLoggedMsg{Err: err}
	}
}

// startSpinner starts the tick loop unless one is already running.
func (w *Workspace) startSpinner() tea.Cmd {
	if w.spinning {
		return nil
	}
	w.spinning = true
	return spinnerTick()
}
