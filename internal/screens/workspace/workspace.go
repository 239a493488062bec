// Package workspace is the single interactive screen of the quiz client:
// a generate tab with the URL input and the current quiz, and a history
// tab listing quizzes the backend has stored.
package workspace

import (
	"context"
	"errors"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/wikiquiz/internal/quiz"
	"github.com/abhisek/wikiquiz/internal/router"
	"github.com/abhisek/wikiquiz/internal/screen"
	"github.com/abhisek/wikiquiz/internal/screens/help"
	"github.com/abhisek/wikiquiz/internal/session"
	"github.com/abhisek/wikiquiz/internal/store"
	"github.com/abhisek/wikiquiz/internal/ui/components"
	"github.com/abhisek/wikiquiz/internal/ui/layout"
)

// Backend is the subset of the API client the workspace calls.
type Backend interface {
	GenerateQuiz(ctx context.Context, url string, forceRefresh bool) (*quiz.Artifact, error)
	History(ctx context.Context) ([]quiz.HistoryEntry, error)
	DeleteQuiz(ctx context.Context, id int) error
}

// AttemptRecorder stores graded submissions.
type AttemptRecorder interface {
	Append(ctx context.Context, a store.Attempt) (store.Attempt, error)
}

// Workspace implements screen.Screen over a session.State.
type Workspace struct {
	state     session.State
	backend   Backend
	attempts  AttemptRecorder
	logger    *zap.Logger
	sessionID string

	input   components.TextInput
	history components.Menu

	// cursor indexes the grouped question order; option is the
	// highlighted option of that question.
	cursor    int
	option    int
	explained map[string]bool

	scroll   int
	spinning bool
	frame    int
}

var _ screen.Screen = (*Workspace)(nil)
var _ screen.KeyHintProvider = (*Workspace)(nil)

// New creates the workspace. attempts may be nil to disable the attempt
// log.
func New(backend Backend, attempts AttemptRecorder, logger *zap.Logger) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{
		state:     session.New(),
		backend:   backend,
		attempts:  attempts,
		logger:    logger,
		sessionID: uuid.NewString(),
		input:     components.NewTextInput("URL", "https://en.wikipedia.org/wiki/Alan_Turing", 2048),
		explained: make(map[string]bool),
	}
}

// State returns the current session state.
func (w *Workspace) State() session.State {
	return w.state
}

func (w *Workspace) Init() tea.Cmd {
	return w.input.Init()
}

func (w *Workspace) Title() string {
	if w.state.Tab == session.TabHistory {
		return "History"
	}
	if w.state.Artifact != nil && w.state.Artifact.Title != "" {
		return w.state.Artifact.Title
	}
	return "Generate"
}

func (w *Workspace) KeyHints() []layout.KeyHint {
	switch {
	case w.state.Notice != "":
		return []layout.KeyHint{{Key: "Enter", Description: "Dismiss"}}
	case w.state.ModalOpen:
		return []layout.KeyHint{{Key: "Esc", Description: "Close"}}
	case w.state.PendingDelete != nil:
		return []layout.KeyHint{{Key: "Y", Description: "Delete"}, {Key: "N", Description: "Cancel"}}
	case w.state.Tab == session.TabHistory:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Open"},
			{Key: "D", Description: "Delete"},
			{Key: "r", Description: "Refresh"},
			{Key: "Tab", Description: "Generate"},
		}
	case w.input.Focused():
		hints := []layout.KeyHint{{Key: "Enter", Description: "Generate"}, {Key: "Tab", Description: "History"}}
		if w.state.Artifact != nil {
			hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Quiz"})
		}
		return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	case w.state.Artifact != nil:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Question"},
			{Key: "1-4", Description: "Answer"},
			{Key: "s/q", Description: "Study/Quiz"},
			{Key: "x", Description: "Explain"},
		}
		if w.state.Mode == session.ModeQuiz && !w.state.Submitted {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Submit"})
		}
		if w.state.Mode == session.ModeStudy {
			hints = append(hints, layout.KeyHint{Key: "d", Description: "Details"})
		}
		if w.state.Artifact.IsCached {
			hints = append(hints, layout.KeyHint{Key: "r", Description: "Regenerate"})
		}
		return append(hints, layout.KeyHint{Key: "/", Description: "URL"}, layout.KeyHint{Key: "?", Description: "Help"})
	}
	return []layout.KeyHint{{Key: "/", Description: "URL"}, {Key: "Tab", Description: "History"}, {Key: "?", Description: "Help"}}
}

func (w *Workspace) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generateDoneMsg:
		before := w.state.Artifact
		w.state = session.ApplyGenerateResult(w.state, session.GenerateResult(msg))
		if w.state.Artifact != nil && w.state.Artifact != before {
			w.resetQuizView()
			w.input.Blur()
		}
		if msg.Err != nil {
			w.logger.Warn("generate failed", zap.Uint64("request", msg.ID), zap.Error(msg.Err))
		}
		return w, nil

	case historyDoneMsg:
		w.state = session.ApplyHistoryResult(w.state, session.HistoryResult(msg))
		w.syncHistory()
		return w, nil

	case deleteDoneMsg:
		w.state = session.ApplyDeleteResult(w.state, session.DeleteResult(msg))
		if msg.Err != nil {
			w.logger.Warn("delete failed", zap.Int("id", msg.ID), zap.Error(msg.Err))
		}
		w.syncHistory()
		return w, nil

	case attemptLoggedMsg:
		return w, nil

	case router.ResumedMsg:
		if w.state.Tab == session.TabHistory && !w.state.HistoryLoading {
			var req *session.HistoryRequest
			w.state, req = session.StartHistoryFetch(w.state)
			return w, w.historyCmd(req)
		}
		return w, nil

	case spinnerTickMsg:
		if !w.state.Loading && !w.state.HistoryLoading {
			w.spinning = false
			return w, nil
		}
		w.frame = (w.frame + 1) % len(spinnerFrames)
		return w, spinnerTick()

	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	if w.input.Focused() {
		return w.updateInput(msg)
	}
	return w, nil
}

func (w *Workspace) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Blocking overlays swallow every other key.
	if w.state.Notice != "" {
		if key == "enter" || key == "esc" || key == "space" {
			w.state = session.DismissNotice(w.state)
		}
		return w, nil
	}
	if w.state.ScrollLocked() {
		if key == "esc" || key == "d" {
			w.state = session.CloseModal(w.state)
		}
		return w, nil
	}

	if w.state.Tab == session.TabHistory {
		return w.handleHistoryKey(msg)
	}
	if w.input.Focused() {
		return w.handleInputKey(msg)
	}
	return w.handleQuizKey(msg)
}

func (w *Workspace) handleInputKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		var req *session.GenerateRequest
		w.state, req = session.StartGenerate(w.state, false)
		return w, w.generateCmd(req)
	case "tab":
		return w.switchTab(session.TabHistory)
	case "esc":
		if w.state.Err != nil {
			w.state = session.DismissError(w.state)
			return w, nil
		}
		if w.state.Artifact != nil {
			w.input.Blur()
		}
		return w, nil
	case "down":
		if w.state.Artifact != nil {
			w.input.Blur()
		}
		return w, nil
	}
	return w.updateInput(msg)
}

func (w *Workspace) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if w.input.Value() != w.state.URL {
		w.state = session.SetURL(w.state, w.input.Value())
	}
	return w, cmd
}

func (w *Workspace) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch key {
	case "tab":
		return w.switchTab(session.TabHistory)
	case "/", "i":
		return w, w.input.Focus()
	case "?":
		return w, showHelp
	case "esc":
		if w.state.Err != nil {
			w.state = session.DismissError(w.state)
		}
		return w, nil
	}

	items := w.visibleQuestions()
	if len(items) == 0 {
		// Number keys switch tabs while there is no quiz to answer.
		if key == "2" {
			return w.switchTab(session.TabHistory)
		}
		return w, nil
	}
	w.cursor = min(w.cursor, len(items)-1)
	current := items[w.cursor]

	switch key {
	case "up", "k":
		if w.cursor > 0 {
			w.cursor--
			w.option = 0
		}
	case "down", "j":
		if w.cursor < len(items)-1 {
			w.cursor++
			w.option = 0
		}
	case "left", "h":
		if w.option > 0 {
			w.option--
		}
	case "right", "l":
		if w.option < len(current.Options)-1 {
			w.option++
		}
	case "enter", "space":
		w.selectOption(current, w.option)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		w.selectOption(current, n-1)
	case "s":
		w.state = session.SwitchMode(w.state, session.ModeStudy)
		w.explained = make(map[string]bool)
	case "q":
		w.state = session.SwitchMode(w.state, session.ModeQuiz)
		w.explained = make(map[string]bool)
	case "x":
		if w.state.ShowAnswers() {
			w.explained[current.Question] = !w.explained[current.Question]
		}
	case "S":
		next, err := session.Submit(w.state)
		if err != nil {
			if !errors.Is(err, session.ErrSubmitNotAllowed) {
				w.logger.Warn("submit failed", zap.Error(err))
			}
			return w, nil
		}
		w.state = next
		score, _ := w.state.Score()
		w.logger.Info("quiz submitted", zap.Int("score", score), zap.Int("total", w.state.Total()))
		return w, w.logAttemptCmd()
	case "d":
		w.state = session.OpenModal(w.state)
	case "r":
		if w.state.Artifact != nil && w.state.Artifact.IsCached {
			var req *session.GenerateRequest
			w.state, req = session.Regenerate(w.state)
			return w, w.generateCmd(req)
		}
	}
	return w, nil
}

func (w *Workspace) handleHistoryKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if w.state.PendingDelete != nil {
		switch key {
		case "y", "Y":
			var req *session.DeleteRequest
			w.state, req = session.ConfirmDelete(w.state)
			return w, w.deleteCmd(req)
		case "n", "N", "esc":
			w.state = session.CancelDelete(w.state)
		}
		return w, nil
	}

	switch key {
	case "tab", "1":
		return w.switchTab(session.TabGenerate)
	case "?":
		return w, showHelp
	case "r":
		var req *session.HistoryRequest
		w.state, req = session.StartHistoryFetch(w.state)
		return w, w.historyCmd(req)
	case "enter":
		entry, ok := w.selectedEntry()
		if !ok {
			return w, nil
		}
		var req *session.GenerateRequest
		w.state, req = session.OpenHistoryEntry(w.state, entry.ID)
		w.input.SetValue(w.state.URL)
		w.input.Blur()
		return w, w.generateCmd(req)
	case "D", "delete":
		if entry, ok := w.selectedEntry(); ok {
			w.state = session.RequestDelete(w.state, entry.ID)
		}
		return w, nil
	}

	w.history, _ = w.history.Update(msg)
	return w, nil
}

func showHelp() tea.Msg {
	return router.PushScreenMsg{Screen: help.New()}
}

func (w *Workspace) switchTab(t session.Tab) (screen.Screen, tea.Cmd) {
	var req *session.HistoryRequest
	w.state, req = session.SwitchTab(w.state, t)
	return w, w.historyCmd(req)
}

func (w *Workspace) selectOption(q quiz.Question, idx int) {
	if idx < 0 || idx >= len(q.Options) {
		return
	}
	w.option = idx
	w.state = session.Select(w.state, q.Question, q.Options[idx])
}

func (w *Workspace) selectedEntry() (quiz.HistoryEntry, bool) {
	if w.history.Selected < 0 || w.history.Selected >= len(w.state.History) {
		return quiz.HistoryEntry{}, false
	}
	return w.state.History[w.history.Selected], true
}

// visibleQuestions is the grouped question order the quiz view renders.
func (w *Workspace) visibleQuestions() []quiz.Question {
	var out []quiz.Question
	for _, b := range w.state.Buckets() {
		out = append(out, b.Items...)
	}
	return out
}

func (w *Workspace) resetQuizView() {
	w.cursor = 0
	w.option = 0
	w.scroll = 0
	w.explained = make(map[string]bool)
}

func (w *Workspace) syncHistory() {
	items := make([]components.MenuItem, len(w.state.History))
	for i, e := range w.state.History {
		items[i] = components.MenuItem{Label: e.Title, Detail: e.URL}
	}
	w.history.SetItems(items)
}
