// Package session holds the client-side state of one quiz session and the
// transitions that drive it. Every transition takes a State by value and
// returns the next State; network work is described by request values the
// caller executes and reports back as results.
package session

import (
	"errors"

	"github.com/abhisek/wikiquiz/internal/preview"
	"github.com/abhisek/wikiquiz/internal/quiz"
)

// Tab is the visible top-level view.
type Tab int

const (
	TabGenerate Tab = iota // URL input and the current quiz
	TabHistory             // previously generated quizzes
)

func (t Tab) String() string {
	if t == TabHistory {
		return "history"
	}
	return "generate"
}

// Mode selects how the current quiz is presented.
type Mode int

const (
	ModeStudy Mode = iota // answers and explanations visible
	ModeQuiz              // answers hidden until submit
)

func (m Mode) String() string {
	if m == ModeQuiz {
		return "quiz"
	}
	return "study"
}

// ErrSubmitNotAllowed is returned by Submit outside an unsubmitted quiz.
var ErrSubmitNotAllowed = errors.New("submit is only allowed once, in quiz mode, with a quiz loaded")

// State is the aggregate session state.
type State struct {
	Tab       Tab
	Mode      Mode
	Submitted bool
	score     int

	// ModalOpen is true while the article details overlay is shown.
	ModalOpen bool

	URL     string
	Preview string

	// Artifact is the current quiz; nil before the first successful generate.
	Artifact *quiz.Artifact
	Answers  quiz.Answers

	Loading bool
	Err     error

	History        []quiz.HistoryEntry
	HistoryLoading bool
	HistoryErr     error

	// PendingDelete is the entry awaiting delete confirmation.
	PendingDelete *quiz.HistoryEntry
	// Deleting is the id of the in-flight delete, or nil.
	Deleting *int
	// Notice is a blocking message the user must acknowledge.
	Notice string

	generateSeq uint64
	historySeq  uint64
}

// New returns the initial state: generate tab, study mode, nothing loaded.
func New() State {
	return State{
		Tab:     TabGenerate,
		Mode:    ModeStudy,
		Answers: quiz.Answers{},
		History: []quiz.HistoryEntry{},
	}
}

// Score returns the score, which is only defined once the quiz is submitted.
func (s State) Score() (int, bool) {
	if !s.Submitted {
		return 0, false
	}
	return s.score, true
}

// Total is the number of questions in the current quiz.
func (s State) Total() int {
	if s.Artifact == nil {
		return 0
	}
	return len(s.Artifact.QuizContent)
}

// Buckets groups the current quiz by difficulty for rendering.
func (s State) Buckets() []quiz.Bucket {
	if s.Artifact == nil {
		return nil
	}
	return quiz.Group(s.Artifact.QuizContent)
}

// ShowAnswers reports whether correct answers and explanations may be shown.
func (s State) ShowAnswers() bool {
	return s.Mode == ModeStudy || s.Submitted
}

// ScrollLocked reports whether background scrolling is suppressed.
func (s State) ScrollLocked() bool {
	return s.ModalOpen
}

// SetURL updates the URL input and its derived preview title.
func SetURL(s State, raw string) State {
	s.URL = raw
	s.Preview = preview.Title(raw)
	return s
}

// SwitchTab changes the visible tab. Entering the history tab starts a
// history fetch, returned as a non-nil request.
func SwitchTab(s State, t Tab) (State, *HistoryRequest) {
	s.Tab = t
	if t != TabHistory {
		return s, nil
	}
	return StartHistoryFetch(s)
}

// SwitchMode changes between study and quiz mode. Answers, score and the
// submitted flag are reset.
func SwitchMode(s State, m Mode) State {
	s.Mode = m
	s.Submitted = false
	s.score = 0
	s.Answers = quiz.Answers{}
	if m == ModeQuiz {
		s.ModalOpen = false
	}
	return s
}

// Select records option as the answer to question. It is a no-op once
// submitted or without a loaded quiz.
func Select(s State, question, option string) State {
	if s.Submitted || s.Artifact == nil {
		return s
	}
	s.Answers = s.Answers.With(question, option)
	return s
}

// Submit grades the quiz. Unanswered questions count as incorrect.
func Submit(s State) (State, error) {
	if s.Mode != ModeQuiz || s.Submitted || s.Artifact == nil {
		return s, ErrSubmitNotAllowed
	}
	s.score = quiz.Score(s.Artifact.QuizContent, s.Answers)
	s.Submitted = true
	return s, nil
}

// OpenModal shows the article details overlay. It needs a loaded quiz in
// study mode.
func OpenModal(s State) State {
	if s.Artifact == nil || s.Mode != ModeStudy {
		return s
	}
	s.ModalOpen = true
	return s
}

// CloseModal hides the article details overlay.
func CloseModal(s State) State {
	s.ModalOpen = false
	return s
}

// DismissError clears the generate error banner.
func DismissError(s State) State {
	s.Err = nil
	return s
}

// DismissNotice acknowledges the blocking notice.
func DismissNotice(s State) State {
	s.Notice = ""
	return s
}
