package session

import (
	"strings"

	"github.com/abhisek/wikiquiz/internal/quiz"
)

const wikipediaHost = "wikipedia.org"

// GenerateRequest describes a POST /generate-quiz call to perform.
type GenerateRequest struct {
	ID           uint64
	URL          string
	ForceRefresh bool
}

// GenerateResult is the outcome of a GenerateRequest.
type GenerateResult struct {
	ID       uint64
	Artifact *quiz.Artifact
	Err      error
}

// StartGenerate clears the current quiz and, when the URL looks like a
// Wikipedia link, issues a generate request. The previous quiz is gone
// either way, so a failed regenerate leaves nothing displayed.
func StartGenerate(s State, forceRefresh bool) (State, *GenerateRequest) {
	s.Artifact = nil
	s.Answers = quiz.Answers{}
	s.Submitted = false
	s.score = 0
	s.Mode = ModeStudy
	s.ModalOpen = false

	url := strings.TrimSpace(s.URL)
	if url == "" || !strings.Contains(url, wikipediaHost) {
		// Any request still in flight belongs to a URL the user replaced.
		s.generateSeq++
		s.Loading = false
		s.Err = &ValidationError{URL: s.URL}
		return s, nil
	}

	s.Err = nil
	s.Loading = true
	s.generateSeq++
	return s, &GenerateRequest{ID: s.generateSeq, URL: url, ForceRefresh: forceRefresh}
}

// Regenerate re-runs generate for the current URL, bypassing the backend
// cache.
func Regenerate(s State) (State, *GenerateRequest) {
	return StartGenerate(s, true)
}

// ApplyGenerateResult folds a finished generate call into s. Results of
// superseded requests are dropped.
func ApplyGenerateResult(s State, r GenerateResult) State {
	if r.ID != s.generateSeq {
		return s
	}
	s.Loading = false
	if r.Err != nil {
		s.Err = r.Err
		s.Artifact = nil
		return s
	}
	s.Err = nil
	s.Artifact = r.Artifact
	s.Answers = quiz.Answers{}
	s.Submitted = false
	s.score = 0
	s.Tab = TabGenerate
	return s
}

// OpenHistoryEntry loads a past quiz by generating its URL without a forced
// refresh, which the backend answers from its cache.
func OpenHistoryEntry(s State, id int) (State, *GenerateRequest) {
	for _, e := range s.History {
		if e.ID == id {
			s = SetURL(s, e.URL)
			s.Tab = TabGenerate
			return StartGenerate(s, false)
		}
	}
	return s, nil
}
