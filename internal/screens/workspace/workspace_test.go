package workspace

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wikiquiz/internal/api"
	"github.com/abhisek/wikiquiz/internal/quiz"
	"github.com/abhisek/wikiquiz/internal/router"
	"github.com/abhisek/wikiquiz/internal/session"
	"github.com/abhisek/wikiquiz/internal/store"
)

const turingURL = "https://en.wikipedia.org/wiki/Alan_Turing"

type generateCall struct {
	URL   string
	Force bool
}

type fakeBackend struct {
	artifact    *quiz.Artifact
	generateErr error
	history     []quiz.HistoryEntry
	deleteErr   error

	generates []generateCall
	deletes   []int
}

func (f *fakeBackend) GenerateQuiz(_ context.Context, url string, force bool) (*quiz.Artifact, error) {
	f.generates = append(f.generates, generateCall{URL: url, Force: force})
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.artifact, nil
}

func (f *fakeBackend) History(context.Context) ([]quiz.HistoryEntry, error) {
	return f.history, nil
}

func (f *fakeBackend) DeleteQuiz(_ context.Context, id int) error {
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

type fakeAttempts struct {
	appended []store.Attempt
	err      error
}

func (f *fakeAttempts) Append(_ context.Context, a store.Attempt) (store.Attempt, error) {
	if f.err != nil {
		return store.Attempt{}, f.err
	}
	a.ID = len(f.appended) + 1
	f.appended = append(f.appended, a)
	return a, nil
}

func sampleArtifact() *quiz.Artifact {
	return &quiz.Artifact{
		ID:      7,
		Title:   "Alan Turing",
		URL:     turingURL,
		Summary: "English mathematician and computer scientist.",
		KeyEntities: quiz.KeyEntities{
			People:    []string{"Alan Turing"},
			Locations: []string{"Bletchley Park"},
		},
		QuizContent: []quiz.Question{
			{Question: "Where did Turing work during the war?", Options: []string{"Bletchley Park", "Cambridge", "Princeton", "Manchester"}, Answer: "Bletchley Park", Explanation: "Codebreaking.", Difficulty: quiz.DifficultyHard},
			{Question: "What is Turing known as?", Options: []string{"Father of computer science", "Painter", "Poet", "Chemist"}, Answer: "Father of computer science", Explanation: "Theoretical computing.", Difficulty: quiz.DifficultyEasy},
		},
		RelatedTopics: []quiz.RelatedTopic{{Title: "Enigma machine", Description: "Cipher device."}},
	}
}

func newTestWorkspace(b *fakeBackend, a *fakeAttempts) *Workspace {
	if a == nil {
		return New(b, nil, nil)
	}
	return New(b, a, nil)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// collect runs cmd and any batched commands, returning the produced
// messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// send delivers msg and feeds every non-tick result back into the
// workspace.
func send(w *Workspace, msg tea.Msg) {
	_, cmd := w.Update(msg)
	for _, m := range collect(cmd) {
		if _, tick := m.(spinnerTickMsg); tick || m == nil {
			continue
		}
		send(w, m)
	}
}

func loaded(t *testing.T, b *fakeBackend, a *fakeAttempts) *Workspace {
	t.Helper()
	w := newTestWorkspace(b, a)
	w.input.SetValue(turingURL)
	w.state = session.SetURL(w.state, turingURL)
	send(w, specialKey(tea.KeyEnter))
	require.NotNil(t, w.State().Artifact)
	return w
}

func TestGenerate_InvalidURLMakesNoRequest(t *testing.T) {
	b := &fakeBackend{artifact: sampleArtifact()}
	w := newTestWorkspace(b, nil)
	w.input.SetValue("https://example.com/page")
	w.state = session.SetURL(w.state, "https://example.com/page")

	_, cmd := w.Update(specialKey(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Empty(t, b.generates)
	assert.Equal(t, session.MsgInvalidURL, session.ErrorMessage(w.State().Err))

	send(w, specialKey(tea.KeyEscape))
	assert.NoError(t, w.State().Err)
}

func TestGenerate_LoadsQuizAndBlursInput(t *testing.T) {
	b := &fakeBackend{artifact: sampleArtifact()}
	w := loaded(t, b, nil)

	require.Len(t, b.generates, 1)
	assert.Equal(t, generateCall{URL: turingURL, Force: false}, b.generates[0])
	assert.False(t, w.State().Loading)
	assert.False(t, w.input.Focused())
	assert.Equal(t, "Alan Turing", w.Title())

	view := w.View(100, 40)
	assert.Contains(t, view, "Alan Turing")
	assert.Contains(t, view, "EASY")
	assert.Contains(t, view, "Enigma_machine")
}

func TestGenerate_ErrorShowsMessage(t *testing.T) {
	b := &fakeBackend{generateErr: fmt.Errorf("dial: %w", api.ErrBackendUnavailable)}
	w := newTestWorkspace(b, nil)
	w.input.SetValue(turingURL)
	w.state = session.SetURL(w.state, turingURL)

	send(w, specialKey(tea.KeyEnter))

	assert.Nil(t, w.State().Artifact)
	assert.Contains(t, w.View(100, 40), session.MsgNetwork)
}

func TestGenerate_StaleResultIgnored(t *testing.T) {
	b := &fakeBackend{artifact: sampleArtifact()}
	w := newTestWorkspace(b, nil)
	w.input.SetValue(turingURL)
	w.state = session.SetURL(w.state, turingURL)

	w.Update(specialKey(tea.KeyEnter))
	w.Update(specialKey(tea.KeyEnter))
	require.True(t, w.State().Loading)

	stale := sampleArtifact()
	stale.Title = "Stale"
	w.Update(generateDoneMsg{ID: 1, Artifact: stale})
	assert.Nil(t, w.State().Artifact)
	assert.True(t, w.State().Loading)

	w.Update(generateDoneMsg{ID: 2, Artifact: sampleArtifact()})
	require.NotNil(t, w.State().Artifact)
	assert.Equal(t, "Alan Turing", w.State().Artifact.Title)
}

func TestQuiz_NumberKeySelectsOptionInGroupedOrder(t *testing.T) {
	w := loaded(t, &fakeBackend{artifact: sampleArtifact()}, nil)

	send(w, keyPress('1'))

	// The easy question is rendered first.
	got, ok := w.State().Answers.Selected("What is Turing known as?")
	require.True(t, ok)
	assert.Equal(t, "Father of computer science", got)

	send(w, keyPress('j'))
	send(w, keyPress('3'))
	got, _ = w.State().Answers.Selected("Where did Turing work during the war?")
	assert.Equal(t, "Princeton", got)
}

func TestQuiz_SubmitScoresAndRecordsAttempt(t *testing.T) {
	attempts := &fakeAttempts{}
	w := loaded(t, &fakeBackend{artifact: sampleArtifact()}, attempts)

	send(w, keyPress('q'))
	require.Equal(t, session.ModeQuiz, w.State().Mode)

	send(w, keyPress('1')) // correct
	send(w, keyPress('j'))
	send(w, keyPress('2')) // wrong
	send(w, keyPress('S'))

	score, ok := w.State().Score()
	require.True(t, ok)
	assert.Equal(t, 1, score)

	require.Len(t, attempts.appended, 1)
	a := attempts.appended[0]
	assert.Equal(t, 1, a.Score)
	assert.Equal(t, 2, a.Total)
	assert.Equal(t, turingURL, a.URL)
	assert.Equal(t, "Alan Turing", a.Title)
	assert.Equal(t, w.sessionID, a.SessionID)

	// Answers are frozen after submit.
	send(w, keyPress('1'))
	got, _ := w.State().Answers.Selected("Where did Turing work during the war?")
	assert.Equal(t, "Cambridge", got)
	assert.Contains(t, w.View(100, 60), "Score: 1 / 2")
}

func TestQuiz_SubmitInStudyModeIgnored(t *testing.T) {
	attempts := &fakeAttempts{}
	w := loaded(t, &fakeBackend{artifact: sampleArtifact()}, attempts)

	send(w, keyPress('S'))

	_, ok := w.State().Score()
	assert.False(t, ok)
	assert.Empty(t, attempts.appended)
}

func TestQuiz_AttemptFailureDoesNotBlock(t *testing.T) {
	attempts := &fakeAttempts{err: errors.New("disk full")}
	w := loaded(t, &fakeBackend{artifact: sampleArtifact()}, attempts)

	send(w, keyPress('q'))
	send(w, keyPress('S'))

	assert.True(t, w.State().Submitted)
	assert.Empty(t, w.State().Notice)
}

func TestQuiz_RegenerateOnlyWhenCached(t *testing.T) {
	b := &fakeBackend{artifact: sampleArtifact()}
	w := loaded(t, b, nil)

	send(w, keyPress('r'))
	assert.Len(t, b.generates, 1)

	cached := sampleArtifact()
	cached.IsCached = true
	w.state.Artifact = cached
	assert.Contains(t, w.View(100, 40), "CACHED")

	send(w, keyPress('r'))
	require.Len(t, b.generates, 2)
	assert.True(t, b.generates[1].Force)
}

func TestModal_LocksQuizNavigation(t *testing.T) {
	w := loaded(t, &fakeBackend{artifact: sampleArtifact()}, nil)

	send(w, keyPress('d'))
	require.True(t, w.State().ScrollLocked())
	send(w, keyPress('j'))
	send(w, specialKey(tea.KeyDown))
	assert.Equal(t, 0, w.cursor)

	send(w, specialKey(tea.KeyEscape))
	require.False(t, w.State().ScrollLocked())
	send(w, keyPress('j'))
	assert.Equal(t, 1, w.cursor)
}

func TestModal_OpensInStudyModeAndSwallowsKeys(t *testing.T) {
	w := loaded(t, &fakeBackend{artifact: sampleArtifact()}, nil)

	send(w, keyPress('d'))
	require.True(t, w.State().ModalOpen)
	assert.Contains(t, w.View(100, 40), "Bletchley Park")

	send(w, keyPress('1'))
	assert.Empty(t, w.State().Answers)

	send(w, specialKey(tea.KeyEscape))
	assert.False(t, w.State().ModalOpen)

	send(w, keyPress('q'))
	send(w, keyPress('d'))
	assert.False(t, w.State().ModalOpen)
}

func TestExplain_TogglesOnlyWhenAnswersVisible(t *testing.T) {
	w := loaded(t, &fakeBackend{artifact: sampleArtifact()}, nil)

	send(w, keyPress('x'))
	assert.Contains(t, w.View(100, 60), "Theoretical computing.")

	send(w, keyPress('q'))
	send(w, keyPress('x'))
	assert.NotContains(t, w.View(100, 60), "Theoretical computing.")
}

func historyEntries() []quiz.HistoryEntry {
	return []quiz.HistoryEntry{
		{ID: 1, Title: "Alan Turing", URL: turingURL},
		{ID: 2, Title: "Ada Lovelace", URL: "https://en.wikipedia.org/wiki/Ada_Lovelace"},
	}
}

func TestHistory_TabFetchesList(t *testing.T) {
	b := &fakeBackend{history: historyEntries()}
	w := newTestWorkspace(b, nil)

	send(w, specialKey(tea.KeyTab))

	assert.Equal(t, session.TabHistory, w.State().Tab)
	assert.Len(t, w.State().History, 2)
	assert.Contains(t, w.View(100, 40), "Ada Lovelace")

	send(w, keyPress('1'))
	assert.Equal(t, session.TabGenerate, w.State().Tab)
}

func TestHistory_DeleteCancelMakesNoRequest(t *testing.T) {
	b := &fakeBackend{history: historyEntries()}
	w := newTestWorkspace(b, nil)
	send(w, specialKey(tea.KeyTab))

	send(w, keyPress('D'))
	require.NotNil(t, w.State().PendingDelete)
	assert.Contains(t, w.View(100, 40), "[y/n]")

	send(w, keyPress('n'))
	assert.Nil(t, w.State().PendingDelete)
	assert.Empty(t, b.deletes)
	assert.Len(t, w.State().History, 2)
}

func TestHistory_DeleteConfirmRemovesEntry(t *testing.T) {
	b := &fakeBackend{history: historyEntries()}
	w := newTestWorkspace(b, nil)
	send(w, specialKey(tea.KeyTab))

	send(w, keyPress('j'))
	send(w, keyPress('D'))
	send(w, keyPress('y'))

	assert.Equal(t, []int{2}, b.deletes)
	require.Len(t, w.State().History, 1)
	assert.Equal(t, 1, w.State().History[0].ID)
	assert.Nil(t, w.State().Deleting)
	assert.Equal(t, 0, w.history.Selected)
}

func TestHistory_DeleteFailureRaisesBlockingNotice(t *testing.T) {
	b := &fakeBackend{
		history:   historyEntries(),
		deleteErr: &api.APIError{StatusCode: 404, Detail: "Quiz not found"},
	}
	w := newTestWorkspace(b, nil)
	send(w, specialKey(tea.KeyTab))

	send(w, keyPress('D'))
	send(w, keyPress('y'))

	assert.Equal(t, session.MsgDeleteFailed, w.State().Notice)
	assert.Len(t, w.State().History, 2)
	assert.Contains(t, w.View(100, 40), session.MsgDeleteFailed)

	send(w, specialKey(tea.KeyTab))
	assert.Equal(t, session.TabHistory, w.State().Tab)

	send(w, specialKey(tea.KeyEnter))
	assert.Empty(t, w.State().Notice)
}

func TestHistory_OpenEntryGeneratesWithoutForce(t *testing.T) {
	b := &fakeBackend{history: historyEntries(), artifact: sampleArtifact()}
	w := newTestWorkspace(b, nil)
	send(w, specialKey(tea.KeyTab))

	send(w, specialKey(tea.KeyEnter))

	require.Len(t, b.generates, 1)
	assert.Equal(t, generateCall{URL: turingURL}, b.generates[0])
	assert.Equal(t, session.TabGenerate, w.State().Tab)
	assert.Equal(t, turingURL, w.input.Value())
	assert.NotNil(t, w.State().Artifact)
}

func TestKeyHints_FollowState(t *testing.T) {
	w := newTestWorkspace(&fakeBackend{}, nil)
	assert.Equal(t, "Generate", w.KeyHints()[0].Description)

	w.state.Notice = "Could not delete from server."
	hints := w.KeyHints()
	require.Len(t, hints, 1)
	assert.Equal(t, "Dismiss", hints[0].Description)
}

func TestHelp_PushedFromQuizView(t *testing.T) {
	w := loaded(t, &fakeBackend{artifact: sampleArtifact()}, nil)

	_, cmd := w.Update(keyPress('?'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Help", push.Screen.Title())
}

func TestResume_RefreshesHistoryTab(t *testing.T) {
	b := &fakeBackend{history: historyEntries()}
	w := newTestWorkspace(b, nil)
	send(w, specialKey(tea.KeyTab))

	b.history = b.history[:1]
	send(w, router.ResumedMsg{})

	assert.Len(t, w.State().History, 1)
}
