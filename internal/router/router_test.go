package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wikiquiz/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPushRunsInit(t *testing.T) {
	root := &stubScreen{title: "workspace"}
	r := New(root)

	help := &stubScreen{title: "help"}
	r.Update(PushScreenMsg{Screen: help})

	if r.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "help" {
		t.Errorf("expected active 'help', got %q", r.Active().Title())
	}
	if !help.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPushNilIgnored(t *testing.T) {
	r := New(&stubScreen{title: "workspace"})
	r.Push(nil)
	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
}

func TestPopResumesScreenBelow(t *testing.T) {
	root := &stubScreen{title: "workspace"}
	r := New(root)
	r.Push(&stubScreen{title: "help"})

	r.Update(PopScreenMsg{})

	if r.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", r.Depth())
	}
	if r.Active() != root {
		t.Fatalf("expected root to be active")
	}
	if len(root.got) != 1 {
		t.Fatalf("expected one message on root, got %d", len(root.got))
	}
	if _, ok := root.got[0].(ResumedMsg); !ok {
		t.Errorf("expected ResumedMsg, got %T", root.got[0])
	}
}

func TestPopNoopAtRoot(t *testing.T) {
	root := &stubScreen{title: "workspace"}
	r := New(root)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at root, got %d", r.Depth())
	}
	if len(root.got) != 0 {
		t.Errorf("root should not be resumed, got %v", root.got)
	}
}

func TestUpdateReachesOnlyTop(t *testing.T) {
	root := &stubScreen{title: "workspace"}
	help := &stubScreen{title: "help"}
	r := New(root)
	r.Push(help)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	if len(help.got) != 1 || len(root.got) != 0 {
		t.Errorf("expected only the top screen to get the key: top=%d root=%d", len(help.got), len(root.got))
	}
	if got := r.View(80, 24); got != "help" {
		t.Errorf("expected help view, got %q", got)
	}
}
