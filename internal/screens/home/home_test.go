package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/yomiage/internal/router"
	"github.com/abhisek/yomiage/internal/screen"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return s.title }
func (s *stubScreen) Title() string                          { return s.title }

func TestMenuPushesScreens(t *testing.T) {
	built := 0
	h := New(Options{
		Summary: "5 rows",
		Drill: func() screen.Screen {
			built++
			return &stubScreen{title: "drill"}
		},
		Sets: func() screen.Screen { return &stubScreen{title: "sets"} },
	})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "drill" {
		t.Fatalf("expected drill push, got %#v", push)
	}
	if built != 1 {
		t.Errorf("expected the drill factory to run once, ran %d", built)
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok = cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "sets" {
		t.Fatalf("expected sets push, got %#v", push)
	}
}

func TestViewShowsSummaryAndVoice(t *testing.T) {
	h := New(Options{Summary: "5 rows · 1-3 digits", Drill: func() screen.Screen { return nil }})
	view := h.View(100, 30)
	if !strings.Contains(view, "5 rows") {
		t.Error("expected the drill summary")
	}
	if !strings.Contains(view, "text only") {
		t.Error("expected text-only marker without a voice")
	}

	h = New(Options{Voice: "gpt-4o-mini-tts"})
	if !strings.Contains(h.View(100, 30), "voice: gpt-4o-mini-tts") {
		t.Error("expected the voice name")
	}
}
