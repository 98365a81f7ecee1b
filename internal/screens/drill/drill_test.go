package drill

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	practice "github.com/abhisek/yomiage/internal/drill"
	"github.com/abhisek/yomiage/internal/problemgen"
	"github.com/abhisek/yomiage/internal/problemset"
	"github.com/abhisek/yomiage/internal/router"
	"github.com/abhisek/yomiage/internal/speech"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newSession(t *testing.T, synth speech.Synthesizer) *practice.Session {
	t.Helper()
	cfg := practice.Config{
		Options: problemgen.Options{Rows: 3, MinDigit: 1, MaxDigit: 2, AllowSubtraction: true},
	}
	s, err := practice.New(rand.New(rand.NewPCG(3, 4)), cfg, synth)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func loadSet(t *testing.T) *problemset.Set {
	t.Helper()
	path := filepath.Join(t.TempDir(), "set.csv")
	if err := os.WriteFile(path, []byte("no,row1,row2,row3\n1,500,-200,300\n2,10,20,30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := problemset.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestListenWithSynthesizerWritesClip(t *testing.T) {
	dir := t.TempDir()
	synth := speech.NewSilentSynthesizer()
	s := New(Deps{Session: newSession(t, synth), AudioDir: dir, Rate: 1.0})
	s.Init()

	if s.phase != phaseListen {
		t.Fatalf("expected listen phase, got %d", s.phase)
	}

	_, cmd := s.Update(specialKey(tea.KeySpace))
	if s.phase != phaseSpeaking || cmd == nil {
		t.Fatalf("expected speaking phase with a command, got %d", s.phase)
	}

	msg := cmd()
	spoken, ok := msg.(spokenMsg)
	if !ok {
		t.Fatalf("expected spokenMsg, got %T", msg)
	}
	if spoken.Err != nil {
		t.Fatalf("speak failed: %v", spoken.Err)
	}
	if filepath.Dir(spoken.Path) != dir {
		t.Errorf("clip written to %q, want dir %q", spoken.Path, dir)
	}

	s.Update(spoken)
	if s.phase != phaseAnswer {
		t.Fatalf("expected answer phase, got %d", s.phase)
	}
	if !strings.Contains(s.notice, spoken.Path) {
		t.Errorf("notice %q should mention the clip path", s.notice)
	}
	if synth.CallCount() != 1 {
		t.Errorf("expected 1 synthesis call, got %d", synth.CallCount())
	}
}

func TestListenWithoutSynthesizerRevealsScript(t *testing.T) {
	s := New(Deps{Session: newSession(t, nil)})
	s.Init()

	s.Update(specialKey(tea.KeySpace))
	if s.phase != phaseAnswer || !s.revealed {
		t.Fatalf("expected revealed answer phase, got phase %d revealed %v", s.phase, s.revealed)
	}
	if !strings.Contains(s.View(80, 20), "Starting with") {
		t.Error("expected the script in the view")
	}
}

func TestSynthesisFailureRevealsScript(t *testing.T) {
	synth := speech.NewMockSynthesizer(speech.MockResponse{Err: &speech.ErrProviderUnavailable{}})
	s := New(Deps{Session: newSession(t, synth), AudioDir: t.TempDir()})
	s.Init()

	_, cmd := s.Update(specialKey(tea.KeySpace))
	s.Update(cmd())

	if s.phase != phaseAnswer || !s.revealed {
		t.Fatalf("expected revealed answer phase, got phase %d revealed %v", s.phase, s.revealed)
	}
	if !strings.Contains(s.notice, "Could not synthesize") {
		t.Errorf("unexpected notice %q", s.notice)
	}
}

func TestAnswerFlowOverSet(t *testing.T) {
	sess := newSession(t, nil)
	s := New(Deps{Session: sess, Set: loadSet(t)})
	s.Init()

	if s.Title() != "set.csv" {
		t.Errorf("title = %q", s.Title())
	}

	s.Update(specialKey(tea.KeyTab))
	if s.phase != phaseAnswer {
		t.Fatalf("expected answer phase, got %d", s.phase)
	}

	s.input.Model.SetValue("")
	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseAnswer || s.errMsg == "" {
		t.Fatalf("empty answer should stay in answer phase with an error")
	}

	s.input.Model.SetValue("600")
	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseFeedback || !s.result.Correct {
		t.Fatalf("expected correct feedback, got phase %d result %+v", s.phase, s.result)
	}
	if !strings.Contains(s.View(80, 20), "Correct") {
		t.Error("expected Correct in the view")
	}

	s.Update(specialKey(tea.KeyEnter))
	_, src, _ := sess.Current()
	if s.phase != phaseListen || src.No != 2 {
		t.Fatalf("expected problem 2 in listen phase, got %v phase %d", src, s.phase)
	}
	if s.input.Value() != "" {
		t.Error("input should be cleared for the next problem")
	}

	s.Update(specialKey(tea.KeyTab))
	s.input.Model.SetValue("1,000")
	s.Update(specialKey(tea.KeyEnter))
	if s.result.Correct || s.result.Formatted != "60" {
		t.Fatalf("expected wrong answer with total 60, got %+v", s.result)
	}
	if !strings.Contains(s.View(80, 20), "You said 1,000") {
		t.Error("expected the given answer in the view")
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseDone {
		t.Fatalf("expected end of set, got %d", s.phase)
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if _, ok := cmd().(router.HomeMsg); !ok {
		t.Error("expected HomeMsg from h")
	}

	if st := sess.Stats(); st.Answered != 2 || st.Correct != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestSetStartsAtRequestedNumber(t *testing.T) {
	sess := newSession(t, nil)
	s := New(Deps{Session: sess, Set: loadSet(t), Start: 2})
	s.Init()

	_, src, _ := sess.Current()
	if src.No != 2 {
		t.Errorf("expected to start at no. 2, got %d", src.No)
	}
}

func TestKeyHintsFollowPhase(t *testing.T) {
	s := New(Deps{Session: newSession(t, nil)})
	s.Init()

	if hints := s.KeyHints(); hints[0].Key != "Space" {
		t.Errorf("listen hints = %+v", hints)
	}
	s.Update(specialKey(tea.KeyTab))
	if hints := s.KeyHints(); hints[0].Description != "Check" {
		t.Errorf("answer hints = %+v", hints)
	}
}

func TestLeaveCancelsPendingWork(t *testing.T) {
	s := New(Deps{Session: newSession(t, nil)})
	s.Init()

	s.Leave()

	if !errors.Is(s.ctx.Err(), context.Canceled) {
		t.Errorf("ctx.Err() = %v, want context.Canceled", s.ctx.Err())
	}
}

func TestSpokenResultFromLeftScreenIsDropped(t *testing.T) {
	sess := newSession(t, speech.NewSilentSynthesizer())
	dir := t.TempDir()

	first := New(Deps{Session: sess, AudioDir: dir})
	first.Init()
	_, cmd := first.Update(specialKey(tea.KeySpace))
	first.Leave()

	second := New(Deps{Session: sess, AudioDir: dir})
	second.Init()

	second.Update(cmd())

	if second.phase != phaseListen || second.revealed || second.notice != "" {
		t.Fatalf("stale result changed the new screen: phase %d revealed %v notice %q",
			second.phase, second.revealed, second.notice)
	}
}

func TestSpokenResultForEarlierProblemIsDropped(t *testing.T) {
	s := New(Deps{Session: newSession(t, speech.NewSilentSynthesizer()), AudioDir: t.TempDir()})
	s.Init()

	_, cmd := s.Update(specialKey(tea.KeySpace))
	old := cmd().(spokenMsg)
	s.Update(old)

	s.input.Model.SetValue("0")
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseListen {
		t.Fatalf("expected the next problem, got phase %d", s.phase)
	}

	s.Update(old)
	if s.phase != phaseListen || s.clip != "" {
		t.Errorf("old clip applied to the next problem: phase %d clip %q", s.phase, s.clip)
	}
	s.Update(replayedMsg{Tag: old.Tag, Err: errors.New("boom")})
	if s.notice != "" {
		t.Errorf("old replay result set notice %q", s.notice)
	}
}

// heldSynth blocks until release is closed, then answers with silence.
type heldSynth struct {
	started chan struct{}
	release chan struct{}
}

func (h *heldSynth) Synthesize(ctx context.Context, req speech.Request) (*speech.Audio, error) {
	close(h.started)
	<-h.release
	return speech.NewSilentSynthesizer().Synthesize(ctx, req)
}

func (h *heldSynth) ModelID() string { return "held" }

func TestSpeakingDoesNotShareTheSession(t *testing.T) {
	synth := &heldSynth{started: make(chan struct{}), release: make(chan struct{})}
	sess := newSession(t, synth)
	dir := t.TempDir()

	first := New(Deps{Session: sess, AudioDir: dir})
	first.Init()
	_, cmd := first.Update(specialKey(tea.KeySpace))

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	// Run with -race: the learner backs out and starts another drill on
	// the same session while the first clip is still being synthesized.
	<-synth.started
	first.Leave()
	second := New(Deps{Session: sess, AudioDir: dir})
	second.Init()
	second.Update(specialKey(tea.KeyTab))
	close(synth.release)

	second.Update(<-done)
	if second.phase != phaseAnswer || second.clip != "" {
		t.Errorf("second screen picked up the first clip: phase %d clip %q", second.phase, second.clip)
	}
}
