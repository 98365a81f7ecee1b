// Package drill is the listening practice screen: play a problem, type
// the sum, see the verdict, move on.
package drill

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	practice "github.com/abhisek/yomiage/internal/drill"
	"github.com/abhisek/yomiage/internal/player"
	"github.com/abhisek/yomiage/internal/problemgen"
	"github.com/abhisek/yomiage/internal/problemset"
	"github.com/abhisek/yomiage/internal/router"
	"github.com/abhisek/yomiage/internal/screen"
	"github.com/abhisek/yomiage/internal/ui/components"
	"github.com/abhisek/yomiage/internal/ui/layout"
)

type phase int

const (
	phaseListen phase = iota
	phaseSpeaking
	phaseAnswer
	phaseFeedback
	phaseDone
)

// Deps are the collaborators of a drill screen.
type Deps struct {
	Session *practice.Session

	// Set switches the screen to curated problems, starting at Start.
	// Nil draws random problems.
	Set   *problemset.Set
	Start int

	// Player plays each clip; nil leaves clips on disk.
	Player   *player.Player
	AudioDir string
	Rate     float64
}

// DrillScreen implements screen.Screen for one practice run.
type DrillScreen struct {
	deps  Deps
	phase phase
	input components.AnswerInput

	numbers []int // set problem numbers, nil for random
	pos     int
	served  int // problems shown so far, tags background results

	// ctx is cancelled by Leave so a pending synthesis or playback stops
	// when the learner backs out.
	ctx    context.Context
	cancel context.CancelFunc

	script   string
	clip     string
	result   practice.Result
	notice   string
	errMsg   string
	revealed bool
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.Leaver = (*DrillScreen)(nil)

// New creates a DrillScreen.
func New(deps Deps) *DrillScreen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &DrillScreen{
		deps:   deps,
		input:  components.NewAnswerInput("Type the total...", 24),
		ctx:    ctx,
		cancel: cancel,
	}
	if deps.Set != nil {
		s.numbers = deps.Set.Numbers()
		for i, no := range s.numbers {
			if no >= deps.Start {
				s.pos = i
				break
			}
		}
	}
	return s
}

func (s *DrillScreen) Init() tea.Cmd {
	s.advance()
	return s.input.Init()
}

// Leave cancels any speech request or playback still running.
func (s *DrillScreen) Leave() {
	s.cancel()
}

func (s *DrillScreen) Title() string {
	if s.deps.Set != nil {
		return s.deps.Set.Name
	}
	return "Random drill"
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseListen:
		return []layout.KeyHint{
			{Key: "Space", Description: "Listen"},
			{Key: "Tab", Description: "Read instead"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseSpeaking:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case phaseAnswer:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Check"}}
		if s.clip != "" {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Replay"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back"},
			{Key: "H", Description: "Home"},
		}
	}
}

// advance makes the next problem current and resets the screen to listen.
func (s *DrillScreen) advance() {
	s.errMsg, s.notice, s.clip, s.script = "", "", "", ""
	s.revealed = false
	s.served++
	s.input.Reset()

	var err error
	if s.numbers == nil {
		_, err = s.deps.Session.Next()
	} else {
		if s.pos >= len(s.numbers) {
			s.phase = phaseDone
			return
		}
		_, err = s.deps.Session.Load(s.deps.Set, s.numbers[s.pos])
		s.pos++
	}
	if err != nil {
		s.errMsg = err.Error()
		s.phase = phaseDone
		return
	}

	s.script, _ = s.deps.Session.Narration()
	s.phase = phaseListen
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spokenMsg:
		if msg.Tag != s.tag() || s.phase != phaseSpeaking {
			return s, nil
		}
		return s.handleSpoken(msg)
	case replayedMsg:
		if msg.Tag == s.tag() && msg.Err != nil {
			s.notice = msg.Err.Error()
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswer {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseListen:
		switch key {
		case "space", " ":
			if !s.deps.Session.CanSpeak() {
				s.notice = "No speech provider configured, showing the script."
				s.revealed = true
				s.phase = phaseAnswer
				return s, nil
			}
			u, err := s.deps.Session.Utterance()
			if err != nil {
				s.notice = fmt.Sprintf("Could not synthesize: %v", err)
				s.revealed = true
				s.phase = phaseAnswer
				return s, nil
			}
			s.phase = phaseSpeaking
			return s, s.speak(u)
		case "tab":
			s.revealed = true
			s.phase = phaseAnswer
		}
		return s, nil

	case phaseSpeaking:
		return s, nil

	case phaseAnswer:
		switch key {
		case "enter":
			return s.submit()
		case "ctrl+r":
			if s.clip != "" && s.deps.Player != nil {
				return s, s.replay()
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseFeedback:
		if key == "enter" {
			s.advance()
		}
		return s, nil

	case phaseDone:
		switch key {
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "h":
			return s, func() tea.Msg { return router.HomeMsg{} }
		}
	}
	return s, nil
}

func (s *DrillScreen) handleSpoken(msg spokenMsg) (screen.Screen, tea.Cmd) {
	s.clip = msg.Path
	s.phase = phaseAnswer
	switch {
	case msg.Err != nil && msg.Path == "":
		s.notice = fmt.Sprintf("Could not synthesize: %v", msg.Err)
		s.revealed = true
	case msg.Err != nil:
		s.notice = fmt.Sprintf("Could not play %s: %v", msg.Path, msg.Err)
	case s.deps.Player == nil:
		s.notice = fmt.Sprintf("Saved %s (play at %.1fx)", msg.Path, s.deps.Rate)
	}
	return s, nil
}

func (s *DrillScreen) submit() (screen.Screen, tea.Cmd) {
	res, err := s.deps.Session.Check(s.input.Value())
	if errors.Is(err, problemgen.ErrNotANumber) {
		s.errMsg = "Type the total as a number."
		return s, nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.errMsg = ""
	s.result = res
	s.input.Submit(res.Correct)
	s.phase = phaseFeedback
	return s, nil
}

func (s *DrillScreen) tag() clipTag {
	return clipTag{screen: s, problem: s.served}
}

// speak returns a command that speaks u. The command only sees values
// copied here, never the screen or the session.
func (s *DrillScreen) speak(u practice.Utterance) tea.Cmd {
	ctx, tag, pl := s.ctx, s.tag(), s.deps.Player
	dir, rate := s.deps.AudioDir, s.deps.Rate
	return func() tea.Msg {
		audio, err := u.Speak(ctx)
		if err != nil {
			return spokenMsg{Tag: tag, Err: err}
		}
		path, err := player.WriteClip(dir, audio)
		if err != nil {
			return spokenMsg{Tag: tag, Err: err}
		}
		if pl != nil {
			if err := pl.Play(ctx, path, rate); err != nil {
				return spokenMsg{Tag: tag, Path: path, Err: err}
			}
		}
		return spokenMsg{Tag: tag, Path: path}
	}
}

func (s *DrillScreen) replay() tea.Cmd {
	ctx, tag, pl, path, rate := s.ctx, s.tag(), s.deps.Player, s.clip, s.deps.Rate
	return func() tea.Msg {
		return replayedMsg{Tag: tag, Err: pl.Play(ctx, path, rate)}
	}
}
