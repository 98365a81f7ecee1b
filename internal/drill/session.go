// Package drill runs a listening practice session: it owns one problem
// generator, narrates the current problem, optionally speaks it, and
// checks the learner's answer.
package drill

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhisek/yomiage/internal/narration"
	"github.com/abhisek/yomiage/internal/problemgen"
	"github.com/abhisek/yomiage/internal/problemset"
	"github.com/abhisek/yomiage/internal/speech"
)

var (
	// ErrNoProblem is returned when an operation needs a current problem
	// and none has been drawn or loaded yet.
	ErrNoProblem = errors.New("no current problem")

	// ErrNoSynthesizer is returned by Speak when the session runs without
	// a speech backend.
	ErrNoSynthesizer = errors.New("speech synthesis not configured")
)

// Config configures a Session.
type Config struct {
	Options   problemgen.Options
	Generator problemgen.Config
	Narration narration.Config

	// Voice is passed to the synthesizer; empty selects its default.
	Voice string
}

// Source identifies where the current problem came from.
type Source struct {
	// Set is the problem set name, empty for generated problems.
	Set string
	No  int
}

// Random reports whether the problem was generated.
func (s Source) Random() bool {
	return s.Set == ""
}

func (s Source) String() string {
	if s.Random() {
		return "random"
	}
	return fmt.Sprintf("%s no. %d", s.Set, s.No)
}

// Result is the outcome of checking an answer.
type Result struct {
	Correct bool
	Answer  int64
	Given   int64

	// Formatted is Answer with thousands separators, e.g. "1,220".
	Formatted string
}

// Stats are the in-memory tallies for this run. Nothing is persisted.
type Stats struct {
	Answered int
	Correct  int
}

// Session holds one learner's practice run. It is not safe for
// concurrent use.
type Session struct {
	ID string

	cfg      Config
	gen      *problemgen.Generator
	composer *narration.Composer
	synth    speech.Synthesizer

	current *problemgen.Problem
	source  Source
	checked bool
	stats   Stats
}

// New creates a Session. synth may be nil to run text-only. Zero
// Generator and Narration configs take their package defaults.
func New(rng *rand.Rand, cfg Config, synth speech.Synthesizer) (*Session, error) {
	if cfg.Generator == (problemgen.Config{}) {
		cfg.Generator = problemgen.DefaultConfig()
	}
	if cfg.Narration == (narration.Config{}) {
		cfg.Narration = narration.DefaultConfig()
	}
	if err := cfg.Generator.Validate(); err != nil {
		return nil, fmt.Errorf("generator config: %w", err)
	}
	if err := cfg.Narration.Validate(); err != nil {
		return nil, fmt.Errorf("narration config: %w", err)
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		ID:       uuid.NewString(),
		cfg:      cfg,
		gen:      problemgen.New(rng, cfg.Generator),
		composer: narration.New(cfg.Narration),
		synth:    synth,
	}, nil
}

// Options returns the current generation options.
func (s *Session) Options() problemgen.Options {
	return s.cfg.Options
}

// SetOptions changes the generation options. The scheduler drops its deck
// on the next draw only if the deck holds lengths outside the new range.
func (s *Session) SetOptions(opts problemgen.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	s.cfg.Options = opts
	return nil
}

// SetNarration changes the narration grammar and unit for later scripts.
func (s *Session) SetNarration(cfg narration.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg.Narration = cfg
	s.composer = narration.New(cfg)
	return nil
}

// SetVoice changes the voice for later Speak calls.
func (s *Session) SetVoice(voice string) {
	s.cfg.Voice = voice
}

// CanSpeak reports whether Speak can produce audio.
func (s *Session) CanSpeak() bool {
	return s.synth != nil
}

// Next generates a new random problem and makes it current.
func (s *Session) Next() (problemgen.Problem, error) {
	p, err := s.gen.Generate(s.cfg.Options)
	if err != nil {
		return problemgen.Problem{}, err
	}
	s.setCurrent(p, Source{})
	return p, nil
}

// Load makes problem no of a curated set current.
func (s *Session) Load(set *problemset.Set, no int) (problemgen.Problem, error) {
	p, err := set.Get(no)
	if err != nil {
		return problemgen.Problem{}, err
	}
	if p.Len() == 0 {
		return problemgen.Problem{}, fmt.Errorf("%s no. %d has no rows", set.Name, no)
	}
	s.setCurrent(p, Source{Set: set.Name, No: no})
	return p, nil
}

func (s *Session) setCurrent(p problemgen.Problem, src Source) {
	s.current = &p
	s.source = src
	s.checked = false
}

// Current returns the current problem.
func (s *Session) Current() (problemgen.Problem, Source, bool) {
	if s.current == nil {
		return problemgen.Problem{}, Source{}, false
	}
	return *s.current, s.source, true
}

// DigitInfo describes the digit lengths of the current problem.
func (s *Session) DigitInfo() string {
	if s.current == nil {
		return problemgen.DigitInfo(nil)
	}
	return problemgen.DigitInfo(s.current.Rows)
}

// Narration returns the spoken script for the current problem.
func (s *Session) Narration() (string, error) {
	if s.current == nil {
		return "", ErrNoProblem
	}
	return s.composer.Compose(s.current.Rows), nil
}

// Phrases returns the script for the current problem one phrase at a time.
func (s *Session) Phrases() ([]string, error) {
	if s.current == nil {
		return nil, ErrNoProblem
	}
	return s.composer.Phrases(s.current.Rows), nil
}

// Utterance is a snapshot of everything needed to speak one problem. It
// shares no state with the Session, so it may be spoken from another
// goroutine while the Session moves on.
type Utterance struct {
	Text   string
	Voice  string
	Source Source

	sessionID string
	synth     speech.Synthesizer
}

// Utterance captures the current problem's narration for speaking.
func (s *Session) Utterance() (Utterance, error) {
	if s.synth == nil {
		return Utterance{}, ErrNoSynthesizer
	}
	text, err := s.Narration()
	if err != nil {
		return Utterance{}, err
	}
	return Utterance{
		Text:      text,
		Voice:     s.cfg.Voice,
		Source:    s.source,
		sessionID: s.ID,
		synth:     s.synth,
	}, nil
}

// Speak synthesizes the utterance. Events are tagged with the session ID
// and, unless ctx already carries one, the "drill" purpose. Only curated
// set problems may be served from or stored in the audio cache.
func (u Utterance) Speak(ctx context.Context) (*speech.Audio, error) {
	if u.synth == nil {
		return nil, ErrNoSynthesizer
	}
	if speech.PurposeFrom(ctx) == "unknown" {
		ctx = speech.WithPurpose(ctx, "drill")
	}
	ctx = speech.WithSessionID(ctx, u.sessionID)
	audio, err := u.synth.Synthesize(ctx, speech.Request{
		Text:      u.Text,
		Voice:     u.Voice,
		Cacheable: !u.Source.Random(),
	})
	if err != nil {
		return nil, fmt.Errorf("speak %s: %w", u.Source, err)
	}
	return audio, nil
}

// Speak synthesizes the current narration on the calling goroutine.
func (s *Session) Speak(ctx context.Context) (*speech.Audio, error) {
	u, err := s.Utterance()
	if err != nil {
		return nil, err
	}
	return u.Speak(ctx)
}

// Check compares input against the current problem's answer. Input that
// is not a number returns problemgen.ErrNotANumber and leaves the tallies
// alone. Only the first judged attempt per problem is tallied.
func (s *Session) Check(input string) (Result, error) {
	if s.current == nil {
		return Result{}, ErrNoProblem
	}

	given, correct, err := problemgen.CheckAnswer(input, *s.current)
	if err != nil {
		return Result{}, err
	}

	answer := s.current.Answer()
	res := Result{
		Correct:   correct,
		Answer:    answer,
		Given:     given,
		Formatted: FormatNumber(answer),
	}

	if !s.checked {
		s.checked = true
		s.stats.Answered++
		if res.Correct {
			s.stats.Correct++
		}
	}
	return res, nil
}

// Stats returns the tallies so far.
func (s *Session) Stats() Stats {
	return s.stats
}

var printer = message.NewPrinter(language.English)

// FormatNumber renders n with English thousands separators.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}
