package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/yomiage/internal/app"
	"github.com/abhisek/yomiage/internal/drill"
	"github.com/abhisek/yomiage/internal/player"
	"github.com/abhisek/yomiage/internal/problemgen"
	"github.com/abhisek/yomiage/internal/settings"
	"github.com/abhisek/yomiage/internal/speech"
	"github.com/abhisek/yomiage/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	synth := openSynthesizer(ctx, db)

	var pl *player.Player
	if st.Player != "" {
		if pl, err = player.Parse(st.Player); err != nil {
			return err
		}
	}

	sess, err := newSession(st, 0, synth)
	if err != nil {
		return err
	}

	deps := app.Deps{
		Session:  sess,
		Settings: st,
		Player:   pl,
	}
	if synth != nil {
		deps.Voice = synth.ModelID()
	}
	return app.Run(deps)
}

// openSynthesizer returns the configured speech backend wired to the
// store, or nil with a warning when none is configured.
func openSynthesizer(ctx context.Context, db *store.Store) speech.Synthesizer {
	synth, err := speech.NewSynthesizerFromEnv(ctx, db.SpeechEventRepo(), db.AudioCache())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Speech not configured:", err)
		fmt.Fprintln(os.Stderr, "Problems will be shown as text.")
		return nil
	}
	return synth
}

// newSession builds a drill session from settings. A zero seed draws a
// random one.
func newSession(st settings.Settings, seed uint64, synth speech.Synthesizer) (*drill.Session, error) {
	gen, err := problemgen.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	cfg := drill.Config{
		Options:   st.Options(),
		Generator: gen,
		Narration: st.NarrationConfig(),
		Voice:     st.Voice,
	}
	return drill.New(newRand(seed), cfg, synth)
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
