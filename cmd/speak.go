package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/yomiage/internal/player"
	"github.com/abhisek/yomiage/internal/speech"
	"github.com/abhisek/yomiage/internal/store"
)

var speakCmd = &cobra.Command{
	Use:   "speak [-- ROW...]",
	Short: "Synthesize the narration of a problem to an audio file",
	Long: `Synthesize one problem with the configured speech provider.

The problem is chosen as for "narrate". Set YOMIAGE_SPEECH_PROVIDER and the
matching API key, or just OPENAI_API_KEY or GEMINI_API_KEY.`,
	Example: `  yomiage speak --out drill.mp3 -- 500 -200 300
  yomiage speak --set data/2023.csv --no 7 --play`,
	RunE: runSpeak,
}

func init() {
	addOptionFlags(speakCmd)
	addNarrationFlags(speakCmd)
	addSourceFlags(speakCmd)
	speakCmd.Flags().StringP("out", "o", "", "Output file (default: a new file in the audio dir)")
	speakCmd.Flags().String("voice", "", "Provider voice (overrides settings)")
	speakCmd.Flags().Bool("play", false, "Play the clip with the configured player")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out, _ := cmd.Flags().GetString("out")
	voice, _ := cmd.Flags().GetString("voice")
	play, _ := cmd.Flags().GetBool("play")

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
	if synth == nil {
		return fmt.Errorf("no speech provider configured")
	}

	sess, st, err := sessionFromFlags(cmd, synth)
	if err != nil {
		return err
	}
	if voice != "" {
		sess.SetVoice(voice)
	}
	if err := selectProblem(cmd, args, sess); err != nil {
		return err
	}

	audio, err := sess.Speak(speech.WithPurpose(ctx, "speak"))
	if err != nil {
		return err
	}

	path := out
	if path == "" {
		if path, err = player.WriteClip(st.AudioDir, audio); err != nil {
			return err
		}
	} else {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, audio.Data, 0o644); err != nil {
			return fmt.Errorf("write audio: %w", err)
		}
	}

	script, _ := sess.Narration()
	p, src, _ := sess.Current()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %d bytes of %s from %s\n", path, len(audio.Data), audio.Format, audio.Model)
	fmt.Fprintf(w, "%s (%s)\n", src, sess.DigitInfo())
	fmt.Fprintln(w, script)
	fmt.Fprintf(w, "Answer: %d\n", p.Answer())

	if !play {
		return nil
	}
	if st.Player == "" {
		fmt.Fprintln(os.Stderr, "warning: no player configured (set YOMIAGE_PLAYER)")
		return nil
	}
	pl, err := player.Parse(st.Player)
	if err != nil {
		return err
	}
	return pl.Play(ctx, path, st.PlaybackRate())
}
