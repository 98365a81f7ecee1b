package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/yomiage/internal/drill"
	"github.com/abhisek/yomiage/internal/player"
	"github.com/abhisek/yomiage/internal/problemgen"
	"github.com/abhisek/yomiage/internal/problemset"
	"github.com/abhisek/yomiage/internal/settings"
	"github.com/abhisek/yomiage/internal/speech"
	"github.com/abhisek/yomiage/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Practice in the terminal without the full-screen UI",
	Long: `Run a line-oriented drill on stdin and stdout.

Without --speak the script is printed. With --speak each problem is
synthesized and handed to the configured player.`,
	Args: cobra.NoArgs,
	RunE: runQuiz,
}

func init() {
	addOptionFlags(quizCmd)
	addNarrationFlags(quizCmd)
	quizCmd.Flags().String("set", "", "Problem set file to work through instead of random problems")
	quizCmd.Flags().IntP("count", "n", 5, "Number of random problems")
	quizCmd.Flags().Bool("speak", false, "Speak problems instead of printing the script")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	count, _ := cmd.Flags().GetInt("count")
	speak, _ := cmd.Flags().GetBool("speak")
	setPath, _ := cmd.Flags().GetString("set")

	var synth speech.Synthesizer
	if speak {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer db.Close()
		if synth = openSynthesizer(ctx, db); synth == nil {
			return fmt.Errorf("no speech provider configured")
		}
	}

	sess, st, err := sessionFromFlags(cmd, synth)
	if err != nil {
		return err
	}

	var pl *player.Player
	if speak && st.Player != "" {
		if pl, err = player.Parse(st.Player); err != nil {
			return err
		}
	}

	var set *problemset.Set
	var numbers []int
	if setPath != "" {
		if set, err = problemset.Load(setPath); err != nil {
			return err
		}
		for _, w := range set.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		numbers = set.Numbers()
		count = len(numbers)
	}

	q := &quiz{
		sess:    sess,
		st:      st,
		player:  pl,
		out:     cmd.OutOrStdout(),
		scanner: bufio.NewScanner(cmd.InOrStdin()),
	}

	for i := range count {
		if set != nil {
			_, err = sess.Load(set, numbers[i])
		} else {
			_, err = sess.Next()
		}
		if err != nil {
			return err
		}
		if !q.ask(cmd, i+1, count) {
			break
		}
	}

	stats := sess.Stats()
	fmt.Fprintf(q.out, "── Summary: %d/%d correct ──\n", stats.Correct, stats.Answered)
	return nil
}

type quiz struct {
	sess    *drill.Session
	st      settings.Settings
	player  *player.Player
	out     io.Writer
	scanner *bufio.Scanner
}

// ask presents the current problem and reads answers until one parses.
// It returns false once input is closed.
func (q *quiz) ask(cmd *cobra.Command, i, n int) bool {
	_, src, _ := q.sess.Current()
	fmt.Fprintf(q.out, "── Problem %d/%d (%s, %s) ──\n", i, n, src, q.sess.DigitInfo())

	if q.sess.CanSpeak() {
		if err := q.play(cmd); err != nil {
			fmt.Fprintf(q.out, "(could not speak: %v)\n", err)
			q.printScript()
		}
	} else {
		q.printScript()
	}

	for {
		fmt.Fprint(q.out, "\nTotal: ")
		if !q.scanner.Scan() {
			fmt.Fprintln(q.out, "\n(input closed)")
			return false
		}
		input := strings.TrimSpace(q.scanner.Text())
		if input == "" {
			fmt.Fprint(q.out, "(skipped)\n\n")
			return true
		}

		res, err := q.sess.Check(input)
		if errors.Is(err, problemgen.ErrNotANumber) {
			fmt.Fprintln(q.out, "Type the total as a number.")
			continue
		}
		if err != nil {
			fmt.Fprintln(q.out, err)
			return true
		}

		if res.Correct {
			fmt.Fprintf(q.out, "\033[32m✓ Correct!\033[0m %s\n\n", res.Formatted)
		} else {
			fmt.Fprintf(q.out, "\033[31m✗ Wrong.\033[0m Total: %s\n", res.Formatted)
			q.printScript()
			fmt.Fprintln(q.out)
		}
		return true
	}
}

func (q *quiz) printScript() {
	script, _ := q.sess.Narration()
	fmt.Fprintln(q.out, script)
}

func (q *quiz) play(cmd *cobra.Command) error {
	audio, err := q.sess.Speak(speech.WithPurpose(cmd.Context(), "quiz"))
	if err != nil {
		return err
	}
	path, err := player.WriteClip(q.st.AudioDir, audio)
	if err != nil {
		return err
	}
	if q.player == nil {
		fmt.Fprintf(q.out, "Listen: %s (at %.1fx)\n", path, q.st.PlaybackRate())
		return nil
	}
	return q.player.Play(cmd.Context(), path, q.st.PlaybackRate())
}
