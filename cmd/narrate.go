package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/yomiage/internal/narration"
)

var narrateCmd = &cobra.Command{
	Use:   "narrate [-- ROW...]",
	Short: "Print the spoken script for a problem",
	Long: `Print what the reader would say for one problem.

Rows may be given as arguments (use -- before negative rows), taken from a
problem set with --set and --no, or generated from the current settings.`,
	Example: `  yomiage narrate -- 500 -200 300
  yomiage narrate --set data/2023.csv --no 4 --grammar operator-change
  yomiage narrate --rows 8 --min 2 --max 3 --phrases`,
	RunE: runNarrate,
}

func init() {
	addOptionFlags(narrateCmd)
	addNarrationFlags(narrateCmd)
	addSourceFlags(narrateCmd)
	narrateCmd.Flags().Bool("phrases", false, "Print one phrase per line")
	narrateCmd.Flags().Bool("answer", false, "Print the rows and total after the script")
	narrateCmd.Flags().Bool("check", false, "Parse the script back to numbers and compare with the rows")
}

func runNarrate(cmd *cobra.Command, args []string) error {
	phrases, _ := cmd.Flags().GetBool("phrases")
	answer, _ := cmd.Flags().GetBool("answer")
	check, _ := cmd.Flags().GetBool("check")

	sess, _, err := sessionFromFlags(cmd, nil)
	if err != nil {
		return err
	}
	if err := selectProblem(cmd, args, sess); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if phrases {
		lines, _ := sess.Phrases()
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
	} else {
		script, _ := sess.Narration()
		fmt.Fprintln(out, script)
	}

	if answer {
		p, src, _ := sess.Current()
		fmt.Fprintf(out, "\n%s: %v = %d (%s)\n", src, p.Rows, p.Answer(), sess.DigitInfo())
	}
	if check {
		p, _, _ := sess.Current()
		script, _ := sess.Narration()
		if err := checkScript(script, p.Rows); err != nil {
			return err
		}
		fmt.Fprintln(out, "check: ok")
	}
	return nil
}

// checkScript verifies that the spoken magnitudes match the rows.
func checkScript(script string, rows []int64) error {
	mags, err := narration.Magnitudes(script)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if len(mags) != len(rows) {
		return fmt.Errorf("check: script has %d numbers, problem has %d rows", len(mags), len(rows))
	}
	for i, r := range rows {
		if r < 0 {
			r = -r
		}
		if mags[i] != r {
			return fmt.Errorf("check: row %d spoken as %d, want %d", i+1, mags[i], r)
		}
	}
	return nil
}
