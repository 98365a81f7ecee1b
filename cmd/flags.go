package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/yomiage/internal/drill"
	"github.com/abhisek/yomiage/internal/problemgen"
	"github.com/abhisek/yomiage/internal/problemset"
	"github.com/abhisek/yomiage/internal/settings"
	"github.com/abhisek/yomiage/internal/speech"
)

// addOptionFlags registers the generator flags. Unset flags keep the
// values from settings.
func addOptionFlags(c *cobra.Command) {
	c.Flags().Int("rows", 0, "Rows per problem")
	c.Flags().Int("min", 0, "Shortest row, in digits")
	c.Flags().Int("max", 0, "Longest row, in digits")
	c.Flags().Bool("subtract", true, "Allow negative rows")
	c.Flags().Uint64("seed", 0, "Random seed (0 picks one)")
}

// addNarrationFlags registers the composer flags.
func addNarrationFlags(c *cobra.Command) {
	c.Flags().String("grammar", "", "Narration grammar: punctuated or operator-change")
	c.Flags().String("unit", "", "Unit spoken after every number, e.g. dollars")
}

// addSourceFlags registers the flags that pick a curated problem.
func addSourceFlags(c *cobra.Command) {
	c.Flags().String("set", "", "Problem set file (.csv or .json)")
	c.Flags().Int("no", 0, "Problem number within --set (default: lowest)")
}

// applyFlags overlays changed flags onto st and validates the result.
func applyFlags(cmd *cobra.Command, st *settings.Settings) error {
	f := cmd.Flags()
	if f.Changed("rows") {
		st.Rows, _ = f.GetInt("rows")
	}
	if f.Changed("min") {
		st.MinDigit, _ = f.GetInt("min")
	}
	if f.Changed("max") {
		st.MaxDigit, _ = f.GetInt("max")
	}
	if f.Changed("subtract") {
		st.Subtraction, _ = f.GetBool("subtract")
	}
	if f.Lookup("grammar") != nil && f.Changed("grammar") {
		st.Grammar, _ = f.GetString("grammar")
	}
	if f.Lookup("unit") != nil && f.Changed("unit") {
		st.Unit, _ = f.GetString("unit")
	}
	return st.Validate()
}

// sessionFromFlags loads settings, applies flags and builds a session.
func sessionFromFlags(cmd *cobra.Command, synth speech.Synthesizer) (*drill.Session, settings.Settings, error) {
	st, err := loadSettings(cmd)
	if err != nil {
		return nil, st, fmt.Errorf("load settings: %w", err)
	}
	if err := applyFlags(cmd, &st); err != nil {
		return nil, st, err
	}
	seed, _ := cmd.Flags().GetUint64("seed")
	sess, err := newSession(st, seed, synth)
	return sess, st, err
}

// selectProblem makes a problem current: rows given as arguments, a
// problem from --set, or a generated one.
func selectProblem(cmd *cobra.Command, args []string, sess *drill.Session) error {
	if len(args) > 0 {
		rows, err := parseRows(args)
		if err != nil {
			return err
		}
		set := problemset.FromRows("args", rows)
		_, err = sess.Load(set, 1)
		return err
	}

	path, _ := cmd.Flags().GetString("set")
	if path == "" {
		_, err := sess.Next()
		return err
	}

	set, err := problemset.Load(path)
	if err != nil {
		return err
	}
	no, _ := cmd.Flags().GetInt("no")
	if no == 0 {
		var ok bool
		if no, _, ok = set.Range(); !ok {
			return fmt.Errorf("%s has no problems", set.Name)
		}
	}
	_, err = sess.Load(set, no)
	return err
}

func parseRows(args []string) ([]int64, error) {
	rows := make([]int64, 0, len(args))
	for _, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %q is not an integer", a)
		}
		rows = append(rows, n)
	}
	if len(rows) > problemgen.MaxRows {
		return nil, fmt.Errorf("at most %d rows, got %d", problemgen.MaxRows, len(rows))
	}
	return rows, nil
}
