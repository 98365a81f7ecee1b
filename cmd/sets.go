package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/yomiage/internal/problemgen"
	"github.com/abhisek/yomiage/internal/problemset"
)

var setsCmd = &cobra.Command{
	Use:   "sets [DIR]",
	Short: "List problem set files",
	Long:  "List the .csv and .json problem sets in DIR (default: the sets_dir setting).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) == 1 {
			dir = args[0]
		} else {
			st, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			dir = st.SetsDir
		}

		sums, err := problemset.Scan(dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sums) == 0 {
			fmt.Fprintf(out, "No problem sets in %s.\n", dir)
			return nil
		}
		for _, s := range sums {
			if s.Err != nil {
				fmt.Fprintf(out, "%-32s  error: %v\n", s.Name, s.Err)
				continue
			}
			rng := ""
			if set, err := problemset.Load(s.Path); err == nil {
				if lo, hi, ok := set.Range(); ok {
					rng = fmt.Sprintf("no. %d-%d", lo, hi)
				}
			}
			fmt.Fprintf(out, "%-32s  %5d problems  %s\n", s.Name, s.Count, rng)
		}
		return nil
	},
}

var setsCheckCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Load problem sets and report suspicious problems",
	Long: `Load each set and run the generator's checks over its problems:
a running total that dips below zero, or more negative rows in a row than
the generator would produce. Problems are reported, never rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := problemgen.ConfigFromEnv()
		if err != nil {
			return err
		}
		validators := problemgen.DefaultValidators(gen)
		out := cmd.OutOrStdout()

		failed := false
		for _, path := range args {
			set, err := problemset.Load(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failed = true
				continue
			}
			set.Check(validators)

			lo, hi, _ := set.Range()
			fmt.Fprintf(out, "%s: %d problems (no. %d-%d), %d warnings\n",
				set.Name, set.Len(), lo, hi, len(set.Warnings))
			for _, w := range set.Warnings {
				fmt.Fprintf(out, "  %s\n", w)
			}
		}
		if failed {
			return fmt.Errorf("some sets could not be loaded")
		}
		return nil
	},
}

func init() {
	setsCmd.AddCommand(setsCheckCmd)
}
