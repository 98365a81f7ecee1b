package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/yomiage/internal/settings"
	"github.com/abhisek/yomiage/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "yomiage",
	Short: "Listening practice for mental arithmetic",
	Long: `Yomiage reads columns of numbers aloud, the way an abacus teacher does,
and checks the total you add up in your head.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Open the full-screen practice UI (the default command)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides YOMIAGE_DB env var)")
	rootCmd.PersistentFlags().String("settings", "", "Path to settings file (overrides YOMIAGE_SETTINGS env var)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(narrateCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(speechCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then YOMIAGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadSettings reads the settings file named by --settings, or the
// default one.
func loadSettings(cmd *cobra.Command) (settings.Settings, error) {
	path, err := settingsPath(cmd)
	if err != nil {
		return settings.Default(), err
	}
	return settings.Load(path)
}

func settingsPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("settings"); p != "" {
		return p, nil
	}
	return settings.DefaultPath()
}
