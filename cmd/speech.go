package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/yomiage/internal/speech"
	"github.com/abhisek/yomiage/internal/store"
)

var speechCmd = &cobra.Command{
	Use:   "speech",
	Short: "Inspect speech synthesis events",
}

// openStore resolves the DB path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

var speechListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent speech events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.SpeechEventRepo().QuerySpeechEvents(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No speech events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-28s  %-6s  %-8s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "Chars", "Bytes", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-8s  %-28s  %-6d  %-8d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Purpose, 8),
				truncate(e.Model, 28),
				e.Characters,
				e.AudioBytes,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var speechViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the text and outcome of a speech event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.SpeechEventRepo().GetSpeechEvent(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "ID:        %d\n", e.ID)
		fmt.Fprintf(out, "Event:     %s\n", e.EventID)
		fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Session:   %s\n", orDash(e.SessionID))
		fmt.Fprintf(out, "Provider:  %s\n", e.Provider)
		fmt.Fprintf(out, "Model:     %s\n", e.Model)
		fmt.Fprintf(out, "Voice:     %s\n", orDash(e.Voice))
		fmt.Fprintf(out, "Purpose:   %s\n", e.Purpose)
		fmt.Fprintf(out, "Text:      %d characters\n", e.Characters)
		fmt.Fprintf(out, "Audio:     %d bytes %s\n", e.AudioBytes, e.Format)
		fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
		fmt.Fprintf(out, "Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
		}
		return nil
	},
}

var speechStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated speech usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.SpeechEventRepo().SpeechUsageByModel(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No speech usage recorded yet.")
			return nil
		}

		fmt.Fprintln(out, strings.Repeat("─", 84))
		fmt.Fprintf(out, "%-8s  %-28s  %6s  %6s  %10s  %8s  %9s\n",
			"Provider", "Model", "Calls", "Failed", "Chars", "Avg Ms", "Cost")
		fmt.Fprintln(out, strings.Repeat("─", 84))

		var totalCalls, totalChars int
		var totalCost float64
		var unknown []string
		for _, u := range usage {
			cost := "?"
			if c := speech.LookupCost(u.Model); c != nil {
				usd := c.Cost(u.Characters)
				totalCost += usd
				cost = formatCost(usd)
			} else {
				unknown = append(unknown, u.Model)
			}
			fmt.Fprintf(out, "%-8s  %-28s  %6d  %6d  %10d  %8d  %9s\n",
				truncate(u.Provider, 8), truncate(u.Model, 28), u.Calls, u.Failures, u.Characters, u.AvgLatencyMs, cost)
			totalCalls += u.Calls
			totalChars += u.Characters
		}

		fmt.Fprintln(out, strings.Repeat("─", 84))
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-38s  %6d  %6s  %10d  %8s  %9s\n",
			label, totalCalls, "", totalChars, "", formatCost(totalCost))

		if len(unknown) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}

		if n, err := s.AudioCache().Len(context.Background()); err == nil {
			fmt.Fprintf(out, "\nCached clips: %d\n", n)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	speechListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	speechListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. drill, speak)")

	speechCmd.AddCommand(speechListCmd)
	speechCmd.AddCommand(speechViewCmd)
	speechCmd.AddCommand(speechStatsCmd)
}
