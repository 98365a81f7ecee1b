// Package theme holds the colours and text styles shared by all screens.
// The palette is warm wood and ink, like an abacus and a worksheet.
package theme

import (
	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#D97706") // amber, headings and cursor
	Secondary = lipgloss.Color("#0EA5E9") // sky, problem info and script
	Accent    = lipgloss.Color("#A3E635") // lime, score
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#F5F5F4")
	TextDim   = lipgloss.Color("#A8A29E")
	Border    = lipgloss.Color("#44403C")
)

var base = lipgloss.NewStyle()

// Text styles.
var (
	Title    = base.Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = base.Foreground(TextDim).Align(lipgloss.Center)
	Body     = base.Foreground(Text)
	Hint     = base.Foreground(TextDim).Italic(true)

	// Script is the narration text, shown when revealed or after checking.
	Script = base.Foreground(Secondary)
)

// Widget styles.
var (
	Card       = base.Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(1, 2)
	Selected   = base.Foreground(Primary).Bold(true)
	Unselected = base.Foreground(Text)
	Correct    = base.Foreground(Success).Bold(true)
	Incorrect  = base.Foreground(Error).Bold(true)
)

// Verdict returns the style and mark for a checked answer.
func Verdict(correct bool) (lipgloss.Style, string) {
	if correct {
		return Correct, "✓"
	}
	return Incorrect, "✗"
}
