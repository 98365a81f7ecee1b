package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	practice "github.com/abhisek/yomiage/internal/drill"
	"github.com/abhisek/yomiage/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderInfo(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch s.phase {
	case phaseListen:
		b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Ready when you are."))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("Press Space to hear the problem."))

	case phaseSpeaking:
		b.WriteString(center.Foreground(theme.TextDim).Render("Reading..."))

	case phaseAnswer:
		if s.revealed {
			b.WriteString(s.renderScript(width))
			b.WriteString("\n\n")
		}
		b.WriteString(center.Render("Total: " + s.input.View()))

	case phaseFeedback:
		b.WriteString(s.renderFeedback(width))

	case phaseDone:
		msg := "End of set."
		if s.errMsg != "" {
			msg = s.errMsg
		}
		b.WriteString(center.Foreground(theme.Text).Bold(true).Render(msg))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("Press Enter to go back."))
		return b.String()
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Inherit(theme.Incorrect).Render(s.errMsg))
	}
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Inherit(theme.Hint).Render(s.notice))
	}
	return b.String()
}

func (s *DrillScreen) renderInfo(width int) string {
	_, src, _ := s.deps.Session.Current()
	opts := s.deps.Session.Options()

	left := fmt.Sprintf("  %s", src)
	if src.Random() {
		left = fmt.Sprintf("  %d rows", opts.Rows)
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(left + " · " + s.deps.Session.DigitInfo())

	st := s.deps.Session.Stats()
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d/%d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			st.Correct, st.Answered))

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}
	return line
}

func (s *DrillScreen) renderScript(width int) string {
	return lipgloss.NewStyle().
		Width(max(width-8, 10)).
		Margin(0, 4).
		Inherit(theme.Script).
		Render(s.script)
}

func (s *DrillScreen) renderFeedback(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder

	verdict, mark := theme.Verdict(s.result.Correct)
	if s.result.Correct {
		b.WriteString(center.Inherit(verdict).Render(mark + " Correct!  " + s.result.Formatted))
	} else {
		b.WriteString(center.Inherit(verdict).Render(mark + " Not quite."))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Text).Render(
			fmt.Sprintf("You said %s, the total is %s", practice.FormatNumber(s.result.Given), s.result.Formatted)))
	}
	b.WriteString("\n\n")
	b.WriteString(s.renderScript(width))
	return b.String()
}
