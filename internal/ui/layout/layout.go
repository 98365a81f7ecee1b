// Package layout draws the frame around every screen: a header with the
// breadcrumb and running score, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/yomiage/internal/ui/theme"
)

// The drill view needs room for a wrapped script and the answer box.
const (
	MinWidth  = 60
	MinHeight = 20
)

const appName = "読み上げ Yomiage"

// KeyHint is one "key: action" entry in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal cannot fit a drill.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := theme.Title.Render("Terminal too small") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("Need %dx%d, have %dx%d.", MinWidth, MinHeight, width, height))
	return Center(msg, width, height)
}

var bar = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// RenderHeader draws the app name on the left, crumb in the middle and
// status (the score) on the right.
func RenderHeader(crumb, status string, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)

	left := theme.Selected.Render(appName)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	middleWidth := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 0)
	middle := lipgloss.NewStyle().
		Width(middleWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		MaxHeight(1).
		Render(crumb)

	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right))
}

// RenderFooter draws as many hints as fit on one line, in order.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		sep := ""
		if b.Len() > 0 {
			sep = "   "
		}
		if lipgloss.Width(b.String())+len(sep)+lipgloss.Width(part) > inner {
			break
		}
		b.WriteString(sep + part)
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the window.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content = lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// Center places s in the middle of a width x height box.
func Center(s string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
