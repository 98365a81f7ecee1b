// Package screen defines what the router stacks: one full-window view of
// the practice app (home, set browser, drill).
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/yomiage/internal/ui/layout"
)

// Screen is one page of the TUI. The app frame draws the header and
// footer; a screen only fills the space between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders into a width x height content box.
	View(width, height int) string

	// Title is shown in the header breadcrumb.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints, for
// example per drill phase.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is implemented by screens that hold work in flight, such as a
// speech request. The router calls Leave when the screen is popped or
// replaced.
type Leaver interface {
	Leave()
}
