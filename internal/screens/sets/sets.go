// Package sets lists the problem set files in a directory and opens one
// for practice.
package sets

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/yomiage/internal/problemset"
	"github.com/abhisek/yomiage/internal/router"
	"github.com/abhisek/yomiage/internal/screen"
	"github.com/abhisek/yomiage/internal/ui/components"
	"github.com/abhisek/yomiage/internal/ui/theme"
)

// OpenFunc builds the practice screen for a loaded set.
type OpenFunc func(set *problemset.Set) screen.Screen

// SetsScreen implements screen.Screen for the problem set picker.
type SetsScreen struct {
	dir    string
	open   OpenFunc
	menu   components.Menu
	count  int
	errMsg string
}

var _ screen.Screen = (*SetsScreen)(nil)

// New creates a SetsScreen over dir.
func New(dir string, open OpenFunc) *SetsScreen {
	return &SetsScreen{dir: dir, open: open}
}

func (s *SetsScreen) Init() tea.Cmd {
	sums, err := problemset.Scan(s.dir)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.count = len(sums)

	items := make([]components.MenuItem, 0, len(sums))
	for _, sum := range sums {
		item := components.MenuItem{Label: sum.Name}
		if sum.Err != nil {
			item.Detail = "unreadable"
			item.Disabled = true
		} else {
			item.Detail = fmt.Sprintf("%d problems", sum.Count)
			path := sum.Path
			item.Action = func() tea.Cmd { return s.load(path) }
		}
		items = append(items, item)
	}
	s.menu = components.NewMenu(items)
	return nil
}

func (s *SetsScreen) load(path string) tea.Cmd {
	set, err := problemset.Load(path)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if set.Len() == 0 {
		s.errMsg = fmt.Sprintf("%s has no usable problems", set.Name)
		return nil
	}
	s.errMsg = ""
	next := s.open(set)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetsScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Problem sets"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(s.dir))
	b.WriteString("\n\n")

	if s.count == 0 && s.errMsg == "" {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("No .csv or .json sets found here."))
		return b.String()
	}

	// Title, path, error line and scroll markers take six rows.
	s.menu.Height = max(height-6, 3)
	b.WriteString(lipgloss.NewStyle().Margin(0, 4).Render(s.menu.View()))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Margin(0, 4).Inherit(theme.Incorrect).Render(s.errMsg))
	}
	return b.String()
}

func (s *SetsScreen) Title() string {
	return "Problem sets"
}
