package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/yomiage/internal/router"
	"github.com/abhisek/yomiage/internal/screen"
	"github.com/abhisek/yomiage/internal/ui/components"
	"github.com/abhisek/yomiage/internal/ui/layout"
	"github.com/abhisek/yomiage/internal/ui/theme"
)

// Options configures the home menu.
type Options struct {
	// Summary describes the random drill, e.g. "5 rows · 1-3 digits".
	Summary string

	// Voice names the speech backend, empty when running text-only.
	Voice string

	Drill func() screen.Screen
	Sets  func() screen.Screen
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts Options
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(opts Options) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := []components.MenuItem{
		{Label: "Random drill", Detail: opts.Summary, Action: push(opts.Drill), Disabled: opts.Drill == nil},
		{Label: "Problem sets", Action: push(opts.Sets), Disabled: opts.Sets == nil},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		opts: opts,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render("読み上げ算  Yomiage"))
	sections = append(sections, theme.Subtitle.Render("Listen to the rows, add them up in your head."))

	voice := "text only"
	if h.opts.Voice != "" {
		voice = "voice: " + h.opts.Voice
	}
	sections = append(sections, theme.Hint.Render(voice))

	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	return layout.Center(lipgloss.JoinVertical(lipgloss.Center, sections...), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
