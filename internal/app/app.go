package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/yomiage/internal/drill"
	"github.com/abhisek/yomiage/internal/player"
	"github.com/abhisek/yomiage/internal/problemset"
	"github.com/abhisek/yomiage/internal/router"
	"github.com/abhisek/yomiage/internal/screen"
	drillscreen "github.com/abhisek/yomiage/internal/screens/drill"
	"github.com/abhisek/yomiage/internal/screens/home"
	"github.com/abhisek/yomiage/internal/screens/sets"
	"github.com/abhisek/yomiage/internal/settings"
	"github.com/abhisek/yomiage/internal/ui/layout"
)

// Deps are the collaborators shared by every screen.
type Deps struct {
	Session  *drill.Session
	Settings settings.Settings

	// Player may be nil; clips are then only written to disk.
	Player *player.Player

	// Voice names the speech model for the home screen, empty for text-only.
	Voice string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *drill.Session
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps Deps) AppModel {
	openDrill := func(set *problemset.Set) screen.Screen {
		start := 0
		if set != nil {
			start, _, _ = set.Range()
		}
		return drillscreen.New(drillscreen.Deps{
			Session:  deps.Session,
			Set:      set,
			Start:    start,
			Player:   deps.Player,
			AudioDir: deps.Settings.AudioDir,
			Rate:     deps.Settings.PlaybackRate(),
		})
	}

	opts := deps.Session.Options()
	homeScreen := home.New(home.Options{
		Summary: fmt.Sprintf("%d rows · %s", opts.Rows, digitRange(opts.MinDigit, opts.MaxDigit)),
		Voice:   deps.Voice,
		Drill:   func() screen.Screen { return openDrill(nil) },
		Sets: func() screen.Screen {
			return sets.New(deps.Settings.SetsDir, func(set *problemset.Set) screen.Screen {
				return openDrill(set)
			})
		},
	})

	return AppModel{
		router:  router.New(homeScreen),
		session: deps.Session,
	}
}

func digitRange(lo, hi int) string {
	if lo == hi {
		if lo == 1 {
			return "1 digit"
		}
		return fmt.Sprintf("%d digits", lo)
	}
	return fmt.Sprintf("%d-%d digits", lo, hi)
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render draws the whole frame, or "" before the first resize.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := m.router.Breadcrumb(" › ")

	st := m.session.Stats()
	status := ""
	if st.Answered > 0 {
		status = fmt.Sprintf("✓ %d/%d", st.Correct, st.Answered)
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
