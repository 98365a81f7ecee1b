package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/yomiage/internal/ui/theme"
)

// MenuItem is one line of a Menu. Disabled items are shown but skipped
// by the cursor, e.g. an unreadable problem set.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical picker. The cursor wraps at both ends. When Height
// is set only that many items are drawn, scrolled to keep the cursor in
// view.
type Menu struct {
	Items    []MenuItem
	Selected int
	Height   int

	offset int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step walks from i in direction dir to the next enabled item, wrapping
// once around the list. It returns -1 when every item is disabled.
func (m Menu) step(i, dir int) int {
	n := len(m.Items)
	for range n {
		i = (i + dir + n) % n
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Update moves the cursor and runs the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch k := key.String(); k {
	case "up", "k":
		m.moveTo(m.step(m.Selected, -1))
	case "down", "j":
		m.moveTo(m.step(m.Selected, 1))
	case "home", "g":
		m.moveTo(m.step(-1, 1))
	case "end", "G":
		m.moveTo(m.step(len(m.Items), -1))
	case "enter":
		item := m.Items[m.Selected]
		if item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	default:
		// 1-9 jump straight to an item.
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			if i := int(k[0] - '1'); i < len(m.Items) && !m.Items[i].Disabled {
				m.moveTo(i)
			}
		}
	}
	return m, nil
}

func (m *Menu) moveTo(i int) {
	if i < 0 {
		return
	}
	m.Selected = i
	if m.Height <= 0 {
		return
	}
	if i < m.offset {
		m.offset = i
	}
	if i >= m.offset+m.Height {
		m.offset = i - m.Height + 1
	}
}

// View renders the visible items, one per line, with scroll markers when
// items are hidden above or below.
func (m Menu) View() string {
	from, to := 0, len(m.Items)
	if m.Height > 0 && m.Height < len(m.Items) {
		from = min(m.offset, len(m.Items)-m.Height)
		to = from + m.Height
	}

	var b strings.Builder
	if from > 0 {
		b.WriteString(theme.Hint.Render("    ↑ more") + "\n")
	}
	for i := from; i < to; i++ {
		item := m.Items[i]
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		case item.Disabled:
			b.WriteString(theme.Hint.Render("    " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		if item.Detail != "" {
			b.WriteString("  " + theme.Hint.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	if to < len(m.Items) {
		b.WriteString(theme.Hint.Render("    ↓ more") + "\n")
	}
	return b.String()
}
