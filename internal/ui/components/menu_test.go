package components

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func char(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func items(n int, disabled ...int) []MenuItem {
	out := make([]MenuItem, n)
	for i := range out {
		out[i].Label = fmt.Sprintf("set-%d.csv", i+1)
	}
	for _, d := range disabled {
		out[d].Disabled = true
	}
	return out
}

func TestMenuSkipsDisabledAndWraps(t *testing.T) {
	m := NewMenu(items(4, 0, 2))
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	steps := []struct {
		msg  tea.Msg
		want int
	}{
		{key(tea.KeyDown), 3},
		{key(tea.KeyDown), 1},
		{key(tea.KeyUp), 3},
		{key(tea.KeyHome), 1},
		{key(tea.KeyEnd), 3},
		{char('2'), 1},
		{char('3'), 1}, // disabled
		{char('9'), 1}, // out of range
	}
	for i, s := range steps {
		m, _ = m.Update(s.msg)
		if m.Selected != s.want {
			t.Fatalf("step %d: selected = %d, want %d", i, m.Selected, s.want)
		}
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := ""
	list := items(2)
	for i := range list {
		label := list[i].Label
		list[i].Action = func() tea.Cmd {
			ran = label
			return nil
		}
	}

	m := NewMenu(list)
	m, _ = m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyEnter))

	if ran != "set-2.csv" {
		t.Errorf("ran %q, want set-2.csv", ran)
	}
}

func TestMenuScrollWindow(t *testing.T) {
	m := NewMenu(items(10))
	m.Height = 3

	view := m.View()
	if !strings.Contains(view, "set-3.csv") || strings.Contains(view, "set-4.csv") {
		t.Errorf("first window wrong:\n%s", view)
	}
	if !strings.Contains(view, "↓ more") || strings.Contains(view, "↑ more") {
		t.Errorf("expected only a down marker:\n%s", view)
	}

	for range 5 {
		m, _ = m.Update(key(tea.KeyDown))
	}
	view = m.View()
	if !strings.Contains(view, "set-6.csv") || strings.Contains(view, "set-3.csv") {
		t.Errorf("window should follow the cursor to set-6:\n%s", view)
	}
	if !strings.Contains(view, "↑ more") {
		t.Errorf("expected an up marker:\n%s", view)
	}
}

func TestMenuEmpty(t *testing.T) {
	m := NewMenu(nil)
	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil || m.View() != "" {
		t.Error("empty menu should do nothing")
	}
}
