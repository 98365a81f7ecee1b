// Package router keeps the TUI's screen stack: home at the bottom, then
// the set browser and drill screens pushed over it.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/yomiage/internal/screen"
)

// PushScreenMsg opens Screen over the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// HomeMsg closes every screen above the root.
type HomeMsg struct{}

// Router owns the screen stack. The root screen is never removed.
type Router struct {
	stack []screen.Screen
}

// New creates a Router with root at the bottom.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) == 1 {
		return nil
	}
	top := len(r.stack) - 1
	leave(r.stack[top])
	r.stack[top] = nil
	r.stack = r.stack[:top]
	return nil
}

// Replace swaps the top screen for s. Replacing the root is allowed.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	top := len(r.stack) - 1
	leave(r.stack[top])
	r.stack[top] = s
	return s.Init()
}

// Home pops back to the root screen.
func (r *Router) Home() tea.Cmd {
	for len(r.stack) > 1 {
		r.Pop()
	}
	return nil
}

func leave(s screen.Screen) {
	if l, ok := s.(screen.Leaver); ok {
		l.Leave()
	}
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the stack size; 1 means only the root is open.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Breadcrumb joins the titles above the root, e.g.
// "Problem sets › 2023.csv". It is empty on the root screen.
func (r *Router) Breadcrumb(sep string) string {
	titles := make([]string, 0, len(r.stack)-1)
	for _, s := range r.stack[1:] {
		if t := s.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return strings.Join(titles, sep)
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case HomeMsg:
		return r.Home()
	}

	top := len(r.stack) - 1
	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
