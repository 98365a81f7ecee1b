package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/yomiage/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput for typed sums. Only digits, a
// leading minus and thousands separators get through.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	correct   bool
}

// NewAnswerInput creates a focused answer field.
func NewAnswerInput(placeholder string, maxWidth int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return AnswerInput{Model: ti}
}

// Init returns the focus command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update filters keys and forwards the rest to the text model.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.submitted {
		return a, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && !allowedAnswerKey(key[0]) {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

func allowedAnswerKey(c byte) bool {
	return (c >= '0' && c <= '9') || c == ',' || c == '-'
}

// View renders the field with a mark once submitted.
func (a AnswerInput) View() string {
	if !a.submitted {
		return a.Model.View()
	}
	style, mark := theme.Verdict(a.correct)
	return a.Model.View() + " " + style.Render(mark)
}

// Value returns the raw input.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Submit freezes the field and records the verdict.
func (a *AnswerInput) Submit(correct bool) {
	a.submitted = true
	a.correct = correct
}

// Reset clears the field for the next problem.
func (a *AnswerInput) Reset() {
	a.Model.SetValue("")
	a.submitted = false
	a.correct = false
}
