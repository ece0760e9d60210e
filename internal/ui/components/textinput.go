package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/probatequiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and an error mark.
type TextInput struct {
	Label    string
	Required bool
	Model    textinput.Model
	invalid  bool
}

// NewTextInput creates a blurred input.
func NewTextInput(label, placeholder string, required bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Label: label, Required: required, Model: ti}
}

// Focus gives the input the cursor.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes the cursor.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has the cursor.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update forwards messages to the wrapped model.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders "Label*: value".
func (t TextInput) View() string {
	label := t.Label
	if t.Required {
		label += "*"
	}
	style := theme.Unselected
	if t.Focused() {
		style = theme.Selected
	}
	view := style.Render(label+": ") + t.Model.View()
	if t.invalid {
		view += " " + lipgloss.NewStyle().Foreground(theme.Warning).Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// MarkInvalid flags the input after a failed submission.
func (t *TextInput) MarkInvalid(invalid bool) {
	t.invalid = invalid
}
