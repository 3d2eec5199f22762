package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput for form fields. Secure inputs echo
// asterisks instead of the typed characters.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a text input with styling defaults.
func NewTextInput(placeholder string, secure bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	if secure {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	return TextInput{Model: ti}
}

// Init focuses the input.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Focus moves the cursor into this field.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from this field.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update forwards messages to the underlying model.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the field.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current text.
func (t TextInput) Value() string {
	return t.Model.Value()
}
