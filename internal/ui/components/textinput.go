package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lkpd/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a validation message.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	err         string
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(placeholder string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	// Zero means unlimited.
	ti.CharLimit = max(charLimit, 0)

	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
	}
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages. Numeric inputs drop non-digit characters.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		switch m := msg.(type) {
		case tea.KeyMsg:
			key := m.String()
			if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
				return t, nil
			}
		case tea.PasteMsg:
			m.Content = digitsOnly(m.Content)
			if m.Content == "" {
				return t, nil
			}
			msg = m
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// View renders the text input and its error line, if any.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.err != "" {
		view += "\n" + theme.FieldError.Render("  ✗ "+t.err)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// SetWidth sets the visible width of the input.
func (t *TextInput) SetWidth(w int) {
	t.Model.SetWidth(w)
}

// SetError sets the validation message; "" clears it.
func (t *TextInput) SetError(msg string) {
	t.err = msg
}

// Error returns the validation message.
func (t TextInput) Error() string {
	return t.err
}
