package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/ui/theme"
)

// Option is one entry of a Select.
type Option struct {
	Value string
	Label string
}

// Select is a single-choice picker cycled with left/right.
type Select struct {
	Options  []Option
	Selected int
	Focused  bool
}

// NewSelect creates a picker positioned on value, or on the first option
// when value is unknown.
func NewSelect(options []Option, value string) Select {
	s := Select{Options: options}
	s.SetValue(value)
	return s
}

// Update handles keyboard navigation. It reports whether the value changed.
func (s Select) Update(msg tea.Msg) (Select, bool) {
	if !s.Focused || len(s.Options) == 0 {
		return s, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, false
	}

	switch kmsg.String() {
	case "left", "h":
		s.Selected = (s.Selected - 1 + len(s.Options)) % len(s.Options)
		return s, true
	case "right", "l", "space":
		s.Selected = (s.Selected + 1) % len(s.Options)
		return s, true
	}
	return s, false
}

// Value returns the selected option value.
func (s Select) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected].Value
}

// SetValue moves the selection to value if present.
func (s *Select) SetValue(value string) {
	for i, o := range s.Options {
		if o.Value == value {
			s.Selected = i
			return
		}
	}
	s.Selected = 0
}

// View renders the selected option between arrows.
func (s Select) View() string {
	if len(s.Options) == 0 {
		return ""
	}
	label := s.Options[s.Selected].Label
	if s.Focused {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("◂ " + label + " ▸")
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render("  " + label)
}
