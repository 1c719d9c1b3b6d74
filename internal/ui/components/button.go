package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/ui/theme"
)

// Button is a toolbar button. A disabled button ignores presses and shows
// its Tooltip when focused.
type Button struct {
	Label    string
	Key      string
	Focused  bool
	Disabled bool
	Tooltip  string
	OnPress  func() tea.Cmd
}

// NewButton creates a new button bound to a shortcut key.
func NewButton(label, key string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Key:     key,
		OnPress: onPress,
	}
}

// Press runs the button action unless disabled.
func (b Button) Press() tea.Cmd {
	if b.Disabled || b.OnPress == nil {
		return nil
	}
	return b.OnPress()
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	switch kmsg.String() {
	case "enter":
		if b.Focused {
			return b, b.Press()
		}
	case b.Key:
		if b.Key != "" {
			return b, b.Press()
		}
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(label)
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + label)
	default:
		return theme.ButtonInactive.Render(label)
	}
}

// ToolbarView renders buttons in a row, followed by the tooltip of the
// first disabled button that has one.
func ToolbarView(buttons ...Button) string {
	parts := make([]string, 0, len(buttons))
	tip := ""
	for _, b := range buttons {
		parts = append(parts, b.View())
		if b.Disabled && b.Tooltip != "" && tip == "" {
			tip = b.Tooltip
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, joinSpaced(parts)...)
	if tip != "" {
		row += "  " + theme.Hint.Render(tip)
	}
	return row
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
