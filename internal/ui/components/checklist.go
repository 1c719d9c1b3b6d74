package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/ui/theme"
)

// CheckItem is one independently toggled entry.
type CheckItem struct {
	Key     string
	Label   string
	Checked bool
}

// Checklist is a vertical list of checkboxes.
type Checklist struct {
	Items   []CheckItem
	Cursor  int
	Focused bool
}

// NewChecklist creates a checklist with the cursor on the first item.
func NewChecklist(items []CheckItem) Checklist {
	return Checklist{Items: items}
}

// Update handles keyboard navigation. Space toggles the item under the
// cursor. It returns the toggled item key, or "" when nothing changed.
// Up on the first item and down on the last are left to the caller.
func (c Checklist) Update(msg tea.Msg) (Checklist, string) {
	if !c.Focused {
		return c, ""
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, ""
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space", "x":
		if c.Cursor >= 0 && c.Cursor < len(c.Items) {
			c.Items[c.Cursor].Checked = !c.Items[c.Cursor].Checked
			return c, c.Items[c.Cursor].Key
		}
	}
	return c, ""
}

// AtTop reports whether the cursor is on the first item.
func (c Checklist) AtTop() bool { return c.Cursor == 0 }

// AtBottom reports whether the cursor is on the last item.
func (c Checklist) AtBottom() bool { return c.Cursor >= len(c.Items)-1 }

// View renders one row per item.
func (c Checklist) View() string {
	var s string
	for i, item := range c.Items {
		box := "[ ]"
		if item.Checked {
			box = theme.Checked.Render("[x]")
		}
		label := item.Label
		if c.Focused && i == c.Cursor {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ") + box + " " + theme.Selected.Render(label) + "\n"
		} else {
			s += "  " + box + " " + lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "\n"
		}
	}
	return s
}
