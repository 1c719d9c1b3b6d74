package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/ui/theme"
)

// ContentWidth returns the inner width used for form sections so that all
// cards line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 90 {
		w = 90
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CenterFrame centers content in a box of the given size.
func CenterFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Modal wraps content in a rounded, bordered dialog of width cw.
func Modal(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(cw).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// SectionCard renders a numbered form section.
func SectionCard(number int, title, content string, cw int) string {
	badge := lipgloss.NewStyle().
		Foreground(theme.Text).
		Background(theme.Primary).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("%d", number))
	heading := badge + " " + theme.SectionHeading.Render(title)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(heading + "\n\n" + content)
}
