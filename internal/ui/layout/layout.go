// Package layout draws the frame around every screen: a header with the
// product name and tabs, and a footer with key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/ui/theme"
)

// Minimum terminal size; below it only a resize message is drawn.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Tab is one entry of the header navigation.
type Tab struct {
	Label  string
	Active bool
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal terlalu kecil!\n\nPerbesar jendela hingga\nminimal %d x %d\n\nSaat ini: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader renders the brand on the left, the tabs on the right and
// the screen title between them when there is room.
func RenderHeader(title string, tabs []Tab, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" Generator LKPD") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · Kurikulum Merdeka")

	labels := make([]string, 0, len(tabs))
	for _, t := range tabs {
		style := theme.TabInactive
		if t.Active {
			style = theme.TabActive
		}
		labels = append(labels, style.Render(t.Label))
	}
	nav := strings.Join(labels, " ")

	inner := max(width-4, 0)
	free := inner - lipgloss.Width(brand) - lipgloss.Width(nav)

	middle := strings.Repeat(" ", max(free, 1))
	if t := lipgloss.NewStyle().Foreground(theme.Text).Render(title); title != "" && free > lipgloss.Width(t)+4 {
		left := (free - lipgloss.Width(t)) / 2
		middle = strings.Repeat(" ", left) + t + strings.Repeat(" ", free-left-lipgloss.Width(t))
	}

	return bar(width).Render(brand + middle + nav)
}

// RenderFooter renders key hints, dropping trailing hints that do not fit
// on one line.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	inner := max(width-6, 0)
	var line string
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := part
		if line != "" {
			next = line + "   " + part
		}
		if lipgloss.Width(next) > inner {
			break
		}
		line = next
	}

	return bar(width).Render("  " + line)
}

// RenderFrame stacks header, content and footer, sizing the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
