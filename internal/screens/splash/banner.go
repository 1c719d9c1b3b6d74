package splash

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/ui/theme"
)

const bannerArt = `
 ██╗     ██╗  ██╗██████╗ ██████╗
 ██║     ██║ ██╔╝██╔══██╗██╔══██╗
 ██║     █████╔╝ ██████╔╝██║  ██║
 ██║     ██╔═██╗ ██╔═══╝ ██║  ██║
 ███████╗██║  ██╗██║     ██████╔╝
 ╚══════╝╚═╝  ╚═╝╚═╝     ╚═════╝`

const bannerCompact = "L K P D"

// RenderBanner returns the LKPD banner, or a one-line fallback for
// terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
