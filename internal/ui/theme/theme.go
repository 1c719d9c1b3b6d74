package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: indigo accents on slate, like a school letter on a desk.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	SectionHeading = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	FieldError = lipgloss.NewStyle().
			Foreground(Error)
)

// Frames
var (
	// Banner is the error strip above the form.
	Banner = lipgloss.NewStyle().
		Foreground(Error).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Error).
		Padding(0, 1)

	// Paper frames the rendered worksheet.
	Paper = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Checked = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	TabActive = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Underline(true)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextDim)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 1)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(Text).
			Padding(0, 1)

	ButtonDisabled = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(Border).
			Padding(0, 1)
)
