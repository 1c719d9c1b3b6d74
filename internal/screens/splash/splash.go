// Package splash shows a short intro before the generator opens.
package splash

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/router"
	"github.com/abhisek/lkpd/internal/screen"
	"github.com/abhisek/lkpd/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 400 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const pageArt = `┌──────────────┐
│ ▬▬▬▬▬▬▬▬     │
│              │
│ ☐ ────────── │
│ ☐ ────────── │
│ ☑ ────────── │
│            ✎ │
└──────────────┘`

type tickMsg time.Time

// Screen animates the intro and then replaces itself with the screen
// built by next.
type Screen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*Screen)(nil)

// New creates the splash. next is called once, on transition.
func New(next func() screen.Screen) *Screen {
	return &Screen{next: next}
}

func (s *Screen) Title() string {
	return ""
}

func (s *Screen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update advances the animation. Any key skips it; it ends on its own
// after totalDur.
func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		s.elapsed += tickInterval
		if s.elapsed >= totalDur {
			return s, s.transition()
		}
		return s, tick()

	case tea.KeyPressMsg:
		return s, s.transition()
	}
	return s, nil
}

func (s *Screen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	next := s.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *Screen) View(width, height int) string {
	sections := []string{lipgloss.NewStyle().Foreground(theme.Secondary).Render(pageArt)}

	if s.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Generator LKPD Kurikulum Merdeka"),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Dibuat untuk Guru Indonesia."),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("tekan tombol apa saja untuk mulai"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
