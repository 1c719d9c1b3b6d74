package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/export"
	"github.com/abhisek/lkpd/internal/llm"
	"github.com/abhisek/lkpd/internal/logger"
	"github.com/abhisek/lkpd/internal/router"
	"github.com/abhisek/lkpd/internal/screen"
	"github.com/abhisek/lkpd/internal/screens/generator"
	"github.com/abhisek/lkpd/internal/screens/guide"
	"github.com/abhisek/lkpd/internal/screens/splash"
	"github.com/abhisek/lkpd/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Provider  llm.Provider
	Clipboard export.Clipboard
	OutDir    string
	Logger    *logger.Logger
	// ProviderErr explains a nil Provider; it becomes the form banner.
	ProviderErr error
	// NoSplash opens the generator directly.
	NoSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel showing the splash, then the generator.
func newAppModel(opts Options) AppModel {
	newGenerator := func() screen.Screen {
		return generator.New(generator.Options{
			Provider:  opts.Provider,
			Clipboard: opts.Clipboard,
			OutDir:    opts.OutDir,
			Logger:    opts.Logger,

			ProviderErr: opts.ProviderErr,
		})
	}
	if opts.NoSplash {
		return AppModel{router: router.New(newGenerator())}
	}
	return AppModel{router: router.New(splash.New(newGenerator))}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if _, ok := m.router.Active().(*splash.Screen); ok && msg.String() != "ctrl+c" {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		case "f1", "ctrl+g":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, func() tea.Msg { return router.PushScreenMsg{Screen: guide.New()} }
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) tabs() []layout.Tab {
	onGuide := m.router.Depth() > 1
	return []layout.Tab{
		{Label: "Generator", Active: !onGuide},
		{Label: "Panduan", Active: onGuide},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.tabs(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Kembali"},
			{Key: "Ctrl+C", Description: "Keluar"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
