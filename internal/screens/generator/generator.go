// Package generator is the main screen: the worksheet request form, the
// loading view while the AI writes, and the preview with its toolbar.
package generator

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/lkpd/internal/controller"
	"github.com/abhisek/lkpd/internal/export"
	"github.com/abhisek/lkpd/internal/form"
	"github.com/abhisek/lkpd/internal/llm"
	"github.com/abhisek/lkpd/internal/logger"
	"github.com/abhisek/lkpd/internal/screen"
	"github.com/abhisek/lkpd/internal/ui/components"
	"github.com/abhisek/lkpd/internal/ui/layout"
	"github.com/abhisek/lkpd/internal/ui/theme"
	"github.com/abhisek/lkpd/internal/worksheet"
)

const (
	captionInterval  = 2 * time.Second
	progressInterval = 100 * time.Millisecond
	progressDuration = 8 * time.Second
	copiedDuration   = 2 * time.Second
)

var loadingSteps = []string{
	"Menganalisis kebutuhan pembelajaran...",
	"Menyusun struktur LKPD...",
	"Merancang aktivitas yang menarik...",
	"Finalisasi dokumen...",
}

const (
	msgExportFailed = "Gagal mengunduh Word. Periksa folder tujuan lalu coba lagi."
	msgCopyFailed   = "Gagal menyalin teks ke clipboard."
)

// Options are the screen's dependencies.
type Options struct {
	Provider  llm.Provider
	Clipboard export.Clipboard
	// OutDir receives exported Word files. Default: current directory.
	OutDir string
	Logger *logger.Logger
	// ProviderErr is why Provider is nil, shown when a generation is
	// attempted without one.
	ProviderErr error
}

// Screen implements screen.Screen for the worksheet generator.
type Screen struct {
	opts Options
	log  *logger.Logger
	ctrl *controller.Controller
	form *form.Form

	items  []*item
	traits components.Checklist
	submit components.Button
	focus  int

	// Generating.
	pendingID string
	started   time.Time
	caption   int
	progress  float64
	spin      spinner.Model

	// Preview.
	editor     textarea.Model
	letterhead [4]components.TextInput
	editFocus  int
	scroll     int
	maxScroll  int
	copied     bool
	copySeq    int
	notice     string
	alert      string

	rendered    string
	renderedKey string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the generator screen with an empty form.
func New(opts Options) *Screen {
	if opts.Clipboard == nil {
		opts.Clipboard = export.SystemClipboard{}
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	f := form.New()
	s := &Screen{
		opts:  opts,
		log:   log,
		ctrl:  controller.New(),
		form:  f,
		items: buildItems(f),
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Subtitle)),
	}
	s.traits = traitChecklist(f)
	s.submit = components.NewButton("Generate LKPD Sekarang", "", s.submitForm)

	s.editor = textarea.New()
	s.editor.ShowLineNumbers = false
	s.editor.CharLimit = 0
	s.editor.MaxHeight = 0

	placeholders := [4]string{
		"Baris 1 (Misal: PEMERINTAH KABUPATEN...)",
		"Baris 2 (Misal: DINAS PENDIDIKAN...)",
		"Baris 3 (Misal: SD NEGERI 1...)",
		"Alamat Lengkap...",
	}
	for i, p := range placeholders {
		s.letterhead[i] = components.NewTextInput(p, false, 0)
	}

	s.focusItem(2)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.focusItem(s.focus)
}

func (s *Screen) Title() string {
	return "Generator"
}

// Controller exposes the view state machine.
func (s *Screen) Controller() *controller.Controller {
	return s.ctrl
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.ctrl.State() {
	case controller.StateGenerating:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Keluar"}}
	case controller.StatePreview:
		if doc := s.ctrl.Document(); doc != nil && doc.Editing() {
			return []layout.KeyHint{
				{Key: "Tab", Description: "Pindah kolom"},
				{Key: "Esc", Description: "Selesai Edit"},
				{Key: "Ctrl+Y", Description: "Salin"},
				{Key: "Ctrl+N", Description: "Buat Baru"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Gulir"},
			{Key: "E", Description: "Edit"},
			{Key: "C", Description: "Salin"},
			{Key: "W", Description: "Word"},
			{Key: "N", Description: "Buat Baru"},
			{Key: "F1", Description: "Panduan"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Pindah"},
		{Key: "←→", Description: "Pilih"},
		{Key: "Spasi", Description: "Centang"},
		{Key: "Ctrl+S", Description: "Generate"},
		{Key: "F1", Description: "Panduan"},
		{Key: "Ctrl+C", Description: "Keluar"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s, s.handleGenerated(msg)

	case captionTickMsg:
		if msg.ID != s.pendingID || s.ctrl.State() != controller.StateGenerating {
			return s, nil
		}
		s.caption = (s.caption + 1) % len(loadingSteps)
		return s, captionTick(msg.ID)

	case progressTickMsg:
		if msg.ID != s.pendingID || s.ctrl.State() != controller.StateGenerating {
			return s, nil
		}
		s.progress = float64(msg.At.Sub(s.started)) / float64(progressDuration)
		if s.progress > 1 {
			s.progress = 1
		}
		return s, progressTick(msg.ID)

	case spinner.TickMsg:
		if s.ctrl.State() != controller.StateGenerating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case copiedResetMsg:
		if msg.seq == s.copySeq {
			s.copied = false
		}
		return s, nil

	case exportDoneMsg:
		if msg.Err != nil {
			s.log.Warn("word export failed", "error", msg.Err)
			s.alert = msgExportFailed
			return s, nil
		}
		s.log.Info("word export saved", "path", msg.Path)
		s.notice = "Tersimpan: " + msg.Path
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	// Paste, cursor blink and other widget messages.
	return s, s.forward(msg)
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.alert != "" {
		s.alert = ""
		return nil
	}
	switch s.ctrl.State() {
	case controller.StateInput:
		return s.handleFormKey(msg)
	case controller.StatePreview:
		return s.handlePreviewKey(msg)
	}
	return nil
}

// forward passes msg to the focused text widget and writes the widget's
// value back, so pasted text lands in the form or document like typed text.
func (s *Screen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.ctrl.State() {
	case controller.StateInput:
		if it := s.items[s.focus]; it.kind == kindInput {
			it.input, cmd = it.input.Update(msg)
			_ = s.form.Set(it.id, it.input.Value())
		}
	case controller.StatePreview:
		if s.editing() {
			if s.editFocus == 0 {
				s.editor, cmd = s.editor.Update(msg)
			} else {
				s.letterhead[s.editFocus-1], cmd = s.letterhead[s.editFocus-1].Update(msg)
			}
			s.commitEdits()
		}
	}
	return cmd
}

func (s *Screen) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+s":
		return s.submitForm()
	case "tab":
		return s.focusItem((s.focus + 1) % len(s.items))
	case "shift+tab":
		return s.focusItem((s.focus - 1 + len(s.items)) % len(s.items))
	}

	it := s.items[s.focus]
	switch it.kind {
	case kindSelect:
		switch key {
		case "up":
			return s.focusItem(s.focus - 1)
		case "down", "enter":
			return s.focusItem(s.focus + 1)
		}
		var changed bool
		it.sel, changed = it.sel.Update(msg)
		if changed {
			_ = s.form.Set(it.id, it.sel.Value())
		}
		return nil

	case kindInput:
		switch key {
		case "up":
			return s.focusItem(s.focus - 1)
		case "down", "enter":
			return s.focusItem(s.focus + 1)
		}
		return s.forward(msg)

	case kindTraits:
		switch {
		case key == "up" && s.traits.AtTop():
			return s.focusItem(s.focus - 1)
		case (key == "down" && s.traits.AtBottom()) || key == "enter":
			return s.focusItem(s.focus + 1)
		}
		var toggled string
		s.traits, toggled = s.traits.Update(msg)
		if toggled != "" {
			s.form.ToggleTrait(worksheet.Trait(toggled))
		}
		return nil

	case kindSubmit:
		if key == "up" {
			return s.focusItem(s.focus - 1)
		}
		var cmd tea.Cmd
		s.submit, cmd = s.submit.Update(msg)
		return cmd
	}
	return nil
}

// submitForm validates the form and, when it passes, starts a generation.
func (s *Screen) submitForm() tea.Cmd {
	req, errs := s.form.Submit()
	if first := s.showErrors(); len(errs) > 0 {
		if first < 0 {
			return nil
		}
		return s.focusItem(first)
	}

	if err := s.ctrl.Submit(req); err != nil {
		s.log.Debug("submit ignored", "state", s.ctrl.State().String(), "error", err)
		return nil
	}

	s.pendingID = uuid.NewString()
	s.started = time.Now()
	s.caption = 0
	s.progress = 0
	s.log.Info("generation started",
		"request_id", s.pendingID,
		"subject", req.Subject,
		"topic", req.Topic,
		"questions", req.QuestionCount,
	)

	return tea.Batch(
		s.generateCmd(),
		s.spin.Tick,
		captionTick(s.pendingID),
		progressTick(s.pendingID),
	)
}

// generateCmd asks the provider for the worksheet off the UI loop.
func (s *Screen) generateCmd() tea.Cmd {
	id := s.pendingID
	req := s.ctrl.Request()
	p := s.opts.Provider
	setupErr := s.opts.ProviderErr
	return func() tea.Msg {
		if p == nil || req == nil {
			return generatedMsg{ID: id, Err: missingProvider(setupErr)}
		}
		ctx := llm.WithRequestID(llm.WithPurpose(context.Background(), llm.PurposeWorksheet), id)
		text, err := controller.Fetch(ctx, p, *req)
		return generatedMsg{ID: id, Text: text, Err: err}
	}
}

func (s *Screen) handleGenerated(msg generatedMsg) tea.Cmd {
	if msg.ID != s.pendingID || s.ctrl.State() != controller.StateGenerating {
		return nil
	}
	s.pendingID = ""

	if msg.Err != nil {
		_ = s.ctrl.Fail(msg.Err)
		s.log.Warn("generation failed", "request_id", msg.ID, "error", msg.Err)
		return s.focusItem(s.focus)
	}

	_ = s.ctrl.Succeed(msg.Text)
	s.log.Info("generation complete", "request_id", msg.ID, "chars", len(msg.Text))
	s.enterPreview()
	return nil
}

// missingProvider reports a generation attempted without a provider as a
// configuration error, keeping the setup failure as its message.
func missingProvider(setupErr error) error {
	var cfgErr *llm.ErrConfig
	if errors.As(setupErr, &cfgErr) {
		return setupErr
	}
	msg := "no provider configured"
	if setupErr != nil {
		msg = setupErr.Error()
	}
	return &llm.ErrConfig{Provider: "none", Msg: msg}
}

func captionTick(id string) tea.Cmd {
	return tea.Tick(captionInterval, func(time.Time) tea.Msg {
		return captionTickMsg{ID: id}
	})
}

func progressTick(id string) tea.Cmd {
	return tea.Tick(progressInterval, func(t time.Time) tea.Msg {
		return progressTickMsg{ID: id, At: t}
	})
}
