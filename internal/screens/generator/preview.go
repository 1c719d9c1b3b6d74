package generator

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lkpd/internal/export"
	"github.com/abhisek/lkpd/internal/ui/components"
	"github.com/abhisek/lkpd/internal/worksheet"
)

// enterPreview resets the preview widgets for a freshly generated document.
func (s *Screen) enterPreview() {
	s.scroll = 0
	s.editFocus = 0
	s.copied = false
	s.notice = ""
	s.alert = ""
	s.renderedKey = ""
	s.loadEditors()
}

// loadEditors copies the document into the edit widgets.
func (s *Screen) loadEditors() {
	doc := s.ctrl.Document()
	if doc == nil {
		return
	}
	s.editor.SetValue(doc.Body)
	lh := doc.Letterhead
	for i, v := range [4]string{lh.Line1, lh.Line2, lh.Line3, lh.Address} {
		s.letterhead[i].SetValue(v)
	}
}

// commitEdits writes the edit widgets back into the document.
func (s *Screen) commitEdits() {
	doc := s.ctrl.Document()
	if doc == nil {
		return
	}
	doc.SetBody(s.editor.Value())
	doc.SetLetterhead(worksheet.Letterhead{
		Line1:   s.letterhead[0].Value(),
		Line2:   s.letterhead[1].Value(),
		Line3:   s.letterhead[2].Value(),
		Address: s.letterhead[3].Value(),
	})
}

func (s *Screen) editing() bool {
	doc := s.ctrl.Document()
	return doc != nil && doc.Editing()
}

// toolbar returns the preview buttons for the current mode.
func (s *Screen) toolbar() []components.Button {
	edit := components.NewButton("Edit Teks", "e", s.toggleEdit)
	reset := components.NewButton("Buat Baru", "n", s.reset)
	cp := components.NewButton("Salin", "c", s.copyText)
	word := components.NewButton("Word", "w", s.exportWord)

	if s.editing() {
		edit.Label, edit.Key = "Selesai Edit", "esc"
		reset.Key = "ctrl+n"
		cp.Key = "ctrl+y"
		word.Key = "ctrl+w"
		word.Disabled = true
		word.Tooltip = "Selesaikan edit untuk mengunduh"
	}
	if s.copied {
		cp.Label = "Tersalin"
	}
	return []components.Button{edit, reset, cp, word}
}

func (s *Screen) handlePreviewKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	for _, b := range s.toolbar() {
		if b.Key == key {
			return b.Press()
		}
	}

	if s.editing() {
		switch key {
		case "tab":
			return s.focusEditor((s.editFocus + 1) % 5)
		case "shift+tab":
			return s.focusEditor((s.editFocus + 4) % 5)
		}
		return s.forward(msg)
	}

	switch key {
	case "up", "k":
		s.scrollBy(-1)
	case "down", "j":
		s.scrollBy(1)
	case "pgup", "b":
		s.scrollBy(-10)
	case "pgdown", "space", "f":
		s.scrollBy(10)
	case "home", "g":
		s.scroll = 0
	case "end", "G":
		s.scroll = s.maxScroll
	}
	return nil
}

func (s *Screen) scrollBy(n int) {
	s.scroll += n
	if s.scroll > s.maxScroll {
		s.scroll = s.maxScroll
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

// focusEditor focuses the body editor (0) or a letterhead line (1-4).
func (s *Screen) focusEditor(i int) tea.Cmd {
	s.editFocus = i
	s.editor.Blur()
	for j := range s.letterhead {
		s.letterhead[j].Blur()
	}
	if i == 0 {
		return s.editor.Focus()
	}
	return s.letterhead[i-1].Focus()
}

func (s *Screen) toggleEdit() tea.Cmd {
	doc := s.ctrl.Document()
	if doc == nil {
		return nil
	}
	if doc.Editing() {
		s.commitEdits()
	}
	doc.ToggleEdit()
	s.notice = ""
	if doc.Editing() {
		s.loadEditors()
		return s.focusEditor(0)
	}
	s.editor.Blur()
	for j := range s.letterhead {
		s.letterhead[j].Blur()
	}
	return nil
}

// reset discards the document and returns to the form, keeping the
// request values for the next round.
func (s *Screen) reset() tea.Cmd {
	s.ctrl.Reset()
	s.copied = false
	s.notice = ""
	s.rendered, s.renderedKey = "", ""
	return s.focusItem(s.focus)
}

func (s *Screen) copyText() tea.Cmd {
	doc := s.ctrl.Document()
	if doc == nil {
		return nil
	}
	if err := export.Copy(s.opts.Clipboard, doc); err != nil {
		s.log.Warn("clipboard write failed", "error", err)
		s.notice = msgCopyFailed
		return nil
	}
	s.copied = true
	s.copySeq++
	seq := s.copySeq
	return tea.Tick(copiedDuration, func(time.Time) tea.Msg {
		return copiedResetMsg{seq: seq}
	})
}

func (s *Screen) exportWord() tea.Cmd {
	doc := s.ctrl.Document()
	if doc == nil || doc.Editing() {
		return nil
	}
	snapshot := *doc
	dir := s.opts.OutDir
	return func() tea.Msg {
		path, err := export.Save(dir, &snapshot)
		return exportDoneMsg{Path: path, Err: err}
	}
}
