package generator

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/controller"
	"github.com/abhisek/lkpd/internal/document"
	"github.com/abhisek/lkpd/internal/ui/components"
	"github.com/abhisek/lkpd/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.alert != "" {
		return components.CenterFrame(
			components.Modal(theme.FieldError.Render(s.alert)+"\n\n"+theme.Hint.Render("Tekan tombol apa saja"), 50),
			width, height)
	}
	switch s.ctrl.State() {
	case controller.StateGenerating:
		return s.renderLoading(width, height)
	case controller.StatePreview:
		if s.editing() {
			return s.renderEditor(width, height)
		}
		return s.renderPreview(width, height)
	}
	return s.renderForm(width, height)
}

// renderForm draws the hero text, the error banner and the three form
// sections, scrolled so the focused item stays visible.
func (s *Screen) renderForm(width, height int) string {
	cw := components.ContentWidth(width)

	var head []string
	head = append(head,
		theme.Title.Width(cw).Render("Buat LKPD Kurikulum Merdeka dalam Hitungan Detik"),
		theme.Subtitle.Width(cw).Render("Generator otomatis berbasis AI untuk membantu guru menyusun Lembar Kerja Peserta Didik yang sesuai standar, kreatif, dan bermakna."),
		"",
	)
	if banner := s.ctrl.Banner(); banner != "" {
		head = append(head, theme.Banner.Width(cw).Render("⚠ "+banner), "")
	}

	lines := strings.Split(strings.Join(head, "\n"), "\n")
	focusLine := 0

	for n, sec := range sections {
		var body []string
		for i := sec.start; i < sec.end; i++ {
			if i == s.focus {
				// card border, heading and blank line
				focusLine = len(lines) + 3 + len(body)
			}
			body = append(body, strings.Split(s.renderItem(s.items[i], cw-4), "\n")...)
			body = append(body, "")
		}
		card := components.SectionCard(n+1, sec.title, strings.TrimRight(strings.Join(body, "\n"), "\n"), cw)
		lines = append(lines, strings.Split(card, "\n")...)
	}

	if s.focus == len(s.items)-1 {
		focusLine = len(lines) + 1
	}
	lines = append(lines, "", s.submit.View())

	offset := 0
	if len(lines) > height {
		offset = focusLine - height/3
		if offset > len(lines)-height {
			offset = len(lines) - height
		}
		if offset < 0 {
			offset = 0
		}
		lines = lines[offset : offset+height]
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func (s *Screen) renderItem(it *item, w int) string {
	switch it.kind {
	case kindSelect:
		return theme.Label.Render(it.label) + "\n" + it.sel.View()
	case kindInput:
		it.input.SetWidth(w - 4)
		return theme.Label.Render(it.label) + "\n" + it.input.View()
	case kindTraits:
		return theme.Label.Render(it.label) + " " + theme.Hint.Render("(pilih dengan spasi)") + "\n" +
			strings.TrimRight(s.traits.View(), "\n")
	}
	return ""
}

func (s *Screen) renderLoading(width, height int) string {
	title := s.spin.View() + " " + theme.Title.Render("Sedang Membuat LKPD")
	caption := theme.Subtitle.Render(loadingSteps[s.caption])
	bar := components.NewProgressBar("", s.progress, true, 40).View()
	hint := theme.Hint.Render("AI sedang bekerja, mohon tunggu...")

	box := components.Modal(lipgloss.JoinVertical(lipgloss.Center, title, "", caption, "", bar, "", hint), 56)
	return components.CenterFrame(box, width, height)
}

// renderPreview draws the toolbar and a scrolled window onto the rendered
// worksheet.
func (s *Screen) renderPreview(width, height int) string {
	doc := s.ctrl.Document()
	if doc == nil {
		return ""
	}

	toolbar := components.ToolbarView(s.toolbar()...)
	status := ""
	if s.notice != "" {
		status = theme.Hint.Render(s.notice)
	}

	pageH := height - lipgloss.Height(toolbar) - 3
	if status != "" {
		pageH--
	}
	if pageH < 1 {
		pageH = 1
	}

	page := s.renderDocument(doc, width-4)
	lines := strings.Split(page, "\n")
	s.maxScroll = len(lines) - pageH
	if s.maxScroll < 0 {
		s.maxScroll = 0
	}
	if s.scroll > s.maxScroll {
		s.scroll = s.maxScroll
	}
	end := s.scroll + pageH
	if end > len(lines) {
		end = len(lines)
	}

	paper := theme.Paper.Render(strings.Join(lines[s.scroll:end], "\n"))
	pos := theme.Hint.Render(fmt.Sprintf("baris %d-%d dari %d", s.scroll+1, end, len(lines)))

	parts := []string{toolbar}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, paper, pos)
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// renderDocument renders doc for display, reusing the last result while
// the content and width are unchanged.
func (s *Screen) renderDocument(doc *document.Document, width int) string {
	lh := doc.Letterhead
	key := fmt.Sprintf("%d\x00%s\x00%s\x00%s\x00%s\x00%s", width, lh.Line1, lh.Line2, lh.Line3, lh.Address, doc.Body)
	if key == s.renderedKey {
		return s.rendered
	}
	s.rendered, s.renderedKey = document.RenderTerminal(doc, width), key
	return s.rendered
}

func (s *Screen) renderEditor(width, height int) string {
	cw := components.ContentWidth(width)
	toolbar := components.ToolbarView(s.toolbar()...)

	var lh []string
	lh = append(lh, theme.SectionHeading.Render("Edit Kop Surat"))
	for i := range s.letterhead {
		s.letterhead[i].SetWidth(cw - 6)
		lh = append(lh, s.letterhead[i].View())
	}
	header := strings.Join(lh, "\n")

	editorH := height - lipgloss.Height(toolbar) - lipgloss.Height(header) - 4
	if editorH < 3 {
		editorH = 3
	}
	s.editor.SetWidth(cw - 2)
	s.editor.SetHeight(editorH)

	body := theme.Paper.Width(cw).Render(s.editor.View())
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Left, toolbar, "", header, body))
}
