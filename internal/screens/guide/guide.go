// Package guide is the usage guide shown from the "Panduan" tab.
package guide

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lkpd/internal/document"
	"github.com/abhisek/lkpd/internal/screen"
	"github.com/abhisek/lkpd/internal/ui/layout"
	"github.com/abhisek/lkpd/internal/ui/theme"
)

// Step is one numbered instruction.
type Step struct {
	Title string
	Body  string
}

// Steps is the walkthrough in order.
var Steps = []Step{
	{
		Title: "Isi Identitas & Target",
		Body:  "Lengkapi data jenjang, fase, mata pelajaran, kelas, dan semester. Pastikan fase sesuai dengan jenjang (misal: Fase A untuk kelas 1-2 SD).",
	},
	{
		Title: "Tentukan Materi & Tujuan",
		Body:  "Masukkan topik materi yang spesifik dan tujuan pembelajaran yang ingin dicapai. Semakin detail tujuan, semakin akurat hasil LKPD.",
	},
	{
		Title: "Pilih Model & Karakter",
		Body:  "Pilih model pembelajaran (seperti PBL atau PjBL) dan dimensi Profil Pelajar Pancasila yang ingin dikuatkan dalam aktivitas.",
	},
	{
		Title: "Generate & Edit",
		Body:  "Tekan Ctrl+S atau tombol \"Generate LKPD Sekarang\" dan tunggu sebentar. Setelah hasil muncul, tekan E untuk mengedit teks dan kop surat secara langsung.",
	},
	{
		Title: "Unduh",
		Body:  "Tekan W untuk menyimpan LKPD sebagai dokumen Word (.doc), atau C untuk menyalin teksnya ke aplikasi pengolah kata lain.",
	},
}

// Tips are shown after the steps.
var Tips = []string{
	"Gunakan kata kerja operasional pada Tujuan Pembelajaran.",
	"Spesifikkan materi (misal: \"Pecahan Senilai dengan Benda Konkret\" alih-alih hanya \"Pecahan\").",
	"Pilih jenis soal yang variatif untuk mengukur pemahaman siswa secara menyeluruh.",
}

// Markdown returns the guide as markdown.
func Markdown() string {
	var b strings.Builder
	b.WriteString("# Panduan Penggunaan\n\n")
	b.WriteString("Selamat datang di Generator LKPD Otomatis. Berikut adalah cara menggunakan aplikasi ini:\n\n")
	for i, s := range Steps {
		b.WriteString("## ")
		b.WriteString(string(rune('1' + i)))
		b.WriteString(". ")
		b.WriteString(s.Title)
		b.WriteString("\n\n")
		b.WriteString(s.Body)
		b.WriteString("\n\n")
	}
	b.WriteString("> **Tips untuk Hasil Terbaik:**\n>\n")
	for _, t := range Tips {
		b.WriteString("> - ")
		b.WriteString(t)
		b.WriteString("\n")
	}
	return b.String()
}

// GuideScreen implements screen.Screen for the usage guide.
type GuideScreen struct {
	scroll    int
	maxScroll int
}

var _ screen.Screen = (*GuideScreen)(nil)
var _ screen.KeyHintProvider = (*GuideScreen)(nil)

// New creates the guide screen.
func New() *GuideScreen {
	return &GuideScreen{}
}

func (g *GuideScreen) Init() tea.Cmd {
	return nil
}

func (g *GuideScreen) Title() string {
	return "Panduan"
}

func (g *GuideScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Gulir"},
		{Key: "Esc", Description: "Kembali"},
		{Key: "Ctrl+C", Description: "Keluar"},
	}
}

func (g *GuideScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}
	switch kmsg.String() {
	case "up", "k":
		g.scroll--
	case "down", "j":
		g.scroll++
	case "pgup":
		g.scroll -= 10
	case "pgdown", "space":
		g.scroll += 10
	case "home", "g":
		g.scroll = 0
	}
	if g.scroll > g.maxScroll {
		g.scroll = g.maxScroll
	}
	if g.scroll < 0 {
		g.scroll = 0
	}
	return g, nil
}

func (g *GuideScreen) View(width, height int) string {
	lines := strings.Split(document.RenderMarkdown(Markdown(), width-4), "\n")

	g.maxScroll = len(lines) - height
	if g.maxScroll < 0 {
		g.maxScroll = 0
	}
	if g.scroll > g.maxScroll {
		g.scroll = g.maxScroll
	}
	end := g.scroll + height
	if end > len(lines) {
		end = len(lines)
	}

	return lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Render(strings.Join(lines[g.scroll:end], "\n"))
}
