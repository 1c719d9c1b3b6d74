package document

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lkpd/internal/worksheet"
)

const sample = `# LKPD Matematika

## 1. Identitas LKPD

Nama: ________

## 2. Tujuan Pembelajaran

1. Menjelaskan konsep pecahan.
2. Menyelesaikan soal cerita.

- Baca petunjuk
- Kerjakan berkelompok

| Aspek | Skor |
|-------|------|
| Ketepatan | 4 |

> Ingat: kerja sama itu penting.

---

### Kunci Jawaban
`

func TestNewDocumentDefaults(t *testing.T) {
	d := New(sample)
	assert.Equal(t, sample, d.Body)
	assert.Equal(t, worksheet.DefaultLetterhead(), d.Letterhead)
	assert.False(t, d.Editing())
	assert.Equal(t, ModeDisplay, d.Mode())
}

func TestToggleEditPreservesContent(t *testing.T) {
	d := New(sample)
	lh := worksheet.Letterhead{Line1: "PEMKAB SLEMAN", Line2: "DINAS PENDIDIKAN", Line3: "SMP N 1", Address: "Jl. Magelang"}
	d.SetLetterhead(lh)

	for i := 0; i < 4; i++ {
		d.ToggleEdit()
		require.Equal(t, i%2 == 0, d.Editing())
		require.Equal(t, sample, d.Body)
		require.Equal(t, lh, d.Letterhead)
	}
}

func TestEditsSurviveModeSwitch(t *testing.T) {
	d := New(sample)
	d.ToggleEdit()
	d.SetBody(sample + "\nCatatan guru.")
	d.ToggleEdit()

	assert.Equal(t, sample+"\nCatatan guru.", d.Body)
	html, err := d.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "Catatan guru.")
}

func TestRenderHTMLClasses(t *testing.T) {
	html, err := RenderHTML(sample)
	require.NoError(t, err)

	for _, want := range []string{
		`<h1 class="lkpd-title">LKPD Matematika</h1>`,
		`<h2 class="lkpd-section">1. Identitas LKPD</h2>`,
		`<h3 class="lkpd-subsection">Kunci Jawaban</h3>`,
		`<p class="lkpd-paragraph">Nama: ________</p>`,
		`<ol class="lkpd-list-ordered">`,
		`<ul class="lkpd-list">`,
		`<li class="lkpd-list-item">Baca petunjuk</li>`,
		`<table class="lkpd-table">`,
		`<thead class="lkpd-table-head">`,
		`<th class="lkpd-th">Aspek</th>`,
		`<td class="lkpd-td">Ketepatan</td>`,
		`<blockquote class="lkpd-quote">`,
		`<hr class="lkpd-rule">`,
	} {
		assert.Contains(t, html, want)
	}
}

func TestRenderHTMLOmitsRawHTML(t *testing.T) {
	html, err := RenderHTML("Teks <script>alert(1)</script> biasa")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Teks")
}

func TestRenderHTMLEmpty(t *testing.T) {
	html, err := RenderHTML("")
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestRenderLetterhead(t *testing.T) {
	lh := worksheet.Letterhead{Line1: "pemerintah kota", Line2: "dinas pendidikan", Line3: "sd negeri 1", Address: "Jl. Merdeka 17"}
	out := ansi.Strip(RenderLetterhead(lh, 0))

	assert.Contains(t, out, "PEMERINTAH KOTA")
	assert.Contains(t, out, "DINAS PENDIDIKAN")
	assert.Contains(t, out, "SD NEGERI 1")
	assert.Contains(t, out, "Jl. Merdeka 17")
	assert.Contains(t, out, strings.Repeat("═", PageWidth))

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), PageWidth)
	}
}

func TestRenderTerminal(t *testing.T) {
	d := New(sample)
	plain := ansi.Strip(RenderTerminal(d, 200))
	assert.Contains(t, plain, "NAMA SEKOLAH ANDA")
	assert.Contains(t, plain, "Identitas LKPD")
	assert.Contains(t, plain, "Ketepatan")
	assert.Less(t, strings.Index(plain, "NAMA SEKOLAH ANDA"), strings.Index(plain, "Identitas LKPD"))
}

func TestRenderMarkdownStructure(t *testing.T) {
	plain := ansi.Strip(RenderMarkdown(sample, 0))

	assert.Contains(t, plain, "LKPD MATEMATIKA", "the title is set in capitals")
	assert.Contains(t, plain, "1. Menjelaskan konsep pecahan.")
	assert.Contains(t, plain, "2. Menyelesaikan soal cerita.")
	assert.Contains(t, plain, "• Baca petunjuk")
	assert.Contains(t, plain, "│ Ingat: kerja sama itu penting.")
	assert.Contains(t, plain, "Aspek")
	assert.Contains(t, plain, "Ketepatan")
	assert.Contains(t, plain, strings.Repeat("─", PageWidth))
	assert.NotContains(t, plain, "**")
	assert.NotContains(t, plain, "| Aspek |")
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	src := "## Petunjuk\n\n" + strings.Repeat("Bacalah teks berikut dengan saksama. ", 10) +
		"\n\n- " + strings.Repeat("Diskusikan jawabanmu bersama teman. ", 5)
	out := RenderMarkdown(src, 40)
	for _, line := range strings.Split(ansi.Strip(out), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40, "line %q", line)
	}
	assert.Contains(t, ansi.Strip(out), "• Diskusikan")
}

func TestRenderMarkdownInline(t *testing.T) {
	out := ansi.Strip(RenderMarkdown("Tulis **jawaban** di _kolom_ `A1`.<br>\n\n- [x] Selesai\n- [ ] Belum", 0))
	plain := strings.Join(strings.Fields(out), " ")
	assert.Contains(t, plain, "Tulis jawaban di kolom A1.")
	assert.NotContains(t, plain, "<br>")
	assert.Contains(t, plain, "☑ Selesai")
	assert.Contains(t, plain, "☐ Belum")
}

func TestPageWidth(t *testing.T) {
	assert.Equal(t, PageWidth, pageWidth(0))
	assert.Equal(t, PageWidth, pageWidth(500))
	assert.Equal(t, 40, pageWidth(40))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "display", ModeDisplay.String())
	assert.Equal(t, "edit", ModeEdit.String())
}
