package document

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/abhisek/lkpd/internal/worksheet"
)

// PageWidth is the column width of the rendered page.
const PageWidth = 78

var (
	inkTitle   = lipgloss.Color("#A5B4FC")
	inkSection = lipgloss.Color("#38BDF8")
	inkDim     = lipgloss.Color("#94A3B8")
	inkCode    = lipgloss.Color("#FBBF24")

	styleTitle      = lipgloss.NewStyle().Foreground(inkTitle).Bold(true).Align(lipgloss.Center)
	styleSection    = lipgloss.NewStyle().Foreground(inkSection).Bold(true)
	styleSubsection = lipgloss.NewStyle().Bold(true).Italic(true)
	styleRule       = lipgloss.NewStyle().Foreground(inkDim)
	styleBold       = lipgloss.NewStyle().Bold(true)
	styleItalic     = lipgloss.NewStyle().Italic(true)
	styleStrike     = lipgloss.NewStyle().Strikethrough(true)
	styleCode       = lipgloss.NewStyle().Foreground(inkCode)
	styleLink       = lipgloss.NewStyle().Underline(true)
	styleMarker     = lipgloss.NewStyle().Foreground(inkSection)
	styleQuote      = lipgloss.NewStyle().Foreground(inkDim)
)

// pageWidth clamps the page to the available columns.
func pageWidth(avail int) int {
	if avail <= 0 || avail > PageWidth {
		return PageWidth
	}
	return avail
}

// RenderLetterhead draws the centered letterhead with a double rule.
func RenderLetterhead(l worksheet.Letterhead, width int) string {
	w := pageWidth(width)
	center := lipgloss.NewStyle().Width(w).Align(lipgloss.Center)
	bold := center.Bold(true)

	lines := []string{
		bold.Render(strings.ToUpper(l.Line1)),
		bold.Render(strings.ToUpper(l.Line2)),
		bold.Render(strings.ToUpper(l.Line3)),
		center.Render(l.Address),
		strings.Repeat("═", w),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderMarkdown renders markdown for a terminal of the given width. It
// parses with the same GFM dialect as the export, so the screen and the
// Word file agree on structure.
func RenderMarkdown(src string, width int) string {
	source := []byte(src)
	root := markdown.Parser().Parse(text.NewReader(source))
	r := termWriter{src: source}
	return strings.TrimRight(strings.Join(r.blocks(root, pageWidth(width)), "\n\n"), "\n")
}

// RenderTerminal renders the letterhead and the markdown body for display
// in a terminal of the given width.
func RenderTerminal(doc *Document, width int) string {
	return RenderLetterhead(doc.Letterhead, width) + "\n" + RenderMarkdown(doc.Body, width)
}

type termWriter struct {
	src []byte
}

func (r termWriter) blocks(parent ast.Node, w int) []string {
	var out []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := r.block(n, w); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func (r termWriter) block(n ast.Node, w int) string {
	switch n := n.(type) {
	case *ast.Heading:
		title := r.inline(n)
		switch n.Level {
		case 1:
			return styleTitle.Width(w).Render(ansi.Wrap(strings.ToUpper(title), w, ""))
		case 2:
			title = ansi.Wrap(title, w, "")
			return styleSection.Render(title) + "\n" +
				styleRule.Render(strings.Repeat("─", min(lipgloss.Width(title), w)))
		default:
			return styleSubsection.Render(ansi.Wrap(title, w, ""))
		}
	case *ast.List:
		return r.list(n, w)
	case *ast.Blockquote:
		inner := strings.Join(r.blocks(n, w-2), "\n\n")
		return prefixLines(inner, styleQuote.Render("│ "), styleQuote.Render("│ "))
	case *ast.ThematicBreak:
		return styleRule.Render(strings.Repeat("─", w))
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var b strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(r.src))
		}
		code := strings.TrimRight(b.String(), "\n")
		return prefixLines(styleCode.Render(code), "    ", "    ")
	case *east.Table:
		return r.table(n, w)
	case *ast.HTMLBlock:
		return ""
	}
	return ansi.Wrap(r.inline(n), w, "")
}

// list renders bullets or numbers with hanging indents; nested blocks are
// indented under their item.
func (r termWriter) list(l *ast.List, w int) string {
	sep := "\n\n"
	if l.IsTight {
		sep = "\n"
	}
	num := l.Start
	var items []string
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d%c ", num, l.Marker)
			num++
		}
		indent := strings.Repeat(" ", lipgloss.Width(marker))
		body := strings.Join(r.blocks(item, w-len(indent)), sep)
		items = append(items, prefixLines(body, styleMarker.Render(marker), indent))
	}
	return strings.Join(items, sep)
}

func (r termWriter) table(t *east.Table, w int) string {
	var headers []string
	var rows [][]string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell))
		}
		if row.Kind() == east.KindTableHeader {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}

	head := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleRule).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})
	if out := tbl.String(); lipgloss.Width(out) <= w {
		return out
	}
	return tbl.Width(w).String()
}

func (r termWriter) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.writeInline(&b, c)
	}
	return b.String()
}

func (r termWriter) writeInline(b *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(r.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		style := styleItalic
		if n.Level >= 2 {
			style = styleBold
		}
		b.WriteString(style.Render(r.inline(n)))
	case *ast.CodeSpan:
		b.WriteString(styleCode.Render(r.inline(n)))
	case *ast.Link:
		b.WriteString(styleLink.Render(r.inline(n)))
	case *ast.AutoLink:
		b.WriteString(styleLink.Render(string(n.Label(r.src))))
	case *ast.RawHTML:
	case *east.Strikethrough:
		b.WriteString(styleStrike.Render(r.inline(n)))
	case *east.TaskCheckBox:
		if n.IsChecked {
			b.WriteString("☑ ")
		} else {
			b.WriteString("☐ ")
		}
	default:
		b.WriteString(r.inline(n))
	}
}

// prefixLines puts first before the first line of s and rest before every
// following line.
func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = first + lines[i]
		} else {
			lines[i] = rest + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
