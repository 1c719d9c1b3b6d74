package document

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// CSS classes attached to rendered elements. The export stylesheet keys
// off these names.
const (
	ClassTitle      = "lkpd-title"
	ClassSection    = "lkpd-section"
	ClassSubsection = "lkpd-subsection"
	ClassParagraph  = "lkpd-paragraph"
	ClassList       = "lkpd-list"
	ClassOrdered    = "lkpd-list-ordered"
	ClassListItem   = "lkpd-list-item"
	ClassTable      = "lkpd-table"
	ClassTableHead  = "lkpd-table-head"
	ClassHeaderCell = "lkpd-th"
	ClassCell       = "lkpd-td"
	ClassQuote      = "lkpd-quote"
	ClassRule       = "lkpd-rule"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(classTransformer{}, 100)),
	),
)

// RenderHTML converts worksheet markdown to an HTML fragment. Raw HTML in
// the source is omitted.
func RenderHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// classTransformer tags block nodes with their lkpd-* class.
type classTransformer struct{}

func (classTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if class := classFor(n); class != "" {
			n.SetAttributeString("class", []byte(class))
		}
		return ast.WalkContinue, nil
	})
}

func classFor(n ast.Node) string {
	switch n.Kind() {
	case ast.KindHeading:
		switch n.(*ast.Heading).Level {
		case 1:
			return ClassTitle
		case 2:
			return ClassSection
		default:
			return ClassSubsection
		}
	case ast.KindParagraph:
		return ClassParagraph
	case ast.KindList:
		if n.(*ast.List).IsOrdered() {
			return ClassOrdered
		}
		return ClassList
	case ast.KindListItem:
		return ClassListItem
	case ast.KindBlockquote:
		return ClassQuote
	case ast.KindThematicBreak:
		return ClassRule
	case east.KindTable:
		return ClassTable
	case east.KindTableHeader:
		return ClassTableHead
	case east.KindTableCell:
		if n.Parent() != nil && n.Parent().Kind() == east.KindTableHeader {
			return ClassHeaderCell
		}
		return ClassCell
	}
	return ""
}
