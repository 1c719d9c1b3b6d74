// Package export writes a worksheet as a Word-compatible HTML document and
// copies its markdown to the clipboard.
package export

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/lkpd/internal/document"
	"github.com/abhisek/lkpd/internal/worksheet"
)

const (
	// Filename is the name of the downloaded worksheet.
	Filename = "LKPD-Kurikulum-Merdeka.doc"
	// ContentType is the MIME type Word associates with .doc files.
	ContentType = "application/msword"

	bom = "\ufeff"
)

// ErrEditing is returned when exporting a document that is still being
// edited.
var ErrEditing = errors.New("selesaikan edit untuk mengunduh")

var page = template.Must(template.New("lkpd").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>LKPD Kurikulum Merdeka</title>
<style>
body { font-family: 'Times New Roman', serif; font-size: 12pt; line-height: 1.5; }
.header { text-align: center; border-bottom: 3px double #000; padding-bottom: 10px; margin-bottom: 20px; }
.header h1 { font-size: 16pt; font-weight: bold; margin: 0; text-transform: uppercase; }
.header h2 { font-size: 14pt; font-weight: bold; margin: 0; text-transform: uppercase; }
.header h3 { font-size: 12pt; font-weight: bold; margin: 0; text-transform: uppercase; }
.header p { margin: 5px 0 0 0; font-size: 11pt; }
h1, .lkpd-title { font-size: 14pt; font-weight: bold; text-align: center; text-transform: uppercase; margin-top: 20px; }
h2, .lkpd-section { font-size: 12pt; font-weight: bold; background-color: #f0f0f0; padding: 5px; border-left: 5px solid #000; margin-top: 15px; }
h3, .lkpd-subsection { font-size: 12pt; font-weight: bold; margin-top: 10px; }
table, .lkpd-table { border-collapse: collapse; width: 100%; margin: 10px 0; }
td, th { border: 1px solid #000; padding: 5px; vertical-align: top; }
th, .lkpd-th { background-color: #f0f0f0; text-align: center; font-weight: bold; }
ul, ol { padding-left: 20px; }
p, .lkpd-paragraph { margin-bottom: 10px; text-align: justify; }
.lkpd-quote { border-left: 4px solid #999; padding-left: 10px; font-style: italic; }
.lkpd-rule { border: 0; border-top: 2px solid #ccc; }
</style>
</head>
<body>
<div class="header">
<h3>{{.Letterhead.Line1}}</h3>
<h2>{{.Letterhead.Line2}}</h2>
<h1>{{.Letterhead.Line3}}</h1>
<p>{{.Letterhead.Address}}</p>
</div>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Letterhead worksheet.Letterhead
	Body       template.HTML
}

// Write renders doc as a BOM-prefixed HTML document. The letterhead is
// escaped; the body is the markdown rendered by the document package.
func Write(w io.Writer, doc *document.Document) error {
	if doc.Editing() {
		return ErrEditing
	}

	body, err := doc.HTML()
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	if err := page.Execute(w, pageData{
		Letterhead: doc.Letterhead,
		Body:       template.HTML(body),
	}); err != nil {
		return fmt.Errorf("render export template: %w", err)
	}
	return nil
}

// Save writes doc into dir as Filename, or as "LKPD-Kurikulum-Merdeka (n).doc"
// when that name is taken. It returns the path written.
func Save(dir string, doc *document.Document) (string, error) {
	if doc.Editing() {
		return "", ErrEditing
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	f, path, err := createUnique(dir, Filename)
	if err != nil {
		return "", err
	}

	if err := Write(f, doc); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// createUnique opens a new file named name in dir, adding " (n)" before
// the extension until the name is free.
func createUnique(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 0; n < 1000; n++ {
		candidate := name
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create %s: %w", path, err)
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s in %s", name, dir)
}
