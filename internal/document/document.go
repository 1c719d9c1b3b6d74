// Package document holds a generated worksheet and renders it for the
// terminal and for export.
package document

import "github.com/abhisek/lkpd/internal/worksheet"

// Mode is the preview mode of a document.
type Mode int

const (
	ModeDisplay Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "display"
}

// Document is the generated worksheet plus its letterhead. Body is the
// markdown as returned by the model, or as the user last edited it.
type Document struct {
	Body       string
	Letterhead worksheet.Letterhead
	mode       Mode
}

// New creates a document in display mode with the placeholder letterhead.
func New(body string) *Document {
	return &Document{
		Body:       body,
		Letterhead: worksheet.DefaultLetterhead(),
	}
}

// ToggleEdit flips between display and edit mode. Content is untouched.
func (d *Document) ToggleEdit() {
	if d.mode == ModeEdit {
		d.mode = ModeDisplay
	} else {
		d.mode = ModeEdit
	}
}

// Editing reports whether the document is in edit mode.
func (d *Document) Editing() bool { return d.mode == ModeEdit }

// Mode returns the current mode.
func (d *Document) Mode() Mode { return d.mode }

// SetBody replaces the worksheet body.
func (d *Document) SetBody(s string) { d.Body = s }

// SetLetterhead replaces the letterhead.
func (d *Document) SetLetterhead(l worksheet.Letterhead) { d.Letterhead = l }

// HTML renders the body with the presentational classes used on export.
func (d *Document) HTML() (string, error) {
	return RenderHTML(d.Body)
}
