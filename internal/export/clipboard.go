package export

import (
	"github.com/atotto/clipboard"

	"github.com/abhisek/lkpd/internal/document"
)

// Clipboard receives copied worksheet text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Copy puts the document body, as currently edited, on the clipboard.
func Copy(c Clipboard, doc *document.Document) error {
	return c.WriteAll(doc.Body)
}
