package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lkpd/internal/document"
	"github.com/abhisek/lkpd/internal/worksheet"
)

const body = "# LKPD IPA\n\n## 1. Identitas LKPD\n\n| Aspek | Skor |\n|---|---|\n| Sikap | 4 |\n"

func TestWriteDocument(t *testing.T) {
	doc := document.New(body)
	doc.SetLetterhead(worksheet.Letterhead{
		Line1:   "PEMERINTAH KABUPATEN BANTUL",
		Line2:   "DINAS PENDIDIKAN",
		Line3:   "SMP NEGERI 2 <BANTUL>",
		Address: "Jl. Parangtritis & Sekitarnya",
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "\ufeff<!DOCTYPE html>"), "missing BOM prefix")
	assert.Contains(t, out, `<meta charset="UTF-8">`)
	assert.Contains(t, out, "<h3>PEMERINTAH KABUPATEN BANTUL</h3>")
	assert.Contains(t, out, "<h1>SMP NEGERI 2 &lt;BANTUL&gt;</h1>")
	assert.Contains(t, out, "<p>Jl. Parangtritis &amp; Sekitarnya</p>")
	assert.Contains(t, out, `<h2 class="lkpd-section">1. Identitas LKPD</h2>`)
	assert.Contains(t, out, `<table class="lkpd-table">`)
	assert.Contains(t, out, "font-family: 'Times New Roman', serif")
	assert.Less(t, strings.Index(out, `class="header"`), strings.Index(out, `class="lkpd-title"`))
}

func TestWriteRefusedWhileEditing(t *testing.T) {
	doc := document.New(body)
	doc.ToggleEdit()

	var buf bytes.Buffer
	err := Write(&buf, doc)
	require.ErrorIs(t, err, ErrEditing)
	assert.Zero(t, buf.Len())

	_, err = Save(t.TempDir(), doc)
	require.ErrorIs(t, err, ErrEditing)
}

func TestWriteUsesEditedContent(t *testing.T) {
	doc := document.New(body)
	doc.ToggleEdit()
	doc.SetBody("# LKPD Revisi\n")
	doc.ToggleEdit()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	assert.Contains(t, buf.String(), "LKPD Revisi")
	assert.NotContains(t, buf.String(), "Identitas LKPD")
}

func TestSaveSuffixesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	doc := document.New(body)

	first, err := Save(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Filename), first)

	second, err := Save(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "LKPD-Kurikulum-Merdeka (1).doc"), second)

	third, err := Save(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "LKPD-Kurikulum-Merdeka (2).doc"), third)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "file should start with a UTF-8 BOM")
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "unduhan", "lkpd")
	path, err := Save(dir, document.New(body))
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "LKPD-Kurikulum-Merdeka.doc", Filename)
	assert.Equal(t, "application/msword", ContentType)
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestCopyWritesRawBody(t *testing.T) {
	doc := document.New(body)
	doc.ToggleEdit()
	doc.SetBody(body + "\nTambahan guru")

	cb := &fakeClipboard{}
	require.NoError(t, Copy(cb, doc))
	assert.Equal(t, body+"\nTambahan guru", cb.text)
}

func TestCopyPropagatesError(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no clipboard")}
	assert.Error(t, Copy(cb, document.New(body)))
}
