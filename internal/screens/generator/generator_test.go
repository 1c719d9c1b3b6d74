package generator

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lkpd/internal/controller"
	"github.com/abhisek/lkpd/internal/export"
	"github.com/abhisek/lkpd/internal/form"
	"github.com/abhisek/lkpd/internal/llm"
	"github.com/abhisek/lkpd/internal/worksheet"
)

const sampleBody = "# LKPD Matematika\n\n## 1. Identitas LKPD\n\nKelas 4\n"

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

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func newTestScreen(t *testing.T, p llm.Provider) (*Screen, *fakeClipboard) {
	t.Helper()
	cb := &fakeClipboard{}
	s := New(Options{Provider: p, Clipboard: cb, OutDir: t.TempDir()})
	return s, cb
}

func itemFor(s *Screen, f form.Field) *item {
	for _, it := range s.items {
		if it.id == f && it.kind != kindTraits && it.kind != kindSubmit {
			return it
		}
	}
	return nil
}

// fill sets the required text fields the way typing would.
func fill(s *Screen) {
	values := map[form.Field]string{
		form.FieldSubject:   "Matematika",
		form.FieldGrade:     "4",
		form.FieldTopic:     "Pecahan Senilai",
		form.FieldObjective: "Peserta didik mampu menjelaskan pecahan senilai.",
	}
	for f, v := range values {
		it := itemFor(s, f)
		it.input.SetValue(v)
		_ = s.form.Set(f, v)
	}
}

func send(s *Screen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

// generate submits the form and delivers the provider result.
func generate(t *testing.T, s *Screen) {
	t.Helper()
	cmd := send(s, ctrlKey('s'))
	require.NotNil(t, cmd)
	require.Equal(t, controller.StateGenerating, s.ctrl.State())
	send(s, s.generateCmd()())
}

func TestTitleAndInitialState(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewDemoProvider())
	assert.Equal(t, "Generator", s.Title())
	assert.Equal(t, controller.StateInput, s.Controller().State())
	assert.Equal(t, 2, s.focus, "focus starts on the subject field")
	assert.NotEmpty(t, s.View(100, 40))
}

func TestSubmitBlockedByValidation(t *testing.T) {
	p := llm.NewDemoProvider()
	s, _ := newTestScreen(t, p)

	send(s, ctrlKey('s'))

	assert.Equal(t, controller.StateInput, s.ctrl.State())
	assert.Equal(t, "Mata pelajaran wajib diisi", itemFor(s, form.FieldSubject).input.Error())
	assert.Equal(t, "Materi wajib diisi", itemFor(s, form.FieldTopic).input.Error())
	assert.Empty(t, itemFor(s, form.FieldTimeAllocation).input.Error())
	assert.Equal(t, 2, s.focus, "focus moves to the first failing field")
	assert.Equal(t, 0, p.CallCount())
}

func TestTypingUpdatesForm(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewDemoProvider())

	for _, r := range "IPAS" {
		send(s, keyPress(r))
	}
	assert.Equal(t, "IPAS", s.form.Get(form.FieldSubject))

	send(s, specialKey(tea.KeyTab))
	assert.Equal(t, 3, s.focus)
	send(s, keyPress('5'))
	assert.Equal(t, "5", s.form.Get(form.FieldGrade))

	send(s, specialKey(tea.KeyTab), specialKey(tea.KeyRight))
	assert.Equal(t, string(worksheet.TermEven), s.form.Get(form.FieldTerm))
}

func TestPasteFillsFormField(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewDemoProvider())
	for f, v := range map[form.Field]string{
		form.FieldSubject: "Matematika",
		form.FieldGrade:   "4",
		form.FieldTopic:   "Pecahan Senilai",
	} {
		itemFor(s, f).input.SetValue(v)
		_ = s.form.Set(f, v)
	}

	objective := "Peserta didik mampu " + strings.Repeat("menjelaskan pecahan senilai, ", 30)
	s.focusItem(6)
	send(s, tea.PasteMsg{Content: objective})

	assert.Equal(t, objective, s.form.Get(form.FieldObjective), "pasted text is stored in full")
	assert.Equal(t, objective, itemFor(s, form.FieldObjective).input.Value())

	send(s, ctrlKey('s'))
	assert.Equal(t, controller.StateGenerating, s.ctrl.State())
	assert.Empty(t, itemFor(s, form.FieldObjective).input.Error())
}

func TestPasteIntoQuestionCountKeepsDigits(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewDemoProvider())
	s.focusItem(11)
	itemFor(s, form.FieldQuestionCount).input.SetValue("")

	send(s, tea.PasteMsg{Content: "1a2"})
	assert.Equal(t, "12", s.form.Get(form.FieldQuestionCount))
}

func TestTraitToggle(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewDemoProvider())
	s.focusItem(9)

	send(s, keyPress(' '))
	assert.True(t, s.form.Values().Traits[worksheet.TraitFaithful])

	send(s, specialKey(tea.KeyDown), keyPress('x'))
	assert.True(t, s.form.Values().Traits[worksheet.TraitDiverse])

	send(s, specialKey(tea.KeyUp), specialKey(tea.KeyUp))
	assert.Equal(t, 8, s.focus, "up on the first trait leaves the checklist")
}

func TestGenerateHTTPErrorShowsBanner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom"}}`)
	}))
	defer srv.Close()

	p := llm.NewGeminiProvider(llm.GeminiConfig{BaseURL: srv.URL}, 5*time.Second,
		llm.WithKeyFunc(llm.StaticKey("test-key")))
	s, _ := newTestScreen(t, p)
	fill(s)

	generate(t, s)

	assert.Equal(t, controller.StateInput, s.ctrl.State())
	assert.Contains(t, s.ctrl.Banner(), "500")
	assert.Nil(t, s.ctrl.Document())
	assert.Contains(t, s.View(120, 60), "500")
	assert.Equal(t, "Matematika", s.form.Get(form.FieldSubject), "form keeps its values")
}

func TestGenerateSuccessEntersPreview(t *testing.T) {
	p := llm.NewMockProvider(llm.MockResponse{Content: sampleBody})
	s, _ := newTestScreen(t, p)
	fill(s)

	generate(t, s)

	require.Equal(t, controller.StatePreview, s.ctrl.State())
	doc := s.ctrl.Document()
	require.NotNil(t, doc)
	assert.Equal(t, sampleBody, doc.Body)
	assert.Equal(t, worksheet.DefaultLetterhead(), doc.Letterhead)
	assert.Empty(t, s.ctrl.Banner())
	require.Len(t, p.Calls, 1)
	assert.Contains(t, p.Calls[0].Prompt(), "Pecahan Senilai")

	view := s.View(120, 40)
	assert.Contains(t, view, "Edit Teks")
	assert.Contains(t, view, "Word")
}

func TestDuplicateSubmitIgnoredWhileGenerating(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewDemoProvider())
	fill(s)

	send(s, ctrlKey('s'))
	id := s.pendingID
	require.NotEmpty(t, id)

	cmd := send(s, ctrlKey('s'))
	assert.Nil(t, cmd)
	assert.Equal(t, id, s.pendingID)
	assert.Equal(t, controller.StateGenerating, s.ctrl.State())
}

func TestStaleResultIgnored(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewDemoProvider())
	fill(s)
	send(s, ctrlKey('s'))

	send(s, generatedMsg{ID: "other", Text: sampleBody})
	assert.Equal(t, controller.StateGenerating, s.ctrl.State())
}

func TestLoadingTicks(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewDemoProvider())
	fill(s)
	send(s, ctrlKey('s'))
	id := s.pendingID

	cmd := send(s, captionTickMsg{ID: id})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, s.caption)
	assert.Contains(t, s.View(100, 30), loadingSteps[1])

	send(s, progressTickMsg{ID: id, At: s.started.Add(4 * time.Second)})
	assert.InDelta(t, 0.5, s.progress, 0.001)
	send(s, progressTickMsg{ID: id, At: s.started.Add(time.Minute)})
	assert.Equal(t, 1.0, s.progress)

	assert.Nil(t, send(s, captionTickMsg{ID: "stale"}))
}

func TestEditModeCommitsEveryKeystroke(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: sampleBody}))
	fill(s)
	generate(t, s)
	doc := s.ctrl.Document()

	send(s, keyPress('e'))
	require.True(t, doc.Editing())

	send(s, keyPress('Z'))
	assert.Contains(t, doc.Body, "Z")

	send(s, specialKey(tea.KeyTab))
	assert.Equal(t, 1, s.editFocus)
	s.letterhead[0].SetValue("")
	send(s, keyPress('K'))
	assert.Equal(t, "K", doc.Letterhead.Line1)

	send(s, specialKey(tea.KeyEscape))
	assert.False(t, doc.Editing())
	assert.Contains(t, doc.Body, "Z")
	assert.Equal(t, "K", doc.Letterhead.Line1)
}

func TestPasteInEditorSurvivesEditToggle(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: sampleBody}))
	fill(s)
	generate(t, s)
	doc := s.ctrl.Document()

	send(s, keyPress('e'))
	require.True(t, doc.Editing())
	send(s, tea.PasteMsg{Content: "Soal tambahan"})
	assert.Contains(t, doc.Body, "Soal tambahan")

	send(s, specialKey(tea.KeyEscape))
	require.False(t, doc.Editing())
	send(s, keyPress('e'))
	assert.Contains(t, s.editor.Value(), "Soal tambahan")
	send(s, specialKey(tea.KeyEscape))

	msg := send(s, keyPress('w'))()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	data, err := os.ReadFile(done.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Soal tambahan")
}

func TestLeavingEditModeCommitsWidgets(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: sampleBody}))
	fill(s)
	generate(t, s)
	doc := s.ctrl.Document()

	send(s, keyPress('e'))
	s.editor.SetValue("# Diubah langsung")
	send(s, specialKey(tea.KeyEscape))

	assert.False(t, doc.Editing())
	assert.Equal(t, "# Diubah langsung", doc.Body)
}

func TestMissingProviderShowsConfigBanner(t *testing.T) {
	tests := []struct {
		name     string
		setupErr error
	}{
		{"no setup error", nil},
		{"unknown provider", errors.New(`unknown LLM provider: "x"`)},
		{"missing key", &llm.ErrConfig{Provider: "anthropic", Msg: "API key is required"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{Clipboard: &fakeClipboard{}, OutDir: t.TempDir(), ProviderErr: tt.setupErr})
			fill(s)
			generate(t, s)

			assert.Equal(t, controller.StateInput, s.ctrl.State())
			assert.Equal(t, llm.MsgMissingKey, s.ctrl.Banner())
			assert.NotEqual(t, llm.MsgUnreachable, s.ctrl.Banner())
		})
	}
}

func TestExportDisabledWhileEditing(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: sampleBody}))
	fill(s)
	generate(t, s)

	send(s, keyPress('e'))
	assert.Nil(t, send(s, ctrlKey('w')))

	buttons := s.toolbar()
	word := buttons[len(buttons)-1]
	assert.True(t, word.Disabled)
	assert.Equal(t, "Selesaikan edit untuk mengunduh", word.Tooltip)
	assert.Contains(t, s.View(120, 40), "Selesaikan edit untuk mengunduh")
}

func TestExportWritesWordFile(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: sampleBody}))
	fill(s)
	generate(t, s)

	cmd := send(s, keyPress('w'))
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, filepath.Join(s.opts.OutDir, export.Filename), done.Path)

	send(s, msg)
	assert.Contains(t, s.notice, done.Path)

	data, err := os.ReadFile(done.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\ufeff"))
}

func TestExportFailureShowsAlert(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cb := &fakeClipboard{}
	s := New(Options{
		Provider:  llm.NewMockProvider(llm.MockResponse{Content: sampleBody}),
		Clipboard: cb,
		OutDir:    filepath.Join(blocker, "out"),
	})
	fill(s)
	generate(t, s)

	send(s, send(s, keyPress('w'))())
	assert.Equal(t, msgExportFailed, s.alert)
	assert.Contains(t, s.View(100, 30), msgExportFailed)
	assert.Equal(t, controller.StatePreview, s.ctrl.State())
	assert.Equal(t, sampleBody, s.ctrl.Document().Body)

	assert.NotContains(t, msgExportFailed, "PDF")

	send(s, keyPress('q'))
	assert.Empty(t, s.alert)
}

func TestCopyAcknowledgement(t *testing.T) {
	s, cb := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: sampleBody}))
	fill(s)
	generate(t, s)

	cmd := send(s, keyPress('c'))
	require.NotNil(t, cmd)
	assert.Equal(t, sampleBody, cb.text)
	assert.True(t, s.copied)
	assert.Equal(t, "Tersalin", s.toolbar()[2].Label)

	send(s, copiedResetMsg{seq: s.copySeq})
	assert.False(t, s.copied)
}

func TestCopyFailureKeepsPreview(t *testing.T) {
	s, cb := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: sampleBody}))
	cb.err = errors.New("no clipboard")
	fill(s)
	generate(t, s)

	assert.Nil(t, send(s, keyPress('c')))
	assert.False(t, s.copied)
	assert.Equal(t, msgCopyFailed, s.notice)
}

func TestResetReturnsToForm(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: sampleBody}))
	fill(s)
	generate(t, s)

	send(s, keyPress('e'))
	s.letterhead[0].SetValue("")
	send(s, specialKey(tea.KeyTab), keyPress('K'))
	send(s, specialKey(tea.KeyEscape))

	send(s, keyPress('n'))
	assert.Equal(t, controller.StateInput, s.ctrl.State())
	assert.Nil(t, s.ctrl.Document())
	assert.Empty(t, s.ctrl.Banner())
	assert.Equal(t, "Matematika", s.form.Get(form.FieldSubject))
}

func TestPreviewScroll(t *testing.T) {
	body := "# LKPD\n\n" + strings.Repeat("Baris latihan.\n\n", 60)
	s, _ := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: body}))
	fill(s)
	generate(t, s)

	_ = s.View(100, 30)
	require.Greater(t, s.maxScroll, 0)

	send(s, specialKey(tea.KeyDown))
	assert.Equal(t, 1, s.scroll)
	send(s, keyPress('G'))
	assert.Equal(t, s.maxScroll, s.scroll)
	send(s, keyPress('g'))
	assert.Equal(t, 0, s.scroll)
	send(s, specialKey(tea.KeyUp))
	assert.Equal(t, 0, s.scroll)
}

func TestKeyHintsFollowState(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Content: sampleBody}))
	assert.Equal(t, "Ctrl+S", s.KeyHints()[3].Key)

	fill(s)
	generate(t, s)
	assert.Equal(t, "Gulir", s.KeyHints()[0].Description)

	send(s, keyPress('e'))
	assert.Equal(t, "Selesai Edit", s.KeyHints()[1].Description)
}
