package generator

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lkpd/internal/form"
	"github.com/abhisek/lkpd/internal/ui/components"
	"github.com/abhisek/lkpd/internal/worksheet"
)

type itemKind int

const (
	kindSelect itemKind = iota
	kindInput
	kindTraits
	kindSubmit
)

// item is one focusable row of the form.
type item struct {
	id    form.Field
	label string
	kind  itemKind
	sel   components.Select
	input components.TextInput
}

// section groups consecutive items under a numbered card.
type section struct {
	title      string
	start, end int
}

var sections = []section{
	{title: "Identitas & Target", start: 0, end: 5},
	{title: "Materi & Tujuan", start: 5, end: 8},
	{title: "Karakter & Asesmen", start: 8, end: 12},
}

type labeled interface {
	~string
	Label() string
}

func optionsOf[T labeled](values []T) []components.Option {
	out := make([]components.Option, 0, len(values))
	for _, v := range values {
		out = append(out, components.Option{Value: string(v), Label: v.Label()})
	}
	return out
}

func selectItem(f *form.Form, id form.Field, label string, opts []components.Option) *item {
	return &item{id: id, label: label, kind: kindSelect, sel: components.NewSelect(opts, f.Get(id))}
}

func inputItem(f *form.Form, id form.Field, label, placeholder string, numeric bool, limit int) *item {
	in := components.NewTextInput(placeholder, numeric, limit)
	in.SetValue(f.Get(id))
	return &item{id: id, label: label, kind: kindInput, input: in}
}

func buildItems(f *form.Form) []*item {
	return []*item{
		selectItem(f, form.FieldLevel, "Jenjang Sekolah", optionsOf(worksheet.Levels)),
		selectItem(f, form.FieldPhase, "Fase", optionsOf(worksheet.Phases)),
		inputItem(f, form.FieldSubject, "Mata Pelajaran", "Contoh: Matematika, IPAS, Bahasa Indonesia", false, 0),
		inputItem(f, form.FieldGrade, "Kelas", "Contoh: 4, 7, 10", false, 0),
		selectItem(f, form.FieldTerm, "Semester", optionsOf(worksheet.Terms)),

		inputItem(f, form.FieldTopic, "Materi Pokok", "Contoh: Pecahan Senilai, Ekosistem, Teks Prosedur", false, 0),
		inputItem(f, form.FieldObjective, "Tujuan Pembelajaran",
			"Contoh: Peserta didik mampu menjelaskan pengertian pecahan senilai dengan benar.", false, 0),
		inputItem(f, form.FieldTimeAllocation, "Alokasi Waktu", "Contoh: 2 JP (2 x 35 Menit)", false, 0),

		selectItem(f, form.FieldModel, "Model Pembelajaran", optionsOf(worksheet.Models)),
		{label: "Profil Pelajar Pancasila", kind: kindTraits},
		selectItem(f, form.FieldQuestionType, "Jenis Soal", optionsOf(worksheet.QuestionTypes)),
		inputItem(f, form.FieldQuestionCount, "Jumlah Soal", "1-20", true, 2),

		{kind: kindSubmit},
	}
}

func traitChecklist(f *form.Form) components.Checklist {
	selected := f.Values().Traits
	items := make([]components.CheckItem, 0, len(worksheet.AllTraits))
	for _, t := range worksheet.AllTraits {
		items = append(items, components.CheckItem{Key: string(t), Label: t.Label(), Checked: selected[t]})
	}
	return components.NewChecklist(items)
}

// focusItem moves focus to item i, blurring everything else.
func (s *Screen) focusItem(i int) tea.Cmd {
	if i < 0 {
		i = 0
	}
	if i >= len(s.items) {
		i = len(s.items) - 1
	}
	s.focus = i

	var cmd tea.Cmd
	for j, it := range s.items {
		on := j == i
		switch it.kind {
		case kindSelect:
			it.sel.Focused = on
		case kindInput:
			if on {
				cmd = it.input.Focus()
			} else {
				it.input.Blur()
			}
		case kindTraits:
			s.traits.Focused = on
		case kindSubmit:
			s.submit.Focused = on
		}
	}
	return cmd
}

// showErrors copies the form's validation annotations onto the inputs and
// returns the index of the first failing item, or -1.
func (s *Screen) showErrors() int {
	first := -1
	for i, it := range s.items {
		if it.kind != kindInput {
			continue
		}
		msg := s.form.ErrorFor(it.id)
		it.input.SetError(msg)
		if msg != "" && first < 0 {
			first = i
		}
	}
	return first
}
