// Package form holds the in-progress worksheet request while the user
// fills it in. Validation runs once, on Submit.
package form

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/lkpd/internal/worksheet"
)

// Field names a form field.
type Field string

const (
	FieldLevel          Field = "level"
	FieldPhase          Field = "phase"
	FieldSubject        Field = "subject"
	FieldGrade          Field = "grade"
	FieldTerm           Field = "term"
	FieldTopic          Field = "topic"
	FieldObjective      Field = "objective"
	FieldTimeAllocation Field = "time_allocation"
	FieldModel          Field = "model"
	FieldQuestionType   Field = "question_type"
	FieldQuestionCount  Field = "question_count"
)

var requiredMessages = map[Field]string{
	FieldSubject:   "Mata pelajaran wajib diisi",
	FieldGrade:     "Kelas wajib diisi",
	FieldTopic:     "Materi wajib diisi",
	FieldObjective: "Tujuan pembelajaran wajib diisi",
}

// Errors maps each failing field to a human-readable message.
type Errors map[Field]string

// Fields returns the failing fields, sorted.
func (e Errors) Fields() []Field {
	out := make([]Field, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(parts, "; ")
}

// Form is the mutable request being edited.
type Form struct {
	values     worksheet.Request
	countInput string
	errs       Errors
}

// New returns a form populated with worksheet.DefaultRequest.
func New() *Form {
	def := worksheet.DefaultRequest()
	return &Form{
		values:     def,
		countInput: strconv.Itoa(def.QuestionCount),
	}
}

// Values returns a copy of the current values. QuestionCount reflects the
// last parseable count input.
func (f *Form) Values() worksheet.Request {
	v := f.values
	v.Traits = f.values.Traits.Clone()
	return v
}

// Get returns the raw text of a field as it should appear in an input.
func (f *Form) Get(field Field) string {
	switch field {
	case FieldLevel:
		return string(f.values.Level)
	case FieldPhase:
		return string(f.values.Phase)
	case FieldSubject:
		return f.values.Subject
	case FieldGrade:
		return f.values.Grade
	case FieldTerm:
		return string(f.values.Term)
	case FieldTopic:
		return f.values.Topic
	case FieldObjective:
		return f.values.Objective
	case FieldTimeAllocation:
		return f.values.TimeAllocation
	case FieldModel:
		return string(f.values.Model)
	case FieldQuestionType:
		return string(f.values.QuestionType)
	case FieldQuestionCount:
		return f.countInput
	}
	return ""
}

// Set updates one field. Enum fields reject unknown values; free text is
// stored verbatim.
func (f *Form) Set(field Field, value string) error {
	switch field {
	case FieldLevel:
		l := worksheet.Level(value)
		if !l.Valid() {
			return fmt.Errorf("unknown level %q", value)
		}
		f.values.Level = l
	case FieldPhase:
		p := worksheet.Phase(value)
		if !p.Valid() {
			return fmt.Errorf("unknown phase %q", value)
		}
		f.values.Phase = p
	case FieldTerm:
		t := worksheet.Term(value)
		if !t.Valid() {
			return fmt.Errorf("unknown term %q", value)
		}
		f.values.Term = t
	case FieldModel:
		m := worksheet.Model(value)
		if !m.Valid() {
			return fmt.Errorf("unknown model %q", value)
		}
		f.values.Model = m
	case FieldQuestionType:
		q := worksheet.QuestionType(value)
		if !q.Valid() {
			return fmt.Errorf("unknown question type %q", value)
		}
		f.values.QuestionType = q
	case FieldSubject:
		f.values.Subject = value
	case FieldGrade:
		f.values.Grade = value
	case FieldTopic:
		f.values.Topic = value
	case FieldObjective:
		f.values.Objective = value
	case FieldTimeAllocation:
		f.values.TimeAllocation = value
	case FieldQuestionCount:
		f.countInput = value
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			f.values.QuestionCount = n
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// ToggleTrait flips one character-trait flag.
func (f *Form) ToggleTrait(t worksheet.Trait) {
	if f.values.Traits == nil {
		f.values.Traits = worksheet.Traits{}
	}
	f.values.Traits[t] = !f.values.Traits[t]
}

// SetTrait sets one character-trait flag.
func (f *Form) SetTrait(t worksheet.Trait, on bool) {
	if f.values.Traits == nil {
		f.values.Traits = worksheet.Traits{}
	}
	f.values.Traits[t] = on
}

// Errors returns the annotations from the last Submit.
func (f *Form) Errors() Errors {
	return f.errs
}

// ErrorFor returns the annotation for one field, or "".
func (f *Form) ErrorFor(field Field) string {
	return f.errs[field]
}

// Submit validates the form. On failure it annotates only the failing
// fields and returns them; on success it returns an immutable snapshot.
func (f *Form) Submit() (worksheet.Request, Errors) {
	errs := Errors{}

	for field, msg := range requiredMessages {
		if strings.TrimSpace(f.Get(field)) == "" {
			errs[field] = msg
		}
	}

	n, err := strconv.Atoi(strings.TrimSpace(f.countInput))
	switch {
	case err != nil:
		errs[FieldQuestionCount] = "Jumlah soal harus berupa angka"
	case n < worksheet.MinQuestions || n > worksheet.MaxQuestions:
		errs[FieldQuestionCount] = fmt.Sprintf("Jumlah soal harus antara %d dan %d",
			worksheet.MinQuestions, worksheet.MaxQuestions)
	}

	if len(errs) > 0 {
		f.errs = errs
		return worksheet.Request{}, errs
	}

	f.errs = nil
	req := f.Values()
	req.QuestionCount = worksheet.ClampQuestionCount(n)
	return req, nil
}
