package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lkpd/internal/form"
	"github.com/abhisek/lkpd/internal/worksheet"
)

// requestFlags maps flag names to form fields. Enum flags take the stored
// value (e.g. "SMP", "D", "2", "HOTS").
var requestFlags = []struct {
	name  string
	field form.Field
	usage string
}{
	{"level", form.FieldLevel, "School level: SD, SMP, SMA, SMK"},
	{"phase", form.FieldPhase, "Kurikulum Merdeka phase: A-F"},
	{"subject", form.FieldSubject, "Subject (mata pelajaran)"},
	{"grade", form.FieldGrade, "Grade (kelas)"},
	{"term", form.FieldTerm, "Semester: 1 or 2"},
	{"topic", form.FieldTopic, "Topic (materi pokok)"},
	{"objective", form.FieldObjective, "Learning objective (tujuan pembelajaran)"},
	{"time", form.FieldTimeAllocation, "Time allocation (alokasi waktu)"},
	{"model", form.FieldModel, "Pedagogical model, e.g. \"Discovery Learning\""},
	{"question-type", form.FieldQuestionType, "Question type, e.g. \"Pilihan Ganda\", HOTS"},
	{"questions", form.FieldQuestionCount, "Number of practice questions (1-20)"},
}

func addRequestFlags(cmd *cobra.Command) {
	def := form.New()
	for _, f := range requestFlags {
		cmd.Flags().String(f.name, def.Get(f.field), f.usage)
	}
	ids := make([]string, 0, len(worksheet.AllTraits))
	for _, t := range worksheet.AllTraits {
		ids = append(ids, string(t))
	}
	cmd.Flags().StringSlice("trait", nil, "Profil Pelajar Pancasila trait, repeatable: "+strings.Join(ids, ", "))
}

// requestFromFlags fills a form from the command flags and submits it, so
// the CLI validates exactly like the TUI.
func requestFromFlags(cmd *cobra.Command) (worksheet.Request, error) {
	f := form.New()
	for _, rf := range requestFlags {
		v, _ := cmd.Flags().GetString(rf.name)
		if err := f.Set(rf.field, v); err != nil {
			return worksheet.Request{}, fmt.Errorf("--%s: %w", rf.name, err)
		}
	}

	traits, _ := cmd.Flags().GetStringSlice("trait")
	for _, id := range traits {
		t, ok := lookupTrait(id)
		if !ok {
			return worksheet.Request{}, fmt.Errorf("--trait: unknown trait %q", id)
		}
		f.SetTrait(t, true)
	}

	req, errs := f.Submit()
	if len(errs) > 0 {
		return worksheet.Request{}, fmt.Errorf("invalid request: %w", errs)
	}
	return req, nil
}

func lookupTrait(id string) (worksheet.Trait, bool) {
	for _, t := range worksheet.AllTraits {
		if strings.EqualFold(string(t), id) {
			return t, true
		}
	}
	return "", false
}
