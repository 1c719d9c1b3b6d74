// Package prompt turns a worksheet request into the instruction sent to the
// language model.
package prompt

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/lkpd/internal/worksheet"
)

// Sections are the mandatory worksheet sections, in output order.
var Sections = []string{
	"Identitas LKPD",
	"Capaian Pembelajaran (CP)",
	"Tujuan Pembelajaran",
	"Petunjuk Belajar",
	"Materi Singkat",
	"Kegiatan Pembelajaran",
	"Lembar Aktivitas Siswa",
	"Latihan Soal",
	"Rubrik Penilaian",
	"Refleksi",
}

const preamble = `Bertindaklah sebagai ahli kurikulum dan pembuat perangkat ajar profesional untuk Kurikulum Merdeka di Indonesia.
Buatkan Lembar Kerja Peserta Didik (LKPD) yang lengkap, formal, dan siap cetak berdasarkan data berikut:`

// Build renders the instruction for req. It is deterministic.
func Build(req worksheet.Request) string {
	var b strings.Builder

	b.WriteString(preamble)
	b.WriteString("\n\n")

	traits := strings.Join(TraitTerms(req.Traits), ", ")
	if traits == "" {
		traits = "-"
	}

	fields := []struct{ label, value string }{
		{"Jenjang", string(req.Level)},
		{"Fase", string(req.Phase)},
		{"Mata Pelajaran", req.Subject},
		{"Kelas", req.Grade},
		{"Semester", string(req.Term)},
		{"Materi/Topik", req.Topic},
		{"Tujuan Pembelajaran", req.Objective},
		{"Alokasi Waktu", req.TimeAllocation},
		{"Model Pembelajaran", string(req.Model)},
		{"Profil Pelajar Pancasila yang dikuatkan", traits},
		{"Jenis Soal", string(req.QuestionType)},
		{"Jumlah Soal", fmt.Sprintf("%d", req.QuestionCount)},
	}
	for _, f := range fields {
		b.WriteString(fmt.Sprintf("- %s: %s\n", f.label, f.value))
	}

	b.WriteString("\nStruktur LKPD HARUS mengikuti format berikut secara berurutan:\n")
	for i, detail := range sectionDetails(req) {
		b.WriteString(fmt.Sprintf("%d. **%s** (%s).\n", i+1, Sections[i], detail))
	}

	b.WriteString("\nGunakan format Markdown yang rapi. Gunakan heading (#, ##, ###) untuk struktur.\n")
	b.WriteString(fmt.Sprintf("Bahasa harus formal, edukatif, mudah dipahami siswa %s, dan sesuai Ejaan Bahasa Indonesia (EBI).\n", req.Level))
	b.WriteString(`Jangan sertakan teks pembuka seperti "Berikut adalah LKPD..." langsung mulai dari Judul LKPD.`)
	b.WriteString("\n")

	return b.String()
}

func sectionDetails(req worksheet.Request) []string {
	return []string{
		"Nama Sekolah [kosongkan untuk diisi], Mata Pelajaran, Kelas/Semester, Materi, Alokasi Waktu",
		fmt.Sprintf("Buatkan CP yang sesuai dengan Fase %s dan materi %s", req.Phase, req.Topic),
		"Gunakan kalimat operasional yang terukur",
		"Langkah-langkah bagi siswa dalam mengerjakan LKPD",
		"Ringkasan materi yang relevan, padat, dan jelas untuk membantu siswa",
		fmt.Sprintf("Aktivitas siswa yang sesuai dengan model %s. Bagi menjadi: Pendahuluan, Inti, Penutup", req.Model),
		"Tempat siswa mengerjakan tugas utama, bisa berupa tabel, diagram, atau pertanyaan pemantik",
		practiceDetail(req),
		"Kriteria penilaian untuk aktivitas dan soal",
		"Pertanyaan refleksi untuk siswa dan guru",
	}
}

func practiceDetail(req worksheet.Request) string {
	detail := fmt.Sprintf("Buatkan %d soal dengan jenis %s", req.QuestionCount, req.QuestionType)
	switch req.QuestionType {
	case worksheet.QuestionMultipleChoice:
		detail += ". Sertakan kunci jawaban di bagian paling bawah secara terpisah"
	case worksheet.QuestionHOTS:
		detail += ". Pastikan soal menuntut analisis/evaluasi"
	}
	return detail
}

// TraitTerms returns one readable term per selected trait, in display
// order. Compound identifiers are split at each upper-case letter.
func TraitTerms(ts worksheet.Traits) []string {
	selected := ts.Selected()
	out := make([]string, 0, len(selected))
	for _, t := range selected {
		out = append(out, splitCompound(string(t)))
	}
	return out
}

func splitCompound(id string) string {
	var b strings.Builder
	for i, r := range id {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
