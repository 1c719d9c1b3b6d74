package worksheet

// Level is the school level (jenjang) the worksheet targets.
type Level string

const (
	LevelSD  Level = "SD"
	LevelSMP Level = "SMP"
	LevelSMA Level = "SMA"
	LevelSMK Level = "SMK"
)

// Levels lists all levels in picker order.
var Levels = []Level{LevelSD, LevelSMP, LevelSMA, LevelSMK}

var levelLabels = map[Level]string{
	LevelSD:  "SD / MI",
	LevelSMP: "SMP / MTs",
	LevelSMA: "SMA / MA",
	LevelSMK: "SMK",
}

// Label returns the display label.
func (l Level) Label() string { return labelOr(levelLabels, l) }

// Valid reports whether l is a known level.
func (l Level) Valid() bool { _, ok := levelLabels[l]; return ok }

// Phase is the Kurikulum Merdeka phase (fase).
type Phase string

const (
	PhaseA Phase = "A"
	PhaseB Phase = "B"
	PhaseC Phase = "C"
	PhaseD Phase = "D"
	PhaseE Phase = "E"
	PhaseF Phase = "F"
)

// Phases lists all phases in picker order.
var Phases = []Phase{PhaseA, PhaseB, PhaseC, PhaseD, PhaseE, PhaseF}

// Phase and level are independent; the grade range is only a hint.
var phaseLabels = map[Phase]string{
	PhaseA: "Fase A (Kelas 1-2 SD)",
	PhaseB: "Fase B (Kelas 3-4 SD)",
	PhaseC: "Fase C (Kelas 5-6 SD)",
	PhaseD: "Fase D (Kelas 7-9 SMP)",
	PhaseE: "Fase E (Kelas 10 SMA/SMK)",
	PhaseF: "Fase F (Kelas 11-12 SMA/SMK)",
}

func (p Phase) Label() string { return labelOr(phaseLabels, p) }

func (p Phase) Valid() bool { _, ok := phaseLabels[p]; return ok }

// Term is the semester.
type Term string

const (
	TermOdd  Term = "1"
	TermEven Term = "2"
)

var Terms = []Term{TermOdd, TermEven}

var termLabels = map[Term]string{
	TermOdd:  "Ganjil (1)",
	TermEven: "Genap (2)",
}

func (t Term) Label() string { return labelOr(termLabels, t) }

func (t Term) Valid() bool { _, ok := termLabels[t]; return ok }

// Model is the pedagogical model (model pembelajaran).
type Model string

const (
	ModelPBL         Model = "Problem Based Learning (PBL)"
	ModelPjBL        Model = "Project Based Learning (PjBL)"
	ModelDiscovery   Model = "Discovery Learning"
	ModelInquiry     Model = "Inquiry Learning"
	ModelCooperative Model = "Cooperative Learning"
	ModelOther       Model = "Lainnya"
)

var Models = []Model{ModelPBL, ModelPjBL, ModelDiscovery, ModelInquiry, ModelCooperative, ModelOther}

// Models are shown as-is.
func (m Model) Label() string { return string(m) }

func (m Model) Valid() bool {
	for _, v := range Models {
		if v == m {
			return true
		}
	}
	return false
}

// QuestionType is the practice question style (jenis soal).
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "Pilihan Ganda"
	QuestionEssay          QuestionType = "Uraian"
	QuestionHOTS           QuestionType = "HOTS"
	QuestionCaseStudy      QuestionType = "Studi Kasus"
	QuestionPracticum      QuestionType = "Praktikum"
)

var QuestionTypes = []QuestionType{
	QuestionMultipleChoice, QuestionEssay, QuestionHOTS, QuestionCaseStudy, QuestionPracticum,
}

var questionTypeLabels = map[QuestionType]string{
	QuestionMultipleChoice: "Pilihan Ganda",
	QuestionEssay:          "Uraian / Esai",
	QuestionHOTS:           "HOTS (Higher Order Thinking Skills)",
	QuestionCaseStudy:      "Studi Kasus",
	QuestionPracticum:      "Praktikum / Eksperimen",
}

func (q QuestionType) Label() string { return labelOr(questionTypeLabels, q) }

func (q QuestionType) Valid() bool { _, ok := questionTypeLabels[q]; return ok }

func labelOr[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}
