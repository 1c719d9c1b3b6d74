package worksheet

// Question count bounds, inclusive.
const (
	MinQuestions = 1
	MaxQuestions = 20
)

// DefaultTimeAllocation is the prefilled time allocation.
const DefaultTimeAllocation = "2 JP (2 x 35 menit)"

// Trait identifies one Profil Pelajar Pancasila dimension. The value is the
// compound identifier used when the trait is written into a prompt.
type Trait string

const (
	TraitFaithful      Trait = "beriman"
	TraitDiverse       Trait = "berkebinekaan"
	TraitCollaborative Trait = "gotongRoyong"
	TraitIndependent   Trait = "mandiri"
	TraitCritical      Trait = "bernalarKritis"
	TraitCreative      Trait = "kreatif"
)

// AllTraits lists the six traits in display order.
var AllTraits = []Trait{
	TraitFaithful, TraitDiverse, TraitCollaborative,
	TraitIndependent, TraitCritical, TraitCreative,
}

var traitLabels = map[Trait]string{
	TraitFaithful:      "Beriman & Bertakwa",
	TraitDiverse:       "Berkebinekaan Global",
	TraitCollaborative: "Gotong Royong",
	TraitIndependent:   "Mandiri",
	TraitCritical:      "Bernalar Kritis",
	TraitCreative:      "Kreatif",
}

// Label returns the checkbox label for t.
func (t Trait) Label() string { return labelOr(traitLabels, t) }

// Traits is the set of selected traits. Each flag is independent.
type Traits map[Trait]bool

// Selected returns the selected traits in AllTraits order.
func (ts Traits) Selected() []Trait {
	var out []Trait
	for _, t := range AllTraits {
		if ts[t] {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns an independent copy.
func (ts Traits) Clone() Traits {
	out := make(Traits, len(ts))
	for k, v := range ts {
		out[k] = v
	}
	return out
}

// Request is a validated worksheet request. A Request handed out by the form
// is a snapshot; callers must not share its Traits map with a live form.
type Request struct {
	Level          Level        `json:"level"`
	Phase          Phase        `json:"phase"`
	Subject        string       `json:"subject"`
	Grade          string       `json:"grade"`
	Term           Term         `json:"term"`
	Topic          string       `json:"topic"`
	Objective      string       `json:"objective"`
	TimeAllocation string       `json:"time_allocation"`
	Model          Model        `json:"model"`
	Traits         Traits       `json:"traits"`
	QuestionType   QuestionType `json:"question_type"`
	QuestionCount  int          `json:"question_count"`
}

// DefaultRequest returns the values the form starts with.
func DefaultRequest() Request {
	return Request{
		Level:          LevelSD,
		Phase:          PhaseA,
		Term:           TermOdd,
		TimeAllocation: DefaultTimeAllocation,
		Model:          ModelPBL,
		Traits:         Traits{},
		QuestionType:   QuestionMultipleChoice,
		QuestionCount:  5,
	}
}

// ClampQuestionCount forces n into [MinQuestions, MaxQuestions].
func ClampQuestionCount(n int) int {
	if n < MinQuestions {
		return MinQuestions
	}
	if n > MaxQuestions {
		return MaxQuestions
	}
	return n
}

// Letterhead is the institution block printed above the worksheet. It is
// free text and never validated.
type Letterhead struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	Line3   string `json:"line3"`
	Address string `json:"address"`
}

// DefaultLetterhead returns the placeholder letterhead.
func DefaultLetterhead() Letterhead {
	return Letterhead{
		Line1:   "PEMERINTAH KABUPATEN/KOTA ...",
		Line2:   "DINAS PENDIDIKAN",
		Line3:   "NAMA SEKOLAH ANDA",
		Address: "Alamat Lengkap Sekolah...",
	}
}
