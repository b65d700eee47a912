package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Subject is the curriculum area a question belongs to.
type Subject string

const (
	SubjectPhysics         Subject = "physics"
	SubjectGeography       Subject = "geography"
	SubjectHistory         Subject = "history"
	SubjectMathematics     Subject = "mathematics"
	SubjectChemistry       Subject = "chemistry"
	SubjectBiology         Subject = "biology"
	SubjectLiterature      Subject = "literature"
	SubjectComputerScience Subject = "computer_science"
)

// Subjects lists every valid subject in declaration order.
func Subjects() []Subject {
	return []Subject{
		SubjectPhysics, SubjectGeography, SubjectHistory, SubjectMathematics,
		SubjectChemistry, SubjectBiology, SubjectLiterature, SubjectComputerScience,
	}
}

func (s Subject) IsValid() bool {
	for _, v := range Subjects() {
		if s == v {
			return true
		}
	}
	return false
}

// HumanName renders the subject for prompts and topic defaulting:
// underscores become spaces and each word is title-cased,
// e.g. "computer_science" -> "Computer Science".
func (s Subject) HumanName() string {
	return humanCase(string(s))
}

// Difficulty is the requested difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

func (d Difficulty) IsValid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// QuestionType selects one of the four supported question formats.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeFillInBlanks   QuestionType = "fill_in_the_blanks"
	TypeMatchFollowing QuestionType = "match_the_following"
)

func QuestionTypes() []QuestionType {
	return []QuestionType{TypeMultipleChoice, TypeTrueFalse, TypeFillInBlanks, TypeMatchFollowing}
}

func (t QuestionType) IsValid() bool {
	for _, v := range QuestionTypes() {
		if t == v {
			return true
		}
	}
	return false
}

func (t QuestionType) HumanName() string {
	return humanCase(string(t))
}

// State is the tone tag attached to generated questions.
type State string

const (
	StateFun         State = "fun"
	StateSerious     State = "serious"
	StateEducational State = "educational"
	StateCompetitive State = "competitive"
)

func States() []State {
	return []State{StateFun, StateSerious, StateEducational, StateCompetitive}
}

func (s State) IsValid() bool {
	for _, v := range States() {
		if s == v {
			return true
		}
	}
	return false
}

func humanCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// GenerationRequest describes the questions a caller wants. It is built once
// per API call and not mutated afterwards.
type GenerationRequest struct {
	Subject      Subject
	Difficulty   Difficulty
	QuestionType QuestionType
	NumQuestions int
	Topic        string
	SubTopic     string
	State        State
}

// Payload is the type-specific part of a question. Exactly one concrete
// implementation exists per QuestionType, so a validated question can never
// carry zero or multiple variants.
type Payload interface {
	// Kind reports which question type this payload belongs to.
	Kind() QuestionType
	// CorrectAnswer renders the caller-facing correct answer: the option
	// letter for multiple choice, the literal string for true/false, a
	// comma-joined list for blanks and a comma-joined k=v list for pairs.
	CorrectAnswer() string
}

// MultipleChoicePayload holds four options (without their "A) " prefixes)
// and the correct option letter.
type MultipleChoicePayload struct {
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
}

func (p *MultipleChoicePayload) Kind() QuestionType    { return TypeMultipleChoice }
func (p *MultipleChoicePayload) CorrectAnswer() string { return p.CorrectOption }

// Options returns the display form of the options, re-prefixed with their
// letters in order.
func (p *MultipleChoicePayload) Options() []string {
	return []string{
		"A) " + p.OptionA,
		"B) " + p.OptionB,
		"C) " + p.OptionC,
		"D) " + p.OptionD,
	}
}

type TrueFalsePayload struct {
	Answer string
}

func (p *TrueFalsePayload) Kind() QuestionType    { return TypeTrueFalse }
func (p *TrueFalsePayload) CorrectAnswer() string { return p.Answer }

// FillBlanksPayload holds the ordered accepted answers. Raw preserves the
// comma-joined value as the model emitted it.
type FillBlanksPayload struct {
	Answers []string
	Raw     string
}

func (p *FillBlanksPayload) Kind() QuestionType { return TypeFillInBlanks }
func (p *FillBlanksPayload) CorrectAnswer() string {
	if p.Raw != "" {
		return p.Raw
	}
	return strings.Join(p.Answers, ",")
}

// MatchPairsPayload maps left terms to right terms. Raw preserves the
// comma-joined value as the model emitted it.
type MatchPairsPayload struct {
	Pairs map[string]string
	Raw   string
}

func (p *MatchPairsPayload) Kind() QuestionType { return TypeMatchFollowing }
func (p *MatchPairsPayload) CorrectAnswer() string {
	if p.Raw != "" {
		return p.Raw
	}
	keys := make([]string, 0, len(p.Pairs))
	for k := range p.Pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+p.Pairs[k])
	}
	return strings.Join(parts, ",")
}

// Question is the normalized record produced by parsing one completion
// block. ID is empty until the record is persisted.
type Question struct {
	ID           string
	Subject      Subject
	Difficulty   Difficulty
	QuestionType QuestionType
	State        State
	Topic        string
	SubTopic     string
	Text         string
	Explanation  string
	Rating       Rating
	Payload      Payload
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the invariants a persisted question must hold.
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewValidationError("question text is required")
	}
	if !q.Subject.IsValid() {
		return NewValidationError(fmt.Sprintf("invalid subject: %s", q.Subject))
	}
	if q.Payload == nil {
		return NewValidationError("question payload is required")
	}
	if q.Payload.Kind() != q.QuestionType {
		return NewValidationError(fmt.Sprintf(
			"payload kind %s does not match question type %s", q.Payload.Kind(), q.QuestionType))
	}
	return nil
}
