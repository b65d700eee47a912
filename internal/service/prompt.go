package service

import (
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

// SystemPrompt frames the assistant for every generation call.
const SystemPrompt = "You are an expert educational content creator. You must follow the exact format specified."

// One worked example per question type anchors the model's output format.
// The field layout here is load-bearing: the parser recognizes exactly
// these labels.
const (
	multipleChoiceExample = `TOPIC: Electric Current
SUBTOPIC: SI Units
QUESTION: What is the fundamental unit of electric current?
A) Volt
B) Watt
C) Ampere
D) Ohm
ANSWER: C
EXPLANATION: The ampere is the SI base unit for electric current.
RATING: 1100

---

`

	trueFalseExample = `TOPIC: Energy Conservation
SUBTOPIC: Physics Laws
QUESTION: Energy can be created and destroyed according to physics laws.
ANSWER: False
EXPLANATION: According to the law of conservation of energy, energy cannot be created or destroyed.
RATING: 1250

---

`

	fillInBlanksExample = `TOPIC: Speed of Light
SUBTOPIC: Physical Constants
QUESTION: The speed of light in vacuum is _____ meters per second.
BLANKS: 3×10⁸
EXPLANATION: The speed of light in vacuum is exactly 299,792,458 m/s.
RATING: 1350

---

`

	matchFollowingExample = `TOPIC: Chemical Elements
SUBTOPIC: Periodic Table
QUESTION: Match the following chemical elements with their symbols:
PAIRS: Hydrogen=H, Oxygen=O, Carbon=C, Nitrogen=N
EXPLANATION: These are the symbols for common chemical elements.
RATING: 1200

---

`
)

// BuildPrompt produces the user-role instruction for a generation request.
// Pure string construction: deterministic for identical input.
func BuildPrompt(req domain.GenerationRequest) string {
	var b strings.Builder

	topicText := ""
	if req.Topic != "" {
		topicText = " about " + req.Topic
	}

	fmt.Fprintf(&b, "Create %d %s level %s questions for %s%s.\n\n",
		req.NumQuestions,
		req.Difficulty,
		strings.ReplaceAll(string(req.QuestionType), "_", " "),
		req.Subject.HumanName(),
		topicText,
	)
	b.WriteString("CRITICAL: Use this EXACT format for each question:\n\n")

	switch req.QuestionType {
	case domain.TypeMultipleChoice:
		b.WriteString(multipleChoiceExample)
	case domain.TypeTrueFalse:
		b.WriteString(trueFalseExample)
	case domain.TypeFillInBlanks:
		b.WriteString(fillInBlanksExample)
	default:
		b.WriteString(matchFollowingExample)
	}

	fmt.Fprintf(&b, `
Generate exactly %d questions using this EXACT format.
- Use TOPIC, SUBTOPIC, QUESTION, %s, EXPLANATION, RATING
- Separate each question with "---"
- No extra text or formatting
- Make questions educational and accurate
`, req.NumQuestions, answerFieldLabel(req.QuestionType))

	return b.String()
}

func answerFieldLabel(t domain.QuestionType) string {
	switch t {
	case domain.TypeFillInBlanks:
		return "BLANKS"
	case domain.TypeMatchFollowing:
		return "PAIRS"
	default:
		return "ANSWER"
	}
}
