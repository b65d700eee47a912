package service

import (
	"strconv"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// Blocks shorter than this after trimming are separator noise, not
// questions.
const minBlockLength = 30

// blockSeparator delimits one question per segment in the completion.
const blockSeparator = "---"

// blockState accumulates the fields recognized while scanning one block.
type blockState struct {
	topic         string
	subTopic      string
	questionText  string
	explanation   string
	rating        int
	options       []string
	correctAnswer string
	blanks        []string
	blanksRaw     string
	pairs         map[string]string
	pairsRaw      string
}

type fieldSetter func(st *blockState, value string)

// commonFields maps normalized field labels (upper-cased, text before the
// first colon) to their setters. Alternate spellings map to the same
// setter.
var commonFields = map[string]fieldSetter{
	"TOPIC":     func(st *blockState, v string) { st.topic = v },
	"SUBTOPIC":  func(st *blockState, v string) { st.subTopic = v },
	"SUB-TOPIC": func(st *blockState, v string) { st.subTopic = v },
	"QUESTION":  func(st *blockState, v string) { st.questionText = v },
	"EXPLANATION": func(st *blockState, v string) {
		st.explanation = v
	},
	"RATING":     setRating,
	"ELO RATING": setRating,
}

func setRating(st *blockState, v string) {
	rating, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		// Unparsable ratings fall back to the default, not an error.
		rating = domain.DefaultRating
	}
	st.rating = rating
}

func setAnswer(st *blockState, v string) { st.correctAnswer = v }

func setBlanks(st *blockState, v string) {
	if v == "" {
		return
	}
	parts := strings.Split(v, ",")
	blanks := make([]string, 0, len(parts))
	for _, p := range parts {
		blanks = append(blanks, strings.TrimSpace(p))
	}
	st.blanks = blanks
	st.blanksRaw = v
	st.correctAnswer = v
}

func setPairs(st *blockState, v string) {
	if v == "" {
		return
	}
	pairs := make(map[string]string)
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		// Items without an "=" are silently skipped.
		key, value, found := strings.Cut(item, "=")
		if !found {
			continue
		}
		pairs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	st.pairs = pairs
	st.pairsRaw = v
	st.correctAnswer = v
}

// typedFields holds the labels recognized only when the request declares
// the matching question type.
var typedFields = map[domain.QuestionType]map[string]fieldSetter{
	domain.TypeMultipleChoice: {
		"ANSWER":         setAnswer,
		"CORRECT ANSWER": setAnswer,
	},
	domain.TypeTrueFalse: {
		"ANSWER": setAnswer,
	},
	domain.TypeFillInBlanks: {
		"BLANKS": setBlanks,
	},
	domain.TypeMatchFollowing: {
		"PAIRS":       setPairs,
		"MATCH PAIRS": setPairs,
	},
}

// ParseCompletion splits a raw LLM completion into blocks and converts each
// one into a normalized question. Malformed blocks are dropped silently;
// the caller decides whether an empty result is fatal.
func ParseCompletion(raw string, req domain.GenerationRequest) []*domain.Question {
	l := logger.Get()

	blocks := strings.Split(raw, blockSeparator)
	l.Debug("Splitting completion into blocks",
		zap.Int("candidate_blocks", len(blocks)))

	var questions []*domain.Question
	for i, block := range blocks {
		block = strings.TrimSpace(block)
		if len(block) < minBlockLength {
			continue
		}

		question := parseBlock(block, req)
		if question == nil {
			l.Warn("Dropping unparsable completion block", zap.Int("block", i+1))
			continue
		}
		questions = append(questions, question)
	}

	l.Info("Parsed completion", zap.Int("questions", len(questions)))
	return questions
}

// parseBlock scans one block's lines and validates the captured fields.
// Returns nil when the block does not form a complete question.
func parseBlock(block string, req domain.GenerationRequest) *domain.Question {
	st := blockState{rating: domain.DefaultRating}
	typed := typedFields[req.QuestionType]

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Option lines carry no colon-delimited label.
		if req.QuestionType == domain.TypeMultipleChoice && isOptionLine(line) {
			st.options = append(st.options, line)
			continue
		}

		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		label = strings.ToUpper(strings.TrimSpace(label))
		value = strings.TrimSpace(value)

		if setter, ok := commonFields[label]; ok {
			setter(&st, value)
			continue
		}
		if setter, ok := typed[label]; ok {
			setter(&st, value)
		}
	}

	if !st.valid(req.QuestionType) {
		return nil
	}

	return st.toQuestion(req)
}

func isOptionLine(line string) bool {
	return strings.HasPrefix(line, "A)") ||
		strings.HasPrefix(line, "B)") ||
		strings.HasPrefix(line, "C)") ||
		strings.HasPrefix(line, "D)")
}

// valid applies the per-type completeness rules from the generation
// contract.
func (st *blockState) valid(t domain.QuestionType) bool {
	if st.questionText == "" {
		return false
	}
	if st.correctAnswer == "" {
		return false
	}
	switch t {
	case domain.TypeMultipleChoice:
		if len(st.options) < 4 {
			return false
		}
	case domain.TypeFillInBlanks:
		if len(st.blanks) == 0 {
			return false
		}
	case domain.TypeMatchFollowing:
		if len(st.pairs) < 3 {
			return false
		}
	}
	return true
}

func (st *blockState) toQuestion(req domain.GenerationRequest) *domain.Question {
	topic := st.topic
	if topic == "" {
		topic = req.Subject.HumanName()
	}
	subTopic := st.subTopic
	if subTopic == "" {
		subTopic = req.SubTopic
	}

	var payload domain.Payload
	switch req.QuestionType {
	case domain.TypeMultipleChoice:
		payload = &domain.MultipleChoicePayload{
			OptionA:       stripOptionPrefix(st.options[0]),
			OptionB:       stripOptionPrefix(st.options[1]),
			OptionC:       stripOptionPrefix(st.options[2]),
			OptionD:       stripOptionPrefix(st.options[3]),
			CorrectOption: st.correctAnswer,
		}
	case domain.TypeTrueFalse:
		payload = &domain.TrueFalsePayload{Answer: st.correctAnswer}
	case domain.TypeFillInBlanks:
		payload = &domain.FillBlanksPayload{Answers: st.blanks, Raw: st.blanksRaw}
	case domain.TypeMatchFollowing:
		payload = &domain.MatchPairsPayload{Pairs: st.pairs, Raw: st.pairsRaw}
	}

	return &domain.Question{
		Subject:      req.Subject,
		Difficulty:   req.Difficulty,
		QuestionType: req.QuestionType,
		State:        req.State,
		Topic:        topic,
		SubTopic:     subTopic,
		Text:         st.questionText,
		Explanation:  st.explanation,
		Rating:       domain.AssignRating(st.rating),
		Payload:      payload,
	}
}

// stripOptionPrefix removes the leading "A) " style marker from an option
// line.
func stripOptionPrefix(line string) string {
	if len(line) >= 2 && line[1] == ')' {
		return strings.TrimSpace(line[2:])
	}
	return line
}
