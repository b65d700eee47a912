package dto

import "quizforge/internal/domain"

// GenerateQuestionsRequest is the inbound body for POST /questions/generate.
type GenerateQuestionsRequest struct {
	Subject      string `json:"subject"`
	Difficulty   string `json:"difficulty"`
	QuestionType string `json:"question_type"`
	NumQuestions int    `json:"num_questions"`
	Topic        string `json:"topic"`
	SubTopic     string `json:"sub_topic"`
	State        string `json:"state"`
}

// ApplyDefaults fills the optional fields the same way the API contract
// documents them: medium difficulty, multiple choice, five questions, fun.
func (r *GenerateQuestionsRequest) ApplyDefaults() {
	if r.Difficulty == "" {
		r.Difficulty = string(domain.DifficultyMedium)
	}
	if r.QuestionType == "" {
		r.QuestionType = string(domain.TypeMultipleChoice)
	}
	if r.NumQuestions == 0 {
		r.NumQuestions = 5
	}
	if r.State == "" {
		r.State = string(domain.StateFun)
	}
}

// ToDomain converts a validated request into the immutable domain request.
func (r *GenerateQuestionsRequest) ToDomain() domain.GenerationRequest {
	return domain.GenerationRequest{
		Subject:      domain.Subject(r.Subject),
		Difficulty:   domain.Difficulty(r.Difficulty),
		QuestionType: domain.QuestionType(r.QuestionType),
		NumQuestions: r.NumQuestions,
		Topic:        r.Topic,
		SubTopic:     r.SubTopic,
		State:        domain.State(r.State),
	}
}

// QuestionItem is the caller-facing shape of one question.
type QuestionItem struct {
	ID            string            `json:"id"`
	Topic         string            `json:"topic"`
	SubTopic      string            `json:"sub_topic"`
	Question      string            `json:"question"`
	Explanation   string            `json:"explanation"`
	EloRating     int               `json:"elo_rating"`
	EloRange      [2]int            `json:"elo_range"`
	State         string            `json:"state"`
	Options       []string          `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Blanks        []string          `json:"blanks"`
	MatchPairs    map[string]string `json:"match_pairs"`
}

// GenerationStats summarizes what happened to the generated batch.
type GenerationStats struct {
	TotalReturned     int `json:"total_returned"`
	FromDatabase      int `json:"from_database"`
	NewlyGenerated    int `json:"newly_generated"`
	DuplicatesSkipped int `json:"duplicates_skipped"`
}

// GenerateQuestionsResponse is the success body for POST /questions/generate.
type GenerateQuestionsResponse struct {
	Subject      string          `json:"subject"`
	Difficulty   string          `json:"difficulty"`
	QuestionType string          `json:"question_type"`
	Questions    []QuestionItem  `json:"questions"`
	Source       string          `json:"source"`
	Stats        GenerationStats `json:"stats"`
}

// QuestionListResponse wraps GET /questions results.
type QuestionListResponse struct {
	Questions []QuestionItem `json:"questions"`
	Count     int            `json:"count"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// MetaResponse lists the values of one request enum.
type MetaResponse struct {
	Values []string `json:"values"`
}

// FromDomainQuestion converts a normalized question into the caller-facing
// item. Payload variants other than the question's own stay null.
func FromDomainQuestion(q *domain.Question) QuestionItem {
	item := QuestionItem{
		ID:            q.ID,
		Topic:         q.Topic,
		SubTopic:      q.SubTopic,
		Question:      q.Text,
		Explanation:   q.Explanation,
		EloRating:     q.Rating.Value,
		EloRange:      [2]int{q.Rating.Min, q.Rating.Max},
		State:         string(q.State),
		CorrectAnswer: q.Payload.CorrectAnswer(),
	}

	switch p := q.Payload.(type) {
	case *domain.MultipleChoicePayload:
		item.Options = p.Options()
	case *domain.FillBlanksPayload:
		item.Blanks = p.Answers
	case *domain.MatchPairsPayload:
		item.MatchPairs = p.Pairs
	}

	return item
}
