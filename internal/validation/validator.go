package validation

import (
	"fmt"
	"regexp"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
)

// MaxQuestionsPerRequest caps how many questions one call may ask for.
const MaxQuestionsPerRequest = 20

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest validates a defaulted generation request body.
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateQuestionsRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Subject) == "" {
		errors = append(errors, domain.NewFieldError("subject", "subject is required"))
	} else if !domain.Subject(req.Subject).IsValid() {
		errors = append(errors, domain.NewFieldError("subject", fmt.Sprintf("invalid subject: %s", req.Subject)))
	}

	if !domain.Difficulty(req.Difficulty).IsValid() {
		errors = append(errors, domain.NewFieldError("difficulty", fmt.Sprintf("invalid difficulty: %s", req.Difficulty)))
	}

	if !domain.QuestionType(req.QuestionType).IsValid() {
		errors = append(errors, domain.NewFieldError("question_type", fmt.Sprintf("invalid question type: %s", req.QuestionType)))
	}

	if !domain.State(req.State).IsValid() {
		errors = append(errors, domain.NewFieldError("state", fmt.Sprintf("invalid state: %s", req.State)))
	}

	if req.NumQuestions < 1 || req.NumQuestions > MaxQuestionsPerRequest {
		errors = append(errors, domain.NewFieldError("num_questions",
			fmt.Sprintf("num_questions must be between 1 and %d", MaxQuestionsPerRequest)))
	}

	return errors
}

// ValidateQuestionID validates a question id path parameter.
func (v *Validator) ValidateQuestionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewFieldError("id", "id is required"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewFieldError("id", fmt.Sprintf("invalid question id: %s", id)))
	}

	return errors
}

// ValidateListFilter validates the optional list query parameters.
func (v *Validator) ValidateListFilter(subject, difficulty, questionType string, limit int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if subject != "" && !domain.Subject(subject).IsValid() {
		errors = append(errors, domain.NewFieldError("subject", fmt.Sprintf("invalid subject: %s", subject)))
	}
	if difficulty != "" && !domain.Difficulty(difficulty).IsValid() {
		errors = append(errors, domain.NewFieldError("difficulty", fmt.Sprintf("invalid difficulty: %s", difficulty)))
	}
	if questionType != "" && !domain.QuestionType(questionType).IsValid() {
		errors = append(errors, domain.NewFieldError("question_type", fmt.Sprintf("invalid question type: %s", questionType)))
	}
	if limit < 0 || limit > 50 {
		errors = append(errors, domain.NewFieldError("limit", "limit must be between 1 and 50"))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded (Crockford's Base32)
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
