package domain

import "context"

// QuestionFilter narrows ListQuestions results. Zero values mean "any".
type QuestionFilter struct {
	Subject      Subject
	Difficulty   Difficulty
	QuestionType QuestionType
	Limit        int
}

// QuestionRepository is the persistence port for normalized questions.
type QuestionRepository interface {
	// ExistsDuplicate reports whether a stored question matches the given
	// text (case-insensitive, whitespace-trimmed), subject and type.
	ExistsDuplicate(ctx context.Context, text string, subject Subject, questionType QuestionType) (bool, error)

	// Save persists a question and its type-specific payload, returning the
	// assigned identifier.
	Save(ctx context.Context, question *Question) (string, error)

	// GetByID returns the question with its payload, or nil when absent.
	GetByID(ctx context.Context, id string) (*Question, error)

	// List returns questions matching the filter.
	List(ctx context.Context, filter QuestionFilter) ([]*Question, error)

	// Delete removes a question and its payload. Returns false when the id
	// does not exist.
	Delete(ctx context.Context, id string) (bool, error)
}
