package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

const questionColumns = `id "id",
		subject "subject",
		difficulty "difficulty",
		question_type "question_type",
		topic "topic",
		sub_topic "sub_topic",
		question_text "question_text",
		explanation "explanation",
		elo_rating "elo_rating",
		elo_min "elo_min",
		elo_max "elo_max",
		state "state",
		created_at "created_at",
		updated_at "updated_at"`

// ExistsDuplicate implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ExistsDuplicate(ctx context.Context, text string, subject domain.Subject, questionType domain.QuestionType) (bool, error) {
	query := `SELECT COUNT(*) FROM questions
	WHERE LOWER(question_text) = :1
	AND subject = :2
	AND question_type = :3`

	var count int
	err := a.db.GetContext(ctx, &count, query,
		strings.ToLower(strings.TrimSpace(text)),
		string(subject),
		string(questionType),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate question: %w", err)
	}
	return count > 0, nil
}

// Save implements domain.QuestionRepository. The question row and its
// type-specific row are written in one transaction.
func (a *QuestionDatabaseAdapter) Save(ctx context.Context, question *domain.Question) (string, error) {
	if question == nil {
		return "", fmt.Errorf("cannot save nil question")
	}
	if err := question.Validate(); err != nil {
		return "", err
	}

	id := util.NewULID()
	now := time.Now()

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuestion := `INSERT INTO questions (
		id, subject, difficulty, question_type, topic, sub_topic,
		question_text, explanation, elo_rating, elo_min, elo_max, state,
		created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14
	)`

	_, err = tx.ExecContext(ctx, insertQuestion,
		id,
		string(question.Subject),
		string(question.Difficulty),
		string(question.QuestionType),
		question.Topic,
		nullableString(question.SubTopic),
		question.Text,
		nullableString(question.Explanation),
		question.Rating.Value,
		question.Rating.Min,
		question.Rating.Max,
		string(question.State),
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save question: %w", err)
	}

	if err := a.savePayload(ctx, tx, id, question.Payload); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit question: %w", err)
	}

	question.ID = id
	question.CreatedAt = now
	question.UpdatedAt = now
	return id, nil
}

func (a *QuestionDatabaseAdapter) savePayload(ctx context.Context, tx *sqlx.Tx, questionID string, payload domain.Payload) error {
	switch p := payload.(type) {
	case *domain.MultipleChoicePayload:
		query := `INSERT INTO multiple_choice_questions (
			question_id, option_a, option_b, option_c, option_d, correct_option
		) VALUES (:1, :2, :3, :4, :5, :6)`
		if _, err := tx.ExecContext(ctx, query, questionID, p.OptionA, p.OptionB, p.OptionC, p.OptionD, p.CorrectOption); err != nil {
			return fmt.Errorf("failed to save multiple choice payload: %w", err)
		}
	case *domain.TrueFalsePayload:
		query := `INSERT INTO true_false_questions (question_id, correct_answer) VALUES (:1, :2)`
		if _, err := tx.ExecContext(ctx, query, questionID, p.Answer); err != nil {
			return fmt.Errorf("failed to save true/false payload: %w", err)
		}
	case *domain.FillBlanksPayload:
		query := `INSERT INTO fill_in_blanks_questions (question_id, answers, raw_answer) VALUES (:1, :2, :3)`
		if _, err := tx.ExecContext(ctx, query, questionID, models.StringSlice(p.Answers), p.Raw); err != nil {
			return fmt.Errorf("failed to save fill-in-blanks payload: %w", err)
		}
	case *domain.MatchPairsPayload:
		query := `INSERT INTO match_following_questions (question_id, pairs, raw_pairs) VALUES (:1, :2, :3)`
		if _, err := tx.ExecContext(ctx, query, questionID, models.StringMap(p.Pairs), p.Raw); err != nil {
			return fmt.Errorf("failed to save match-following payload: %w", err)
		}
	default:
		return fmt.Errorf("unknown payload kind %T", payload)
	}
	return nil
}

// GetByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	var row models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = :1`

	err := a.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}

	payload, err := a.loadPayload(ctx, &row)
	if err != nil {
		return nil, err
	}
	return toDomainQuestion(&row, payload), nil
}

// List implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Subject != "" {
		args = append(args, string(filter.Subject))
		conditions = append(conditions, fmt.Sprintf("subject = :%d", len(args)))
	}
	if filter.Difficulty != "" {
		args = append(args, string(filter.Difficulty))
		conditions = append(conditions, fmt.Sprintf("difficulty = :%d", len(args)))
	}
	if filter.QuestionType != "" {
		args = append(args, string(filter.QuestionType))
		conditions = append(conditions, fmt.Sprintf("question_type = :%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC FETCH FIRST :%d ROWS ONLY", len(args))

	var rows []models.Question
	if err := a.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		payload, err := a.loadPayload(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, toDomainQuestion(&rows[i], payload))
	}
	return questions, nil
}

// Delete implements domain.QuestionRepository. Type rows go away via the
// ON DELETE CASCADE constraint.
func (a *QuestionDatabaseAdapter) Delete(ctx context.Context, id string) (bool, error) {
	res, err := a.db.ExecContext(ctx, `DELETE FROM questions WHERE id = :1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for delete of %s: %w", id, err)
	}
	return affected > 0, nil
}

func (a *QuestionDatabaseAdapter) loadPayload(ctx context.Context, row *models.Question) (domain.Payload, error) {
	switch domain.QuestionType(row.QuestionType) {
	case domain.TypeMultipleChoice:
		var mc models.MultipleChoiceQuestion
		query := `SELECT
			question_id "question_id",
			option_a "option_a",
			option_b "option_b",
			option_c "option_c",
			option_d "option_d",
			correct_option "correct_option"
		FROM multiple_choice_questions WHERE question_id = :1`
		if err := a.db.GetContext(ctx, &mc, query, row.ID); err != nil {
			return nil, fmt.Errorf("failed to load multiple choice payload for %s: %w", row.ID, err)
		}
		return &domain.MultipleChoicePayload{
			OptionA:       mc.OptionA,
			OptionB:       mc.OptionB,
			OptionC:       mc.OptionC,
			OptionD:       mc.OptionD,
			CorrectOption: mc.CorrectOption,
		}, nil
	case domain.TypeTrueFalse:
		var tf models.TrueFalseQuestion
		query := `SELECT
			question_id "question_id",
			correct_answer "correct_answer"
		FROM true_false_questions WHERE question_id = :1`
		if err := a.db.GetContext(ctx, &tf, query, row.ID); err != nil {
			return nil, fmt.Errorf("failed to load true/false payload for %s: %w", row.ID, err)
		}
		return &domain.TrueFalsePayload{Answer: tf.CorrectAnswer}, nil
	case domain.TypeFillInBlanks:
		var fib models.FillInBlanksQuestion
		query := `SELECT
			question_id "question_id",
			answers "answers",
			raw_answer "raw_answer"
		FROM fill_in_blanks_questions WHERE question_id = :1`
		if err := a.db.GetContext(ctx, &fib, query, row.ID); err != nil {
			return nil, fmt.Errorf("failed to load fill-in-blanks payload for %s: %w", row.ID, err)
		}
		return &domain.FillBlanksPayload{Answers: fib.Answers, Raw: fib.RawAnswer}, nil
	case domain.TypeMatchFollowing:
		var mf models.MatchFollowingQuestion
		query := `SELECT
			question_id "question_id",
			pairs "pairs",
			raw_pairs "raw_pairs"
		FROM match_following_questions WHERE question_id = :1`
		if err := a.db.GetContext(ctx, &mf, query, row.ID); err != nil {
			return nil, fmt.Errorf("failed to load match-following payload for %s: %w", row.ID, err)
		}
		return &domain.MatchPairsPayload{Pairs: mf.Pairs, Raw: mf.RawPairs}, nil
	default:
		return nil, fmt.Errorf("unknown question type %q for question %s", row.QuestionType, row.ID)
	}
}

func toDomainQuestion(row *models.Question, payload domain.Payload) *domain.Question {
	return &domain.Question{
		ID:           row.ID,
		Subject:      domain.Subject(row.Subject),
		Difficulty:   domain.Difficulty(row.Difficulty),
		QuestionType: domain.QuestionType(row.QuestionType),
		State:        domain.State(row.State),
		Topic:        row.Topic,
		SubTopic:     row.SubTopic.String,
		Text:         row.QuestionText,
		Explanation:  row.Explanation.String,
		Rating: domain.Rating{
			Value: row.EloRating,
			Min:   row.EloMin,
			Max:   row.EloMax,
		},
		Payload:   payload,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
