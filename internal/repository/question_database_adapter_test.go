package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizforge/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAdapter(t *testing.T) (domain.QuestionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewQuestionDatabaseAdapter(sqlx.NewDb(db, "oracle")), mock
}

func sampleQuestion() *domain.Question {
	return &domain.Question{
		Subject:      domain.SubjectPhysics,
		Difficulty:   domain.DifficultyEasy,
		QuestionType: domain.TypeTrueFalse,
		Topic:        "Energy Conservation",
		Text:         "Energy can be created and destroyed.",
		Explanation:  "Energy is conserved.",
		Rating:       domain.AssignRating(1250),
		State:        domain.StateFun,
		Payload:      &domain.TrueFalsePayload{Answer: "False"},
	}
}

func TestExistsDuplicate(t *testing.T) {
	repo, mock := newMockAdapter(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM questions`).
		WithArgs("energy can be created and destroyed.", "physics", "true_false").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// Text is trimmed and lowered before binding.
	exists, err := repo.ExistsDuplicate(context.Background(),
		"  Energy can be created and destroyed. ", domain.SubjectPhysics, domain.TypeTrueFalse)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsDuplicate_NotFound(t *testing.T) {
	repo, mock := newMockAdapter(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM questions`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsDuplicate(context.Background(),
		"Brand new question?", domain.SubjectPhysics, domain.TypeTrueFalse)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsDuplicate_QueryError(t *testing.T) {
	repo, mock := newMockAdapter(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM questions`).
		WillReturnError(errors.New("ORA-12170: connect timeout"))

	_, err := repo.ExistsDuplicate(context.Background(),
		"whatever", domain.SubjectPhysics, domain.TypeTrueFalse)
	assert.Error(t, err)
}

func TestSave_TrueFalse(t *testing.T) {
	repo, mock := newMockAdapter(t)
	q := sampleQuestion()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO questions`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO true_false_questions`).
		WithArgs(sqlmock.AnyArg(), "False").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.Save(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, id, 26)
	assert.Equal(t, id, q.ID)
	assert.False(t, q.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_MultipleChoicePayloadRow(t *testing.T) {
	repo, mock := newMockAdapter(t)
	q := sampleQuestion()
	q.QuestionType = domain.TypeMultipleChoice
	q.Payload = &domain.MultipleChoicePayload{
		OptionA: "Volt", OptionB: "Watt", OptionC: "Ampere", OptionD: "Ohm",
		CorrectOption: "C",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO questions`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO multiple_choice_questions`).
		WithArgs(sqlmock.AnyArg(), "Volt", "Watt", "Ampere", "Ohm", "C").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := repo.Save(context.Background(), q)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_RollsBackOnPayloadFailure(t *testing.T) {
	repo, mock := newMockAdapter(t)
	q := sampleQuestion()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO questions`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO true_false_questions`).
		WillReturnError(errors.New("ORA-00001: unique constraint violated"))
	mock.ExpectRollback()

	_, err := repo.Save(context.Background(), q)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_RejectsInvalidQuestion(t *testing.T) {
	repo, _ := newMockAdapter(t)
	q := sampleQuestion()
	q.Payload = nil

	_, err := repo.Save(context.Background(), q)
	assert.Error(t, err)
}

func questionRowColumns() []string {
	return []string{
		"id", "subject", "difficulty", "question_type", "topic", "sub_topic",
		"question_text", "explanation", "elo_rating", "elo_min", "elo_max",
		"state", "created_at", "updated_at",
	}
}

func TestGetByID_TrueFalse(t *testing.T) {
	repo, mock := newMockAdapter(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM questions WHERE id = :1`).
		WithArgs("01HTEST00000000000000000AB").
		WillReturnRows(sqlmock.NewRows(questionRowColumns()).AddRow(
			"01HTEST00000000000000000AB", "physics", "easy", "true_false",
			"Energy Conservation", "Thermodynamics",
			"Energy can be created and destroyed.", "Energy is conserved.",
			1250, 1050, 1450, "fun", now, now,
		))
	mock.ExpectQuery(`FROM true_false_questions WHERE question_id = :1`).
		WithArgs("01HTEST00000000000000000AB").
		WillReturnRows(sqlmock.NewRows([]string{"question_id", "correct_answer"}).
			AddRow("01HTEST00000000000000000AB", "False"))

	q, err := repo.GetByID(context.Background(), "01HTEST00000000000000000AB")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, domain.SubjectPhysics, q.Subject)
	assert.Equal(t, "Thermodynamics", q.SubTopic)
	assert.Equal(t, 1250, q.Rating.Value)
	assert.Equal(t, "False", q.Payload.CorrectAnswer())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockAdapter(t)

	mock.ExpectQuery(`SELECT (.+) FROM questions WHERE id = :1`).
		WillReturnRows(sqlmock.NewRows(questionRowColumns()))

	q, err := repo.GetByID(context.Background(), "01HTEST00000000000000000AB")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestList_FiltersAndLimit(t *testing.T) {
	repo, mock := newMockAdapter(t)
	now := time.Now()

	mock.ExpectQuery(`FROM questions WHERE subject = :1 AND question_type = :2`).
		WithArgs("chemistry", "match_the_following", 5).
		WillReturnRows(sqlmock.NewRows(questionRowColumns()).AddRow(
			"01HTEST00000000000000000CD", "chemistry", "medium", "match_the_following",
			"Chemical Elements", nil,
			"Match the following chemical elements with their symbols:", nil,
			1200, 1000, 1400, "serious", now, now,
		))
	mock.ExpectQuery(`FROM match_following_questions WHERE question_id = :1`).
		WithArgs("01HTEST00000000000000000CD").
		WillReturnRows(sqlmock.NewRows([]string{"question_id", "pairs", "raw_pairs"}).
			AddRow("01HTEST00000000000000000CD",
				`{"Hydrogen":"H","Oxygen":"O","Carbon":"C"}`,
				"Hydrogen=H, Oxygen=O, Carbon=C"))

	questions, err := repo.List(context.Background(), domain.QuestionFilter{
		Subject:      domain.SubjectChemistry,
		QuestionType: domain.TypeMatchFollowing,
		Limit:        5,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	payload, ok := questions[0].Payload.(*domain.MatchPairsPayload)
	require.True(t, ok)
	assert.Equal(t, "H", payload.Pairs["Hydrogen"])
	assert.Equal(t, "", questions[0].SubTopic)
}

func TestList_DefaultLimit(t *testing.T) {
	repo, mock := newMockAdapter(t)

	mock.ExpectQuery(`FROM questions ORDER BY created_at DESC FETCH FIRST :1 ROWS ONLY`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(questionRowColumns()))

	questions, err := repo.List(context.Background(), domain.QuestionFilter{})
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMockAdapter(t)

	mock.ExpectExec(`DELETE FROM questions WHERE id = :1`).
		WithArgs("01HTEST00000000000000000AB").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), "01HTEST00000000000000000AB")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDelete_NoRow(t *testing.T) {
	repo, mock := newMockAdapter(t)

	mock.ExpectExec(`DELETE FROM questions WHERE id = :1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "01HTEST00000000000000000ZZ")
	require.NoError(t, err)
	assert.False(t, deleted)
}
