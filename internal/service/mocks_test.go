package service

import (
	"context"
	"os"
	"testing"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/stretchr/testify/mock"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}

	exitVal := m.Run()

	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Mocks ---

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) ExistsDuplicate(ctx context.Context, text string, subject domain.Subject, questionType domain.QuestionType) (bool, error) {
	args := m.Called(ctx, text, subject, questionType)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionRepository) Save(ctx context.Context, question *domain.Question) (string, error) {
	args := m.Called(ctx, question)
	if id := args.String(0); id != "" {
		question.ID = id
	}
	return args.String(0), args.Error(1)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
