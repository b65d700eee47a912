package service

import (
	"context"
	"encoding/json"
	"strings"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// SourceAIGenerated tags responses whose questions came from a fresh LLM
// call.
const SourceAIGenerated = "ai_generated"

// QuestionService defines the question-related operations exposed to the
// transport layer.
type QuestionService interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*dto.GenerateQuestionsResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionItem, error)
	ListQuestions(ctx context.Context, filter domain.QuestionFilter) (*dto.QuestionListResponse, error)
	DeleteQuestion(ctx context.Context, id string) error
}

// questionService implements QuestionService
type questionService struct {
	repo      domain.QuestionRepository
	completer domain.CompletionClient
	cache     domain.Cache
	cfg       *config.Config
}

// NewQuestionService creates a new instance of questionService. completer
// and cache may be nil; generation then fails with GENERATION_UNAVAILABLE
// and reads skip the cache respectively.
func NewQuestionService(
	repo domain.QuestionRepository,
	completer domain.CompletionClient,
	cacheAdapter domain.Cache,
	cfg *config.Config,
) QuestionService {
	return &questionService{
		repo:      repo,
		completer: completer,
		cache:     cacheAdapter,
		cfg:       cfg,
	}
}

// Generate implements QuestionService. One-shot pipeline: prompt -> LLM ->
// parse -> per-record dedup/persist -> response. No retries at any step.
func (s *questionService) Generate(ctx context.Context, req domain.GenerationRequest) (*dto.GenerateQuestionsResponse, error) {
	l := logger.Get()

	if s.completer == nil {
		return nil, domain.NewGenerationUnavailableError("AI service not configured - API key missing", nil)
	}

	prompt := BuildPrompt(req)
	l.Info("Requesting question generation",
		zap.String("subject", string(req.Subject)),
		zap.String("question_type", string(req.QuestionType)),
		zap.Int("num_questions", req.NumQuestions))

	completion, err := s.completer.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		return nil, domain.NewGenerationUnavailableError("AI service failed to generate response", err)
	}
	if strings.TrimSpace(completion) == "" {
		return nil, domain.NewGenerationUnavailableError("AI service returned an empty response", nil)
	}

	parsed := ParseCompletion(completion, req)
	if len(parsed) == 0 {
		return nil, domain.NewNoParsableQuestionsError()
	}

	items := make([]dto.QuestionItem, 0, len(parsed))
	newlySaved := 0
	duplicates := 0

	for i, question := range parsed {
		// A single record's failure never aborts the batch.
		isDuplicate, err := s.repo.ExistsDuplicate(ctx, question.Text, question.Subject, question.QuestionType)
		if err != nil {
			l.Error("Failed to check duplicate, skipping record",
				zap.Error(err),
				zap.Int("record", i+1))
			continue
		}

		if isDuplicate {
			duplicates++
			l.Info("Duplicate question, skipping save",
				zap.String("question", truncateForLog(question.Text)))
		} else {
			if _, err := s.repo.Save(ctx, question); err != nil {
				l.Error("Failed to save question, skipping record",
					zap.Error(err),
					zap.Int("record", i+1))
				continue
			}
			newlySaved++
		}

		// Duplicates are still returned to the caller, just not re-saved.
		items = append(items, dto.FromDomainQuestion(question))
	}

	if len(items) < req.NumQuestions {
		l.Warn("Generated fewer questions than requested",
			zap.Int("requested", req.NumQuestions),
			zap.Int("generated", len(items)))
	}
	if len(items) > req.NumQuestions {
		items = items[:req.NumQuestions]
	}

	if len(items) == 0 {
		return nil, domain.NewEmptyResultError()
	}

	resp := &dto.GenerateQuestionsResponse{
		Subject:      string(req.Subject),
		Difficulty:   string(req.Difficulty),
		QuestionType: string(req.QuestionType),
		Questions:    items,
		Source:       SourceAIGenerated,
		Stats: dto.GenerationStats{
			TotalReturned:     len(items),
			FromDatabase:      0,
			NewlyGenerated:    newlySaved,
			DuplicatesSkipped: duplicates,
		},
	}

	l.Info("Question generation finished",
		zap.Int("total_returned", resp.Stats.TotalReturned),
		zap.Int("newly_generated", newlySaved),
		zap.Int("duplicates_skipped", duplicates))
	return resp, nil
}

// GetQuestion implements QuestionService with a cache-first read. Cache
// failures are logged and fall through to the repository.
func (s *questionService) GetQuestion(ctx context.Context, id string) (*dto.QuestionItem, error) {
	l := logger.Get()
	cacheKey := cache.GenerateCacheKey("question", "by_id", id)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var item dto.QuestionItem
			if err := json.Unmarshal([]byte(cached), &item); err == nil {
				l.Debug("Question cache hit", zap.String("id", id))
				return &item, nil
			}
			l.Warn("Failed to decode cached question, falling back to DB",
				zap.String("id", id))
		} else if err != domain.ErrCacheMiss {
			l.Error("Cache lookup failed", zap.Error(err), zap.String("id", id))
		}
	}

	question, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question", err)
	}
	if question == nil {
		return nil, domain.NewNotFoundError("Question not found: " + id)
	}

	item := dto.FromDomainQuestion(question)

	if s.cache != nil {
		if encoded, err := json.Marshal(item); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(encoded), s.cfg.Cache.QuestionTTL); err != nil {
				l.Warn("Failed to cache question", zap.Error(err), zap.String("id", id))
			}
		}
	}

	return &item, nil
}

// ListQuestions implements QuestionService
func (s *questionService) ListQuestions(ctx context.Context, filter domain.QuestionFilter) (*dto.QuestionListResponse, error) {
	questions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list questions", err)
	}

	items := make([]dto.QuestionItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, dto.FromDomainQuestion(q))
	}
	return &dto.QuestionListResponse{Questions: items, Count: len(items)}, nil
}

// DeleteQuestion implements QuestionService
func (s *questionService) DeleteQuestion(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.NewInternalError("Failed to delete question", err)
	}
	if !deleted {
		return domain.NewNotFoundError("Question not found: " + id)
	}

	if s.cache != nil {
		cacheKey := cache.GenerateCacheKey("question", "by_id", id)
		if err := s.cache.Delete(context.WithoutCancel(ctx), cacheKey); err != nil {
			logger.Get().Warn("Failed to invalidate question cache",
				zap.Error(err), zap.String("id", id))
		}
	}
	return nil
}

func truncateForLog(s string) string {
	if len(s) > 50 {
		return s[:50] + "..."
	}
	return s
}
