package llm

import (
	"context"
	"fmt"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenRouterClient implements domain.CompletionClient against OpenRouter's
// OpenAI-compatible chat API.
type OpenRouterClient struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

// NewOpenRouterClient builds the client once at process start. An empty API
// key is an error here so callers can surface GENERATION_UNAVAILABLE before
// ever reaching the provider.
func NewOpenRouterClient(cfg config.LLMConfig) (domain.CompletionClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenRouter API key cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("LLM model name cannot be empty")
	}

	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenRouter client: %w", err)
	}

	logger.Get().Info("Initialized OpenRouter completion client",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model))

	return &OpenRouterClient{
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete implements domain.CompletionClient.
func (c *OpenRouterClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := c.model.GenerateContent(ctx, content,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	text := resp.Choices[0].Content
	logger.Get().Debug("Received completion",
		zap.Int("length", len(text)))
	return text, nil
}

var _ domain.CompletionClient = (*OpenRouterClient)(nil)
