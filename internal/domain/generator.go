package domain

import "context"

// CompletionClient is the port for the LLM provider. Implementations return
// the raw completion text for a system/user prompt pair.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
