// Package ai turns raw articles into analyses (summary, key points,
// sentiment) by delegating to a hosted LLM provider.
package ai

import (
	"context"
	"errors"
	"fmt"

	"newsagent/internal/config"
	"newsagent/internal/models"
)

var (
	// ErrProvider marks transport or API failures at the LLM provider.
	ErrProvider = errors.New("llm provider error")
	// ErrMalformedResponse marks completions that could not be parsed into
	// an Analysis. The affected article is dropped, the batch continues.
	ErrMalformedResponse = errors.New("malformed llm response")
)

type Client interface {
	Analyze(ctx context.Context, article models.Article) (models.Analysis, error)
	Overview(ctx context.Context, titles []string) (string, error)
}

func New(cfg *config.Config) (Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Temperature), nil
	case "anthropic":
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
