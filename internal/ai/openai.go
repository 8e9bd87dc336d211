package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"newsagent/internal/models"
)

type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float64
}

func NewOpenAIClient(apiKey, model string, temperature float64) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:      &client,
		model:       model,
		temperature: temperature,
	}
}

func (c *OpenAIClient) Analyze(ctx context.Context, article models.Article) (models.Analysis, error) {
	content, err := c.complete(ctx, analysisSystemPrompt, buildAnalysisPrompt(article), 1024)
	if err != nil {
		return models.Analysis{}, err
	}
	return parseAnalysis(content)
}

func (c *OpenAIClient) Overview(ctx context.Context, titles []string) (string, error) {
	content, err := c.complete(ctx, overviewSystemPrompt, buildOverviewPrompt(titles), 512)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in completion", ErrProvider)
	}

	return response.Choices[0].Message.Content, nil
}
