package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"newsagent/internal/models"
)

type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client: &client,
		model:  model,
	}
}

func (c *AnthropicClient) Analyze(ctx context.Context, article models.Article) (models.Analysis, error) {
	content, err := c.complete(ctx, analysisSystemPrompt, buildAnalysisPrompt(article), 1024)
	if err != nil {
		return models.Analysis{}, err
	}
	return parseAnalysis(content)
}

func (c *AnthropicClient) Overview(ctx context.Context, titles []string) (string, error) {
	content, err := c.complete(ctx, overviewSystemPrompt, buildOverviewPrompt(titles), 512)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (c *AnthropicClient) complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("%w: empty message content", ErrProvider)
	}

	var sb strings.Builder
	for _, block := range response.Content {
		sb.WriteString(block.Text)
	}

	return sb.String(), nil
}
