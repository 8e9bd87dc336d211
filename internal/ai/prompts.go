package ai

import (
	"fmt"
	"strings"

	"newsagent/internal/models"
)

const maxContentChars = 6000

const analysisSystemPrompt = `You are a professional news analyst. Analyze the article you are given and provide:
- summary: 2-3 concise sentences covering the key facts, main points, and important implications
- key_points: 3 to 5 single, clear sentences each highlighting one important piece of information
- sentiment: exactly one of "positive", "negative", or "neutral", considering the overall tone, implications, and context

Respond with JSON only, no other text:
{"summary": "...", "key_points": ["...", "..."], "sentiment": "neutral"}`

const overviewSystemPrompt = `You are a professional news analyst. Based on a list of news article titles, identify the main themes, trends, and topics being discussed. Provide a brief analysis (3-4 sentences) of what's currently newsworthy. Respond with the analysis text only.`

func buildAnalysisPrompt(article models.Article) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\n\n", article.Title))
	sb.WriteString(fmt.Sprintf("Content: %s\n", prepareContent(article)))
	return sb.String()
}

func buildOverviewPrompt(titles []string) string {
	var sb strings.Builder
	sb.WriteString("Article Titles:\n")
	for _, title := range titles {
		sb.WriteString(fmt.Sprintf("- %s\n", title))
	}
	return sb.String()
}

func prepareContent(article models.Article) string {
	text := article.Text()
	if len(text) > maxContentChars {
		text = text[:maxContentChars] + "..."
	}
	return text
}
