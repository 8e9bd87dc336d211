package models

import (
	"context"
	"strings"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// NormalizeSentiment maps free-form model output onto the three labels.
// Anything unrecognized is neutral.
func NormalizeSentiment(s string) Sentiment {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "positive"):
		return SentimentPositive
	case strings.Contains(lower, "negative"):
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

type Article struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Hash        string    `json:"hash"`
}

// Text returns the body used for analysis: full content when present,
// otherwise the description.
func (a Article) Text() string {
	if a.Content != "" {
		return a.Content
	}
	return a.Description
}

type Analysis struct {
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"key_points"`
	Sentiment Sentiment `json:"sentiment"`
}

type AnalyzedArticle struct {
	Article
	Analysis    Analysis  `json:"analysis"`
	ProcessedAt time.Time `json:"processed_at"`
}

type Report struct {
	Articles    []AnalyzedArticle `json:"articles"`
	Topics      []string          `json:"topics"`
	GeneratedAt time.Time         `json:"generated_at"`
	TotalCount  int               `json:"total_count"`
	Skipped     int               `json:"skipped"`
}

type Insights struct {
	Overview           string            `json:"overview"`
	TotalArticles      int               `json:"total_articles"`
	SentimentBreakdown map[Sentiment]int `json:"sentiment_breakdown"`
	Sources            []string          `json:"sources"`
}

type NewsSource interface {
	FetchArticles(ctx context.Context, topic string, since time.Time, limit int) ([]Article, error)
	GetName() string
}
