// Package agent orchestrates the fetch -> analyze -> filter -> report
// pipeline. Articles are processed sequentially; a failed analysis skips
// that article and the batch continues.
package agent

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"newsagent/internal/ai"
	"newsagent/internal/cache"
	"newsagent/internal/models"
)

type Fetcher interface {
	FetchByTopic(ctx context.Context, topic string, daysBack int) ([]models.Article, error)
	FetchTrending(ctx context.Context, country, category string) ([]models.Article, error)
}

type Agent struct {
	fetcher Fetcher
	ai      ai.Client
	seen    *cache.Cache
}

// New creates an Agent. seen may be nil when cross-run deduplication is not
// wanted (one-shot CLI runs).
func New(fetcher Fetcher, aiClient ai.Client, seen *cache.Cache) *Agent {
	return &Agent{
		fetcher: fetcher,
		ai:      aiClient,
		seen:    seen,
	}
}

type RunOptions struct {
	Topics   []string
	Trending bool
	Country  string
	Category string
	DaysBack int

	Sentiment models.Sentiment
	Source    string
	Limit     int
}

// Run executes one full pipeline pass and assembles the Report. Fetch
// failures surface as an error alongside an empty report; per-article
// analysis failures only increment the skip count.
func (a *Agent) Run(ctx context.Context, opts RunOptions) (models.Report, error) {
	var (
		articles []models.Article
		err      error
	)

	if opts.Trending {
		articles, err = a.fetcher.FetchTrending(ctx, opts.Country, opts.Category)
	} else {
		articles, err = a.FetchNews(ctx, opts.Topics, opts.DaysBack)
	}
	if err != nil {
		return models.Report{GeneratedAt: time.Now(), Topics: opts.Topics}, err
	}

	articles = a.filterUnseen(articles)
	if opts.Limit > 0 && len(articles) > opts.Limit {
		articles = articles[:opts.Limit]
	}

	analyzed, skipped := a.Process(ctx, articles)

	if opts.Sentiment != "" {
		analyzed = FilterBySentiment(analyzed, opts.Sentiment)
	}
	if opts.Source != "" {
		analyzed = FilterBySource(analyzed, opts.Source)
	}

	for _, article := range analyzed {
		a.markSeen(article.Hash)
	}

	return models.Report{
		Articles:    analyzed,
		Topics:      opts.Topics,
		GeneratedAt: time.Now(),
		TotalCount:  len(analyzed),
		Skipped:     skipped,
	}, nil
}

// FetchNews fetches every topic and deduplicates by URL, preserving fetch
// order. A topic's failure doesn't abort the others; the error is returned
// only when every topic failed.
func (a *Agent) FetchNews(ctx context.Context, topics []string, daysBack int) ([]models.Article, error) {
	var (
		allArticles []models.Article
		lastErr     error
		failures    int
	)

	for _, topic := range topics {
		articles, err := a.fetcher.FetchByTopic(ctx, topic, daysBack)
		if err != nil {
			slog.Warn("fetch failed for topic", "topic", topic, "error", err)
			lastErr = err
			failures++
			continue
		}
		allArticles = append(allArticles, articles...)
	}

	if failures == len(topics) && lastErr != nil {
		return nil, lastErr
	}

	unique := deduplicateByURL(allArticles)
	slog.Info("fetched news", "topics", len(topics), "articles", len(allArticles), "unique", len(unique))
	return unique, nil
}

// Process analyzes articles one at a time. Returns the analyzed articles in
// input order and the number skipped due to errors.
func (a *Agent) Process(ctx context.Context, articles []models.Article) ([]models.AnalyzedArticle, int) {
	analyzed := make([]models.AnalyzedArticle, 0, len(articles))
	skipped := 0

	for i, article := range articles {
		slog.Info("processing article", "index", i+1, "total", len(articles), "title", article.Title)

		analysis, err := a.ai.Analyze(ctx, article)
		if err != nil {
			slog.Warn("skipping article after analysis failure", "title", article.Title, "error", err)
			skipped++
			continue
		}

		analyzed = append(analyzed, models.AnalyzedArticle{
			Article:     article,
			Analysis:    analysis,
			ProcessedAt: time.Now(),
		})
	}

	return analyzed, skipped
}

// Insights aggregates a finished report: an LLM overview of the headlines
// plus a locally computed sentiment breakdown and source list.
func (a *Agent) Insights(ctx context.Context, report models.Report) models.Insights {
	breakdown := map[models.Sentiment]int{
		models.SentimentPositive: 0,
		models.SentimentNegative: 0,
		models.SentimentNeutral:  0,
	}
	sourceSet := make(map[string]struct{})

	titles := make([]string, 0, len(report.Articles))
	for _, article := range report.Articles {
		breakdown[article.Analysis.Sentiment]++
		sourceSet[article.Source] = struct{}{}
		if len(titles) < 10 {
			titles = append(titles, article.Title)
		}
	}

	sources := make([]string, 0, len(sourceSet))
	for source := range sourceSet {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var overview string
	if len(titles) > 0 {
		var err error
		overview, err = a.ai.Overview(ctx, titles)
		if err != nil {
			slog.Warn("failed to generate overview", "error", err)
		}
	}

	return models.Insights{
		Overview:           overview,
		TotalArticles:      len(report.Articles),
		SentimentBreakdown: breakdown,
		Sources:            sources,
	}
}

func FilterBySentiment(articles []models.AnalyzedArticle, sentiment models.Sentiment) []models.AnalyzedArticle {
	filtered := make([]models.AnalyzedArticle, 0, len(articles))
	for _, article := range articles {
		if article.Analysis.Sentiment == sentiment {
			filtered = append(filtered, article)
		}
	}
	return filtered
}

func FilterBySource(articles []models.AnalyzedArticle, source string) []models.AnalyzedArticle {
	filtered := make([]models.AnalyzedArticle, 0, len(articles))
	for _, article := range articles {
		if strings.Contains(strings.ToLower(article.Source), strings.ToLower(source)) {
			filtered = append(filtered, article)
		}
	}
	return filtered
}

func (a *Agent) filterUnseen(articles []models.Article) []models.Article {
	if a.seen == nil {
		return articles
	}

	unseen := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if !a.seen.HasSeen(article.Hash) {
			unseen = append(unseen, article)
		}
	}
	return unseen
}

func (a *Agent) markSeen(hash string) {
	if a.seen != nil {
		a.seen.MarkSeen(hash)
	}
}

func deduplicateByURL(articles []models.Article) []models.Article {
	seenURLs := make(map[string]struct{}, len(articles))
	unique := make([]models.Article, 0, len(articles))

	for _, article := range articles {
		if article.URL == "" {
			unique = append(unique, article)
			continue
		}
		if _, ok := seenURLs[article.URL]; ok {
			continue
		}
		seenURLs[article.URL] = struct{}{}
		unique = append(unique, article)
	}

	return unique
}
