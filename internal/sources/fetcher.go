package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsagent/internal/models"
)

// ErrNoArticles signals that every source tier failed. Callers may treat it
// as recoverable and retry on the next iteration.
var ErrNoArticles = errors.New("no articles available from any source")

// Fetcher tries its sources in order for each topic: NewsAPI first when a
// key is configured, then RSS feeds as the fallback tier.
type Fetcher struct {
	newsAPI *NewsAPIClient
	tiers   []models.NewsSource
	limit   int
}

func NewFetcher(newsAPIKey, language string, limit int) *Fetcher {
	f := &Fetcher{limit: limit}
	if newsAPIKey != "" {
		f.newsAPI = NewNewsAPIClient(newsAPIKey, language)
		f.tiers = append(f.tiers, f.newsAPI)
	}
	f.tiers = append(f.tiers, NewRSSSource())
	return f
}

func (f *Fetcher) FetchByTopic(ctx context.Context, topic string, daysBack int) ([]models.Article, error) {
	since := time.Now().AddDate(0, 0, -daysBack)

	var lastErr error
	for _, source := range f.tiers {
		articles, err := source.FetchArticles(ctx, topic, since, f.limit)
		if err != nil {
			slog.Warn("source fetch failed", "source", source.GetName(), "topic", topic, "error", err)
			lastErr = err
			continue
		}

		slog.Info("fetched articles", "source", source.GetName(), "topic", topic, "count", len(articles))
		return articles, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrNoArticles, lastErr)
}

func (f *Fetcher) FetchTrending(ctx context.Context, country, category string) ([]models.Article, error) {
	if f.newsAPI == nil {
		return nil, fmt.Errorf("%w: NEWSAPI_KEY not configured, trending requires NewsAPI", ErrNoArticles)
	}

	articles, err := f.newsAPI.FetchTopHeadlines(ctx, country, category, f.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoArticles, err)
	}

	slog.Info("fetched trending headlines", "country", country, "category", category, "count", len(articles))
	return articles, nil
}
