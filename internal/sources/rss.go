package sources

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsagent/internal/models"
)

const maxItemsPerFeed = 20

// feedsByTopic maps coarse topic keywords onto curated feeds; general feeds
// serve any topic the map doesn't cover.
var feedsByTopic = map[string][]string{
	"technology": {
		"https://techcrunch.com/feed/",
		"https://www.theverge.com/rss/index.xml",
		"https://www.wired.com/feed/rss",
	},
	"business": {
		"https://feeds.bbci.co.uk/news/business/rss.xml",
		"https://www.cnbc.com/id/100003114/device/rss/rss.html",
	},
	"science": {
		"https://www.sciencedaily.com/rss/all.xml",
		"https://www.nature.com/nature.rss",
	},
	"general": {
		"https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml",
		"https://feeds.bbci.co.uk/news/rss.xml",
		"https://www.theguardian.com/world/rss",
	},
}

type RSSSource struct {
	parser *gofeed.Parser
	feeds  map[string][]string
}

func NewRSSSource() *RSSSource {
	return &RSSSource{
		parser: gofeed.NewParser(),
		feeds:  feedsByTopic,
	}
}

func (s *RSSSource) FetchArticles(ctx context.Context, topic string, since time.Time, limit int) ([]models.Article, error) {
	var articles []models.Article

	for _, feedURL := range s.feedsFor(topic) {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			slog.Warn("failed to parse feed", "url", feedURL, "error", err)
			continue
		}

		for i, item := range feed.Items {
			if i >= maxItemsPerFeed || len(articles) >= limit {
				break
			}

			article := itemToArticle(feed, item)
			if !article.PublishedAt.IsZero() && article.PublishedAt.Before(since) {
				continue
			}
			if !isRelevant(article, topic) {
				continue
			}

			articles = append(articles, article)
		}
	}

	return articles, nil
}

func (s *RSSSource) GetName() string {
	return "rss"
}

// feedsFor selects the topic's feed list, falling back to general feeds.
func (s *RSSSource) feedsFor(topic string) []string {
	topicLower := strings.ToLower(topic)
	for category, feeds := range s.feeds {
		if strings.Contains(topicLower, category) {
			return feeds
		}
	}
	return s.feeds["general"]
}

func itemToArticle(feed *gofeed.Feed, item *gofeed.Item) models.Article {
	sourceName := feed.Title
	if sourceName == "" {
		sourceName = "RSS Feed"
	}

	var publishedAt time.Time
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	}

	return models.Article{
		Title:       item.Title,
		Source:      sourceName,
		PublishedAt: publishedAt,
		Description: item.Description,
		Content:     item.Content,
		URL:         item.Link,
		Hash:        generateHash(item.Title + item.Link),
	}
}

func isRelevant(article models.Article, topic string) bool {
	topicLower := strings.ToLower(topic)
	haystack := strings.ToLower(article.Title + " " + article.Description + " " + article.Content)
	return strings.Contains(haystack, topicLower)
}
