package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/mmcdole/gofeed"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Tech News</title>
    <link>https://example.com</link>
    <item>
      <title>New AI Model Released</title>
      <link>https://example.com/ai-model</link>
      <description>A new AI model was released today.</description>
      <pubDate>Sat, 29 Aug 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Gardening Tips for Autumn</title>
      <link>https://example.com/gardening</link>
      <description>How to prepare your garden.</description>
      <pubDate>Sat, 29 Aug 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Old AI Story</title>
      <link>https://example.com/old-ai</link>
      <description>An AI story from long ago.</description>
      <pubDate>Mon, 05 Jan 2026 09:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func testRSSSource(feedURL string) *RSSSource {
	return &RSSSource{
		parser: gofeed.NewParser(),
		feeds: map[string][]string{
			"general": {feedURL},
		},
	}
}

func TestRSSFetchArticlesFiltersByTopicAndDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeedXML)
	}))
	defer srv.Close()

	source := testRSSSource(srv.URL)
	since := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	articles, err := source.FetchArticles(context.Background(), "AI", since, 10)

	assert.Equal(t, nil, err)
	// The gardening item is off-topic and the old item predates the window.
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "New AI Model Released", articles[0].Title)
	assert.Equal(t, "Example Tech News", articles[0].Source)
	assert.Equal(t, "https://example.com/ai-model", articles[0].URL)
}

func TestRSSFetchArticlesRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeedXML)
	}))
	defer srv.Close()

	source := testRSSSource(srv.URL)
	since := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	articles, err := source.FetchArticles(context.Background(), "AI", since, 1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
}

func TestRSSFetchArticlesSkipsBrokenFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := testRSSSource(srv.URL)

	articles, err := source.FetchArticles(context.Background(), "AI", time.Time{}, 10)

	// A broken feed is logged and skipped, not fatal.
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestFeedsForFallsBackToGeneral(t *testing.T) {
	source := NewRSSSource()

	assert.Equal(t, feedsByTopic["technology"], source.feedsFor("technology news"))
	assert.Equal(t, feedsByTopic["general"], source.feedsFor("obscure topic"))
}
