package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"

	"newsagent/internal/models"
)

func TestFetchByTopicFallsBackToRSS(t *testing.T) {
	newsAPISrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer newsAPISrv.Close()

	rssSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeedXML)
	}))
	defer rssSrv.Close()

	newsAPI := NewNewsAPIClient("bad-key", "en")
	newsAPI.baseURL = newsAPISrv.URL

	f := &Fetcher{
		newsAPI: newsAPI,
		tiers:   []models.NewsSource{newsAPI, testRSSSource(rssSrv.URL)},
		limit:   10,
	}

	articles, err := f.FetchByTopic(context.Background(), "AI", 365)

	assert.Equal(t, nil, err)
	assert.NotEqual(t, 0, len(articles))
}

func TestFetchByTopicWithoutNewsAPIKeyUsesRSS(t *testing.T) {
	rssSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeedXML)
	}))
	defer rssSrv.Close()

	f := &Fetcher{
		tiers: []models.NewsSource{testRSSSource(rssSrv.URL)},
		limit: 10,
	}

	articles, err := f.FetchByTopic(context.Background(), "AI", 365)

	assert.Equal(t, nil, err)
	assert.NotEqual(t, 0, len(articles))
}

func TestFetchTrendingWithoutNewsAPIKey(t *testing.T) {
	f := NewFetcher("", "en", 10)

	_, err := f.FetchTrending(context.Background(), "us", "technology")

	if !errors.Is(err, ErrNoArticles) {
		t.Errorf("expected ErrNoArticles, got %v", err)
	}
}
