package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestFetchArticles(t *testing.T) {
	payload := map[string]interface{}{
		"status":       "ok",
		"totalResults": 1,
		"articles": []map[string]interface{}{
			{
				"source":      map[string]interface{}{"id": "bbc-news", "name": "BBC News"},
				"author":      "A Reporter",
				"title":       "AI Breakthrough Announced",
				"description": "Researchers announced a new model.",
				"url":         "https://example.com/ai-breakthrough",
				"publishedAt": "2026-08-29T10:00:00Z",
				"content":     "Full article body.",
			},
		},
	}

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewNewsAPIClient("test-key", "en")
	client.baseURL = srv.URL

	articles, err := client.FetchArticles(context.Background(), "AI", time.Now().AddDate(0, 0, -1), 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, "/everything", gotPath)
	assert.Equal(t, 1, len(articles))

	a := articles[0]
	assert.Equal(t, "AI Breakthrough Announced", a.Title)
	assert.Equal(t, "BBC News", a.Source)
	assert.Equal(t, "Researchers announced a new model.", a.Description)
	assert.Equal(t, "Full article body.", a.Content)
	assert.Equal(t, "https://example.com/ai-breakthrough", a.URL)
	assert.NotEqual(t, "", a.Hash)
}

func TestFetchTopHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/top-headlines", r.URL.Path)
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		assert.Equal(t, "technology", r.URL.Query().Get("category"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "articles": []interface{}{}})
	}))
	defer srv.Close()

	client := NewNewsAPIClient("test-key", "en")
	client.baseURL = srv.URL

	articles, err := client.FetchTopHeadlines(context.Background(), "us", "technology", 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestFetchArticlesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "error", "message": "apiKeyInvalid"})
	}))
	defer srv.Close()

	client := NewNewsAPIClient("bad-key", "en")
	client.baseURL = srv.URL

	_, err := client.FetchArticles(context.Background(), "AI", time.Now(), 10)

	assert.NotEqual(t, nil, err)
}

func TestFetchArticlesUnauthorizedIsNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewNewsAPIClient("bad-key", "en")
	client.baseURL = srv.URL

	_, err := client.FetchArticles(context.Background(), "AI", time.Now(), 10)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, calls)
}
