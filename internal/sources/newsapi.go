package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"newsagent/internal/models"
)

const defaultNewsAPIBaseURL = "https://newsapi.org/v2"

type NewsAPIClient struct {
	apiKey   string
	language string
	baseURL  string
	client   *http.Client
}

type NewsAPIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Author      string    `json:"author"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
		Content     string    `json:"content"`
	} `json:"articles"`
}

func NewNewsAPIClient(apiKey, language string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:   apiKey,
		language: language,
		baseURL:  defaultNewsAPIBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *NewsAPIClient) FetchArticles(ctx context.Context, topic string, since time.Time, limit int) ([]models.Article, error) {
	params := url.Values{}
	params.Set("q", topic)
	params.Set("from", since.Format("2006-01-02"))
	params.Set("language", c.language)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))

	apiResp, err := c.get(ctx, "/everything", params)
	if err != nil {
		return nil, err
	}

	return c.toArticles(apiResp), nil
}

// FetchTopHeadlines returns trending headlines for a country, optionally
// narrowed to a category.
func (c *NewsAPIClient) FetchTopHeadlines(ctx context.Context, country, category string, limit int) ([]models.Article, error) {
	params := url.Values{}
	params.Set("country", country)
	params.Set("pageSize", strconv.Itoa(limit))
	if category != "" {
		params.Set("category", category)
	}

	apiResp, err := c.get(ctx, "/top-headlines", params)
	if err != nil {
		return nil, err
	}

	return c.toArticles(apiResp), nil
}

func (c *NewsAPIClient) GetName() string {
	return "newsapi"
}

// get issues the request with exponential backoff. Rate limits and server
// errors are retried; client errors and bad payloads are not.
func (c *NewsAPIClient) get(ctx context.Context, endpoint string, params url.Values) (*NewsAPIResponse, error) {
	params.Set("apiKey", c.apiKey)
	requestURL := c.baseURL + endpoint + "?" + params.Encode()

	var apiResp NewsAPIResponse
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("newsapi returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("newsapi returned status %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
			return backoff.Permanent(err)
		}
		if apiResp.Status != "ok" {
			return backoff.Permanent(fmt.Errorf("newsapi error: %s", apiResp.Message))
		}

		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

func (c *NewsAPIClient) toArticles(apiResp *NewsAPIResponse) []models.Article {
	articles := make([]models.Article, 0, len(apiResp.Articles))
	for _, apiArticle := range apiResp.Articles {
		sourceName := apiArticle.Source.Name
		if sourceName == "" {
			sourceName = "NewsAPI"
		}

		article := models.Article{
			Title:       apiArticle.Title,
			Source:      sourceName,
			PublishedAt: apiArticle.PublishedAt,
			Description: apiArticle.Description,
			Content:     apiArticle.Content,
			URL:         apiArticle.URL,
			Hash:        generateHash(apiArticle.Title + apiArticle.URL),
		}
		articles = append(articles, article)
	}

	return articles
}
