package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"newsagent/internal/models"
)

// URLFetcher pulls a single article straight from a web page, using
// readability extraction with a goquery fallback for the title.
type URLFetcher struct {
	client *http.Client
}

func NewURLFetcher() *URLFetcher {
	return &URLFetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (f *URLFetcher) Fetch(ctx context.Context, pageURL string) (models.Article, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return models.Article{}, fmt.Errorf("invalid article url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return models.Article{}, err
	}
	req.Header.Set("User-Agent", "newsagent/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return models.Article{}, fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Article{}, fmt.Errorf("article fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Article{}, err
	}

	return extractArticle(string(body), parsed, pageURL)
}

func extractArticle(htmlContent string, parsed *url.URL, pageURL string) (models.Article, error) {
	extracted, err := readability.FromReader(strings.NewReader(htmlContent), parsed)
	if err != nil {
		return models.Article{}, fmt.Errorf("failed to extract article content: %w", err)
	}

	title := strings.TrimSpace(extracted.Title)
	if title == "" {
		title = extractTitleFallback(htmlContent)
	}
	if title == "" {
		title = pageURL
	}

	return models.Article{
		Title:       title,
		Source:      parsed.Hostname(),
		PublishedAt: time.Now(),
		Description: strings.TrimSpace(extracted.Excerpt),
		Content:     strings.TrimSpace(extracted.TextContent),
		URL:         pageURL,
		Hash:        generateHash(title + pageURL),
	}, nil
}

func extractTitleFallback(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	return ""
}
