// Package report serializes a Report into text, markdown, or HTML.
// Rendering is pure; the only failure mode is an unknown format name.
package report

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"newsagent/internal/models"
)

var ErrUnknownFormat = errors.New("unknown report format")

const timestampLayout = "2006-01-02 15:04:05"

func Render(r models.Report, format string) (string, error) {
	switch format {
	case "text":
		return renderText(r), nil
	case "markdown":
		return renderMarkdown(r), nil
	case "html":
		return renderHTML(r), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderText(r models.Report) string {
	var sb strings.Builder
	divider := strings.Repeat("=", 80)

	sb.WriteString(divider + "\n")
	fmt.Fprintf(&sb, "NEWS REPORT - %s\n", r.GeneratedAt.Format(timestampLayout))
	fmt.Fprintf(&sb, "Total Articles: %d\n", r.TotalCount)
	sb.WriteString(divider + "\n")

	if len(r.Articles) == 0 {
		sb.WriteString("\nNo articles to report.\n")
		return sb.String()
	}

	for i, article := range r.Articles {
		fmt.Fprintf(&sb, "\n[%d] %s\n", i+1, article.Title)
		fmt.Fprintf(&sb, "Source: %s | Published: %s\n", article.Source, article.PublishedAt.Format(timestampLayout))
		fmt.Fprintf(&sb, "Sentiment: %s\n", article.Analysis.Sentiment)
		fmt.Fprintf(&sb, "\nSummary: %s\n", article.Analysis.Summary)
		sb.WriteString("\nKey Points:\n")
		for _, point := range article.Analysis.KeyPoints {
			fmt.Fprintf(&sb, "  - %s\n", point)
		}
		fmt.Fprintf(&sb, "\nRead more: %s\n", article.URL)
		sb.WriteString(strings.Repeat("-", 80) + "\n")
	}

	return sb.String()
}

func renderMarkdown(r models.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# News Report - %s\n\n", r.GeneratedAt.Format(timestampLayout))
	fmt.Fprintf(&sb, "**Total Articles:** %d\n\n", r.TotalCount)
	sb.WriteString("---\n\n")

	if len(r.Articles) == 0 {
		sb.WriteString("No articles to report.\n")
		return sb.String()
	}

	for i, article := range r.Articles {
		fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, article.Title)
		fmt.Fprintf(&sb, "**Source:** %s | **Published:** %s\n", article.Source, article.PublishedAt.Format(timestampLayout))
		fmt.Fprintf(&sb, "**Sentiment:** %s\n\n", article.Analysis.Sentiment)
		fmt.Fprintf(&sb, "### Summary\n\n%s\n\n", article.Analysis.Summary)
		sb.WriteString("### Key Points\n\n")
		for _, point := range article.Analysis.KeyPoints {
			fmt.Fprintf(&sb, "- %s\n", point)
		}
		fmt.Fprintf(&sb, "\n[Read full article](%s)\n\n", article.URL)
		sb.WriteString("---\n\n")
	}

	return sb.String()
}

func renderHTML(r models.Report) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html><head><title>News Report</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }\n")
	sb.WriteString("h1 { color: #333; }\n")
	sb.WriteString(".article { border: 1px solid #ddd; padding: 15px; margin: 20px 0; border-radius: 5px; }\n")
	sb.WriteString(".meta { color: #666; font-size: 0.9em; }\n")
	sb.WriteString(".sentiment { display: inline-block; padding: 3px 8px; border-radius: 3px; }\n")
	sb.WriteString(".positive { background-color: #d4edda; color: #155724; }\n")
	sb.WriteString(".negative { background-color: #f8d7da; color: #721c24; }\n")
	sb.WriteString(".neutral { background-color: #d1ecf1; color: #0c5460; }\n")
	sb.WriteString("</style></head><body>\n")
	fmt.Fprintf(&sb, "<h1>News Report - %s</h1>\n", r.GeneratedAt.Format(timestampLayout))
	fmt.Fprintf(&sb, "<p><strong>Total Articles:</strong> %d</p>\n", r.TotalCount)

	if len(r.Articles) == 0 {
		sb.WriteString("<p>No articles to report.</p>\n")
		sb.WriteString("</body></html>\n")
		return sb.String()
	}

	for i, article := range r.Articles {
		sentiment := string(article.Analysis.Sentiment)
		sb.WriteString("<div class='article'>\n")
		fmt.Fprintf(&sb, "<h2>%d. %s</h2>\n", i+1, html.EscapeString(article.Title))
		fmt.Fprintf(&sb, "<p class='meta'>Source: %s | Published: %s</p>\n",
			html.EscapeString(article.Source), article.PublishedAt.Format(timestampLayout))
		fmt.Fprintf(&sb, "<p>Sentiment: <span class='sentiment %s'>%s</span></p>\n", sentiment, sentiment)
		fmt.Fprintf(&sb, "<h3>Summary</h3><p>%s</p>\n", html.EscapeString(article.Analysis.Summary))
		sb.WriteString("<h3>Key Points</h3><ul>\n")
		for _, point := range article.Analysis.KeyPoints {
			fmt.Fprintf(&sb, "<li>%s</li>\n", html.EscapeString(point))
		}
		sb.WriteString("</ul>\n")
		fmt.Fprintf(&sb, "<p><a href='%s' target='_blank'>Read full article</a></p>\n", html.EscapeString(article.URL))
		sb.WriteString("</div>\n")
	}

	sb.WriteString("</body></html>\n")
	return sb.String()
}

// Extension returns the file extension for a report format.
func Extension(format string) string {
	switch format {
	case "markdown":
		return "md"
	case "html":
		return "html"
	default:
		return "txt"
	}
}

// DefaultFilename builds the timestamped report filename used when no
// output path is given.
func DefaultFilename(format string, t time.Time) string {
	return fmt.Sprintf("news_report_%s.%s", t.Format("20060102_150405"), Extension(format))
}
