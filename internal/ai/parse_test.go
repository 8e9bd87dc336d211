package ai

import (
	"errors"
	"strings"
	"testing"

	"newsagent/internal/models"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"summary":"test"}`,
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"summary\":\"test\"}\n```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"summary\":\"test\"}\n```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"summary\":\"test\"}  ",
			want:  `{"summary":"test"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	content := `{"summary": "A big thing happened.", "key_points": ["First point.", "Second point."], "sentiment": "Positive"}`

	analysis, err := parseAnalysis(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Summary != "A big thing happened." {
		t.Errorf("unexpected summary: %q", analysis.Summary)
	}
	if len(analysis.KeyPoints) != 2 {
		t.Fatalf("expected 2 key points, got %d", len(analysis.KeyPoints))
	}
	if analysis.Sentiment != models.SentimentPositive {
		t.Errorf("expected positive sentiment, got %q", analysis.Sentiment)
	}
}

func TestParseAnalysisFencedResponse(t *testing.T) {
	content := "```json\n{\"summary\": \"S.\", \"key_points\": [\"P.\"], \"sentiment\": \"neutral\"}\n```"

	analysis, err := parseAnalysis(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Sentiment != models.SentimentNeutral {
		t.Errorf("expected neutral sentiment, got %q", analysis.Sentiment)
	}
}

func TestParseAnalysisMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":        "Here is my analysis of the article...",
		"missing summary": `{"key_points": ["P."], "sentiment": "neutral"}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseAnalysis(content)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestParseAnalysisCapsKeyPoints(t *testing.T) {
	content := `{"summary": "S.", "key_points": ["1", "2", "3", "4", "5", "6", "7"], "sentiment": "negative"}`

	analysis, err := parseAnalysis(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(analysis.KeyPoints) != maxKeyPoints {
		t.Errorf("expected %d key points, got %d", maxKeyPoints, len(analysis.KeyPoints))
	}
}

func TestPrepareContentTruncates(t *testing.T) {
	article := models.Article{Content: strings.Repeat("a", maxContentChars+100)}

	prepared := prepareContent(article)
	if len(prepared) != maxContentChars+3 {
		t.Errorf("expected truncation to %d+ellipsis, got %d", maxContentChars, len(prepared))
	}
	if !strings.HasSuffix(prepared, "...") {
		t.Error("expected truncated content to end with ellipsis")
	}
}
