package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"newsagent/internal/models"
)

const maxKeyPoints = 5

// cleanJSONResponse strips markdown code fences some models wrap around
// JSON output.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func parseAnalysis(content string) (models.Analysis, error) {
	cleaned := cleanJSONResponse(content)

	var parsed struct {
		Summary   string   `json:"summary"`
		KeyPoints []string `json:"key_points"`
		Sentiment string   `json:"sentiment"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return models.Analysis{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if parsed.Summary == "" {
		return models.Analysis{}, fmt.Errorf("%w: missing summary", ErrMalformedResponse)
	}

	keyPoints := make([]string, 0, len(parsed.KeyPoints))
	for _, point := range parsed.KeyPoints {
		if trimmed := strings.TrimSpace(point); trimmed != "" {
			keyPoints = append(keyPoints, trimmed)
		}
	}
	if len(keyPoints) > maxKeyPoints {
		keyPoints = keyPoints[:maxKeyPoints]
	}

	return models.Analysis{
		Summary:   strings.TrimSpace(parsed.Summary),
		KeyPoints: keyPoints,
		Sentiment: models.NormalizeSentiment(parsed.Sentiment),
	}, nil
}
