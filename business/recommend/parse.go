package recommend

import (
	"encoding/json"
	"fmt"
	"strings"
)

type aiSuggestion struct {
	ProductID uint   `json:"product_id"`
	Reason    string `json:"reason"`
}

// parseSuggestions extracts the JSON payload from a provider reply. Models
// often wrap their answer in markdown fences, so those are stripped first.
// A single object is accepted as a one-element list.
func parseSuggestions(content string) ([]aiSuggestion, error) {
	payload := extractJSON(content)

	var list []aiSuggestion
	if err := json.Unmarshal([]byte(payload), &list); err == nil {
		return list, nil
	}

	var single aiSuggestion
	if err := json.Unmarshal([]byte(payload), &single); err == nil && single.ProductID != 0 {
		return []aiSuggestion{single}, nil
	}

	return nil, fmt.Errorf("unparseable provider response")
}

func extractJSON(content string) string {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		rest := content[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	if idx := strings.Index(content, "```"); idx >= 0 {
		rest := content[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	return strings.TrimSpace(content)
}
