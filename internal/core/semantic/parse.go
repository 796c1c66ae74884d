package semantic

import (
	"errors"
	"math"

	"github.com/agenthands/projectsearch/internal/core/common"
	"github.com/agenthands/projectsearch/internal/core/model"
)

const noInterpretation = "No interpretation provided"

type rawReply struct {
	Matches              []map[string]any `json:"matches"`
	TotalMatches         *float64         `json:"total_matches"`
	SearchInterpretation *string          `json:"search_interpretation"`
}

// ParseResults reads a provider reply into matches, the reported total and the
// provider's reading of the query. Entries without a title or description are
// dropped.
func ParseResults(reply string) ([]model.SemanticMatch, int, string, error) {
	parsed, err := common.ParseJSON[rawReply](reply)
	if err != nil {
		return nil, 0, "", err
	}
	if parsed.Matches == nil {
		return nil, 0, "", errors.New("no 'matches' array in response")
	}

	matches := make([]model.SemanticMatch, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		title, ok1 := m["title"].(string)
		desc, ok2 := m["description"].(string)
		if !ok1 || !ok2 {
			continue
		}
		matches = append(matches, model.SemanticMatch{
			Title:          title,
			Description:    desc,
			RelevanceScore: optInt(m["relevance_score"]),
			MatchReason:    optString(m["match_reason"]),
			URL:            optString(m["url"]),
			Team:           optString(m["team"]),
			Status:         optString(m["status"]),
		})
	}

	total := len(matches)
	if parsed.TotalMatches != nil && *parsed.TotalMatches >= 0 && *parsed.TotalMatches == math.Trunc(*parsed.TotalMatches) {
		total = int(*parsed.TotalMatches)
	}

	interpretation := noInterpretation
	if parsed.SearchInterpretation != nil {
		interpretation = *parsed.SearchInterpretation
	}

	return matches, total, interpretation, nil
}

func optString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// optInt accepts only non-negative whole numbers.
func optInt(v any) *int {
	f, ok := v.(float64)
	if !ok || f < 0 || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}
