package match

import (
	"sort"
	"strings"

	"github.com/agenthands/projectsearch/internal/core/model"
)

// Search answers a query against records. With useFuzzy and a non-nil index the
// query is matched approximately across all indexed fields and results come back
// best first; otherwise title and description are tested for case-insensitive
// containment and input order is kept. Empty queries match nothing.
func Search(q string, records []model.Record, idx *Index, useFuzzy bool) []model.MatchResult {
	q = strings.TrimSpace(q)
	if q == "" {
		return []model.MatchResult{}
	}

	if useFuzzy && idx != nil {
		return idx.fuzzy(q)
	}
	return exact(q, records)
}

func exact(q string, records []model.Record) []model.MatchResult {
	needle := strings.ToLower(q)
	results := []model.MatchResult{}

	for i := range records {
		rec := &records[i]
		if strings.Contains(strings.ToLower(rec.Title), needle) ||
			strings.Contains(strings.ToLower(rec.Description), needle) {
			results = append(results, model.MatchResult{Record: rec})
		}
	}

	return results
}

func (idx *Index) fuzzy(q string) []model.MatchResult {
	threshold := idx.Threshold()
	parsed := newQuery(q)
	results := []model.MatchResult{}

	for i, e := range idx.entries {
		score := scoreEntry(parsed, e)
		if score > threshold {
			continue
		}
		s := score
		results = append(results, model.MatchResult{Record: &idx.records[i], Score: &s})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return *results[a].Score < *results[b].Score
	})

	return results
}
