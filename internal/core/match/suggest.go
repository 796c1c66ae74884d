package match

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/agenthands/projectsearch/internal/core/model"
)

type titleSource []model.Record

func (s titleSource) String(i int) string { return s[i].Title }
func (s titleSource) Len() int            { return len(s) }

// Suggest ranks record titles against a partially typed query, best first,
// returning at most limit distinct titles.
func Suggest(prefix string, records []model.Record, limit int) []string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || limit <= 0 {
		return []string{}
	}

	matches := fuzzy.FindFrom(prefix, titleSource(records))
	out := make([]string, 0, min(limit, len(matches)))
	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		if _, dup := seen[m.Str]; dup {
			continue
		}
		seen[m.Str] = struct{}{}
		out = append(out, m.Str)
		if len(out) == limit {
			break
		}
	}

	return out
}
