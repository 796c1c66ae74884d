package semantic

import (
	"slices"
	"strings"

	"github.com/agenthands/projectsearch/internal/core/model"
)

const DefaultMaxResults = 30

// ApplyFilters keeps projects whose team contains any requested team and whose
// status is one of the requested statuses. A project without a team or status
// is not excluded by that filter.
func ApplyFilters(projects []model.ProjectData, filters model.SearchFilters) []model.ProjectData {
	out := make([]model.ProjectData, 0, len(projects))
	for _, p := range projects {
		if len(filters.Teams) > 0 && p.Team != "" {
			if !slices.ContainsFunc(filters.Teams, func(t string) bool {
				return strings.Contains(p.Team, t)
			}) {
				continue
			}
		}
		if len(filters.Status) > 0 && p.Status != "" {
			if !slices.Contains(filters.Status, p.Status) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// SelectForAnalysis takes the first maxResults projects; zero or less means
// DefaultMaxResults.
func SelectForAnalysis(projects []model.ProjectData, maxResults int) []model.ProjectData {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if len(projects) <= maxResults {
		return projects
	}
	return projects[:maxResults]
}
