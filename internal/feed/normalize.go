package feed

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/agenthands/projectsearch/internal/core/model"
)

// ColumnAliases lists, per record field, the source column names tried in order.
// Header matching ignores case and treats '_' and '-' as spaces.
type ColumnAliases struct {
	Title       []string
	Description []string
	URL         []string
	Team        []string
	Status      []string
	Location    []string
	Tags        []string
}

func DefaultColumnAliases() ColumnAliases {
	return ColumnAliases{
		Title:       []string{"Title", "Name", "Project Name", "Project", "Project Title"},
		Description: []string{"Description", "Summary", "Details", "About", "Project Description"},
		URL:         []string{"URL", "Link", "Website", "Project URL", "Homepage"},
		Team:        []string{"Team", "Organization", "Organisation", "Org", "Owner"},
		Status:      []string{"Status", "Stage", "State"},
		Location:    []string{"Location", "City", "Region", "Country"},
		Tags:        []string{"Tags", "Keywords", "Categories", "Topics"},
	}
}

// Normalize converts raw rows into records using the default aliases.
func Normalize(rows []model.RawRow) []model.Record {
	return NormalizeWithAliases(rows, DefaultColumnAliases())
}

func NormalizeWithAliases(rows []model.RawRow, aliases ColumnAliases) []model.Record {
	records := make([]model.Record, 0, len(rows))
	seenSlugs := make(map[string]int)

	for _, row := range rows {
		cols := indexColumns(row)

		rec := model.Record{
			Title:       pick(row, cols, aliases.Title, model.UntitledPlaceholder),
			Description: pick(row, cols, aliases.Description, model.DescriptionPlaceholder),
			URL:         pick(row, cols, aliases.URL, model.URLPlaceholder),
			Team:        pick(row, cols, aliases.Team, ""),
			Status:      pick(row, cols, aliases.Status, ""),
			Location:    pick(row, cols, aliases.Location, ""),
			Tags:        pick(row, cols, aliases.Tags, ""),
			Raw:         row,
		}
		rec.Slug = uniqueSlug(rec.Title, seenSlugs)
		records = append(records, rec)
	}

	return records
}

// LookupColumn returns the first non-empty value among the aliases, or "".
func LookupColumn(row model.RawRow, aliases []string) string {
	return pick(row, indexColumns(row), aliases, "")
}

func indexColumns(row model.RawRow) map[string]string {
	cols := make(map[string]string, len(row))
	for key := range row {
		canon := canonicalHeader(key)
		if existing, ok := cols[canon]; ok && strings.TrimSpace(row[existing]) != "" {
			continue
		}
		cols[canon] = key
	}
	return cols
}

func pick(row model.RawRow, cols map[string]string, aliases []string, fallback string) string {
	for _, alias := range aliases {
		key, ok := cols[canonicalHeader(alias)]
		if !ok {
			continue
		}
		if v := strings.TrimSpace(row[key]); v != "" {
			return v
		}
	}
	return fallback
}

func canonicalHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("_", " ", "-", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

func uniqueSlug(title string, seen map[string]int) string {
	base := slug.Make(title)
	if base == "" {
		base = "project"
	}
	seen[base]++
	if n := seen[base]; n > 1 {
		return fmt.Sprintf("%s-%d", base, n)
	}
	return base
}
