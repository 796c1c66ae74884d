package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/projectsearch/internal/core/model"
)

func TestNormalize_Aliases(t *testing.T) {
	rows := []model.RawRow{
		{"project_name": "Tree Census", "Summary": "Count street trees", "Link": "https://trees.example", "organization": "Parks", "stage": "Active", "City": "Oakland", "keywords": "trees, maps"},
		{"Title": "  ", "Name": "Fallback Name"},
	}

	records := Normalize(rows)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "Tree Census", r.Title)
	assert.Equal(t, "Count street trees", r.Description)
	assert.Equal(t, "https://trees.example", r.URL)
	assert.Equal(t, "Parks", r.Team)
	assert.Equal(t, "Active", r.Status)
	assert.Equal(t, "Oakland", r.Location)
	assert.Equal(t, "trees, maps", r.Tags)
	assert.Equal(t, "tree-census", r.Slug)
	assert.Equal(t, rows[0], r.Raw)

	assert.Equal(t, "Fallback Name", records[1].Title, "blank title falls through to the next alias")
}

func TestNormalize_Placeholders(t *testing.T) {
	records := Normalize([]model.RawRow{{"Unrelated": "x"}})
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, model.UntitledPlaceholder, r.Title)
	assert.Equal(t, model.DescriptionPlaceholder, r.Description)
	assert.Equal(t, model.URLPlaceholder, r.URL)
	assert.Equal(t, "", r.Team)
	assert.Equal(t, "", r.Tags)
	assert.Equal(t, "", r.Location)
}

func TestNormalize_UniqueSlugs(t *testing.T) {
	records := Normalize([]model.RawRow{
		{"Title": "Open Data"},
		{"Title": "Open Data"},
	})
	require.Len(t, records, 2)
	assert.Equal(t, "open-data", records[0].Slug)
	assert.Equal(t, "open-data-2", records[1].Slug)
}

func TestLookupColumn(t *testing.T) {
	row := model.RawRow{"List Slug": "alpha", "list title": "Alpha Project"}
	assert.Equal(t, "alpha", LookupColumn(row, []string{"slug", "list_slug"}))
	assert.Equal(t, "Alpha Project", LookupColumn(row, []string{"Title", "List Title"}))
	assert.Equal(t, "", LookupColumn(row, []string{"missing"}))
}
