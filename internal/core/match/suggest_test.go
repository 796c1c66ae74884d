package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/projectsearch/internal/core/model"
)

func TestSuggest(t *testing.T) {
	records := append(sampleRecords(), model.Record{Title: "Solar Map"})

	assert.Equal(t, []string{"Solar Map"}, Suggest("sol", records, 5))
	assert.Equal(t, []string{"River Watch"}, Suggest("rvw", records, 5))
}

func TestSuggest_Limits(t *testing.T) {
	records := sampleRecords()

	assert.Len(t, Suggest("a", records, 2), 2)
	assert.Empty(t, Suggest("a", records, 0))
	assert.Empty(t, Suggest("  ", records, 3))
	assert.Empty(t, Suggest("zzz", records, 3))
}
