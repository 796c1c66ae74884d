// Package match implements exact and fuzzy project search over normalized records.
package match

import (
	"math"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/agenthands/projectsearch/internal/core/model"
)

// DefaultThreshold is the fuzzy tolerance used when none is configured.
const DefaultThreshold = 0.35

// Index holds the folded searchable text of every record. Entries are fixed at
// build time; only the threshold may change afterwards.
type Index struct {
	mu        sync.RWMutex
	threshold float64

	records []model.Record
	entries []entry
}

type entry struct {
	fields []field
}

type field struct {
	folded string
	runes  []rune
	words  []string
}

// Build indexes title, description, team, tags and location of every record.
func Build(records []model.Record, threshold float64) *Index {
	idx := &Index{
		threshold: clampThreshold(threshold),
		records:   records,
		entries:   make([]entry, len(records)),
	}

	for i, rec := range records {
		values := rec.SearchableFields()
		fields := make([]field, len(values))
		for j, v := range values {
			fields[j] = newField(v)
		}
		idx.entries[i] = entry{fields: fields}
	}

	return idx
}

// SetThreshold retunes fuzzy tolerance without rebuilding the index.
func (idx *Index) SetThreshold(threshold float64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.threshold = clampThreshold(threshold)
}

func (idx *Index) Threshold() float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.threshold
}

func (idx *Index) Len() int {
	return len(idx.records)
}

func newField(s string) field {
	folded := fold(s)
	return field{
		folded: folded,
		runes:  []rune(folded),
		words:  words(folded),
	}
}

func clampThreshold(t float64) float64 {
	switch {
	case t < 0 || math.IsNaN(t):
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// fold applies compatibility normalization and Unicode case folding.
// A fresh Caser per call keeps fold safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
