package match

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

type query struct {
	folded string
	runes  []rune
	words  []string
}

func newQuery(s string) query {
	f := newField(s)
	return query{folded: f.folded, runes: f.runes, words: f.words}
}

// scoreEntry returns the best (lowest) field score of a record, in [0,1].
func scoreEntry(q query, e entry) float64 {
	best := 1.0
	for _, f := range e.fields {
		if s := scoreField(q, f); s < best {
			best = s
		}
		if best == 0 {
			break
		}
	}
	return best
}

func scoreField(q query, f field) float64 {
	if len(q.runes) == 0 {
		return 1
	}
	if strings.Contains(f.folded, q.folded) {
		return 0
	}

	sub := float64(substringDistance(q.runes, f.runes)) / float64(len(q.runes))
	if sub > 1 {
		sub = 1
	}

	if tok := tokenScore(q.words, f.words); tok < sub {
		return tok
	}
	return sub
}

// substringDistance is the smallest Levenshtein distance between pattern and
// any substring of text. Leading and trailing text is skipped for free.
func substringDistance(pattern, text []rune) int {
	m := len(pattern)
	col := make([]int, m+1)
	for i := range col {
		col[i] = i
	}
	best := col[m]

	for _, c := range text {
		diag := col[0] // column[0] stays 0: a match may start anywhere
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == c {
				cost = 0
			}
			next := min(diag+cost, col[i]+1, col[i-1]+1)
			diag = col[i]
			col[i] = next
		}
		if col[m] < best {
			best = col[m]
		}
		if best == 0 {
			break
		}
	}

	return best
}

// tokenScore averages, over query words, the Damerau-Levenshtein dissimilarity
// to the closest field word. Transposed letters cost a single edit.
func tokenScore(queryWords, fieldWords []string) float64 {
	if len(queryWords) == 0 || len(fieldWords) == 0 {
		return 1
	}

	total := 0.0
	for _, qw := range queryWords {
		best := 0.0
		for _, fw := range fieldWords {
			if qw == fw {
				best = 1
				break
			}
			sim, err := edlib.StringsSimilarity(qw, fw, edlib.DamerauLevenshtein)
			if err != nil {
				continue
			}
			if s := float64(sim); s > best {
				best = s
			}
		}
		total += 1 - best
	}

	return total / float64(len(queryWords))
}
