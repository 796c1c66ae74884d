package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstringDistance(t *testing.T) {
	cases := []struct {
		pattern, text string
		want          int
	}{
		{"pipe", "data pipeline", 0},
		{"pipline", "data pipeline", 1},
		{"dtaa pipline", "data pipeline", 3},
		{"abc", "", 3},
		{"", "anything", 0},
		{"xyz", "abc", 3},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, substringDistance([]rune(c.pattern), []rune(c.text)), "%q in %q", c.pattern, c.text)
	}
}

func TestTokenScore(t *testing.T) {
	assert.Equal(t, 0.0, tokenScore([]string{"data"}, []string{"data", "pipeline"}))
	assert.InDelta(t, 0.1875, tokenScore([]string{"dtaa", "pipline"}, []string{"data", "pipeline"}), 1e-6)
	assert.Equal(t, 1.0, tokenScore(nil, []string{"data"}))
	assert.Equal(t, 1.0, tokenScore([]string{"data"}, nil))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "strasse", fold("STRASSE"))
	assert.Equal(t, "fi", fold("ﬁ"))
	assert.Equal(t, []string{"etl", "batch", "v2"}, words("etl, batch / v2"))
}
