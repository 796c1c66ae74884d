package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("  {\"a\":1}  "))
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  payload
	}{
		{"plain", `{"name":"x","count":2}`, payload{"x", 2}},
		{"fenced", "```json\n{\"name\":\"x\",\"count\":2}\n```", payload{"x", 2}},
		{"chatter", "Sure! Here you go: {\"name\":\"x\",\"count\":2} Hope that helps.", payload{"x", 2}},
		{"nested", `{"name":"{x}","count":2}`, payload{"{x}", 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON[payload](tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON[payload]("no json here")
	assert.ErrorContains(t, err, "missing '{'")

	_, err = ParseJSON[payload]("{ never closed")
	assert.ErrorContains(t, err, "missing '}'")

	_, err = ParseJSON[payload](`{"name": 3}`)
	assert.ErrorContains(t, err, "failed to unmarshal JSON")
}
