// Package render turns search results into output for a terminal or a pipe.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Card is one displayable search result with its link already resolved.
type Card struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Team        string   `json:"team,omitempty"`
	Status      string   `json:"status,omitempty"`
	Tags        string   `json:"tags,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Relevance   *int     `json:"relevance_score,omitempty"`
	Reason      string   `json:"match_reason,omitempty"`
}

// Renderer writes a result set. Implementations must handle an empty set.
type Renderer interface {
	Render(w io.Writer, cards []Card) error
}

// New returns a renderer by name: "cards", "table" or "json".
func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "cards":
		return NewCardRenderer(), nil
	case "table":
		return NewTableRenderer(), nil
	case "json":
		return JSONRenderer{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", format)
	}
}

type JSONRenderer struct {
	Indent string
}

func (r JSONRenderer) Render(w io.Writer, cards []Card) error {
	if cards == nil {
		cards = []Card{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", r.Indent)
	return enc.Encode(cards)
}
