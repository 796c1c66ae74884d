package semantic

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/agenthands/projectsearch/internal/core/model"
)

// DefaultPromptTemplate is used when [prompts] semantic_search is unset.
// Fields: .Query, .Analyzed, .Total, .Projects (pretty JSON).
const DefaultPromptTemplate = `You are a semantic search engine for project feeds. Analyze the user's query and return ONLY the matching projects.

**User Query:** "{{.Query}}"

**Your Task:**
1. Understand the semantic meaning and intent of the user's query
2. Find ALL projects that match the query (not just exact keyword matches)
3. Consider synonyms, related concepts, and context
4. Return results in JSON format

**Return Format (JSON ONLY, no other text):**
{
  "matches": [
    {
      "title": "Project Title",
      "description": "Project Description",
      "relevance_score": 95,
      "match_reason": "Brief explanation why this matches",
      "url": "project url",
      "team": "team name",
      "status": "status"
    }
  ],
  "total_matches": 5,
  "search_interpretation": "What you understood from the query"
}

**Projects Database ({{.Analyzed}} of {{.Total}} total):**
{{.Projects}}

Return ONLY valid JSON. No markdown, no code blocks, just JSON.`

type promptData struct {
	Query    string
	Analyzed int
	Total    int
	Projects string
}

// Prompt renders the semantic search prompt.
type Prompt struct {
	tmpl *template.Template
}

// NewPrompt parses text as a template; blank text selects DefaultPromptTemplate.
func NewPrompt(text string) (*Prompt, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultPromptTemplate
	}
	tmpl, err := template.New("semantic_search").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse semantic search prompt: %w", err)
	}
	return &Prompt{tmpl: tmpl}, nil
}

func (p *Prompt) Build(query string, selected []model.ProjectData, total int) (string, error) {
	if selected == nil {
		selected = []model.ProjectData{}
	}
	projectsJSON, err := json.MarshalIndent(selected, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode projects: %w", err)
	}

	var sb strings.Builder
	err = p.tmpl.Execute(&sb, promptData{
		Query:    query,
		Analyzed: len(selected),
		Total:    total,
		Projects: string(projectsJSON),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render semantic search prompt: %w", err)
	}
	return sb.String(), nil
}
