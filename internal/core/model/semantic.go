package model

// ProjectData is the project shape sent to and echoed by the AI provider.
type ProjectData struct {
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Team        string `json:"Team,omitempty"`
	Status      string `json:"Status,omitempty"`
	Tags        string `json:"Tags,omitempty"`
	URL         string `json:"URL,omitempty"`
}

func ProjectFromRecord(r Record) ProjectData {
	return ProjectData{
		Title:       r.Title,
		Description: r.Description,
		Team:        r.Team,
		Status:      r.Status,
		Tags:        r.Tags,
		URL:         r.URL,
	}
}

type SearchFilters struct {
	MaxResults int      `json:"max_results"`
	Teams      []string `json:"teams,omitempty"`
	Status     []string `json:"status,omitempty"`
}

type SemanticMatch struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	RelevanceScore *int    `json:"relevance_score,omitempty"`
	MatchReason    *string `json:"match_reason,omitempty"`
	URL            *string `json:"url,omitempty"`
	Team           *string `json:"team,omitempty"`
	Status         *string `json:"status,omitempty"`
}

type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type SemanticResponse struct {
	Success              bool            `json:"success"`
	Matches              []SemanticMatch `json:"matches"`
	TotalMatches         int             `json:"total_matches"`
	SearchInterpretation string          `json:"search_interpretation,omitempty"`
	Error                string          `json:"error,omitempty"`
	TokenUsage           *TokenUsage     `json:"token_usage,omitempty"`
	Cached               bool            `json:"cached,omitempty"`
}
