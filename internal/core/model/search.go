package model

type MatchResult struct {
	Record *Record  `json:"record"`
	Score  *float64 `json:"score,omitempty"` // Lower is better; nil for exact matches
}
