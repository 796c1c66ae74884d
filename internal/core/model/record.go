package model

// RawRow is one unnormalized feed row keyed by the source's column names.
type RawRow map[string]string

// Placeholders used when a source row has no value for a field.
const (
	UntitledPlaceholder    = "Untitled Project"
	DescriptionPlaceholder = "No description available"
	URLPlaceholder         = "#"
)

type Record struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Team        string `json:"team"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	Tags        string `json:"tags"`
	Slug        string `json:"slug"`
	Raw         RawRow `json:"-"`
}

// SearchableFields returns the fields indexed for fuzzy matching, in index order.
func (r Record) SearchableFields() []string {
	return []string{r.Title, r.Description, r.Team, r.Tags, r.Location}
}

// LookupTable maps a display title (exact and lowercased) to a destination slug.
type LookupTable map[string]string
