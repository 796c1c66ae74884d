package driver

const (
	// ProjectFeedQuery returns one property map per project node in creation order.
	ProjectFeedQuery = `
		MATCH (p:Project)
		RETURN properties(p) AS props
		ORDER BY id(p)
	`

	// ReferenceListQuery returns title/slug pairs for the title resolver.
	ReferenceListQuery = `
		MATCH (l:List)
		RETURN properties(l) AS props
	`
)
