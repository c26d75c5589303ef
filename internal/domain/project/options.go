package project

// FilterOptions narrows the active-project listing.
type FilterOptions struct {
	// Category compares against the normalized category; CategoryAll
	// (or empty) passes every project.
	Category string
	// Search is a case-insensitive substring match against name or
	// category. Trimmed; empty passes every project.
	Search string
}
