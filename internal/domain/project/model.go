package project

import (
	"strings"
	"time"
)

// Category sentinels. Neither is ever stored on a Project; they exist
// only at the query/display boundary.
const (
	CategoryAll           = "all"
	CategoryUncategorized = "uncategorized"
)

// Project is a tracked endeavor with an append-only photo history.
type Project struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Category   string        `json:"category,omitempty"`
	SymbolName string        `json:"symbol_name"`
	CreatedAt  time.Time     `json:"created_at"`
	IsArchived bool          `json:"is_archived"`
	Profit     *float64      `json:"profit,omitempty"`
	Records    []PhotoRecord `json:"records,omitempty"`
}

// PhotoRecord is a dated photograph attached to a project. It carries a
// blob-store reference, never the image bytes themselves.
type PhotoRecord struct {
	ID        string    `json:"id"`
	ImageRef  string    `json:"image_ref"`
	ShotDate  time.Time `json:"shot_date"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingPhoto holds a not-yet-committed photo ingestion: the decoded
// image bytes plus the user-chosen shot date. It is either committed
// through AttachPhoto or dropped; nothing is written until commit.
type PendingPhoto struct {
	Image    []byte
	ShotDate time.Time
}

// NormalizedCategory returns the trimmed category, or the
// "uncategorized" sentinel when the project has none.
func (p *Project) NormalizedCategory() string {
	c := strings.TrimSpace(p.Category)
	if c == "" {
		return CategoryUncategorized
	}
	return c
}

// SortOption selects one of the three project orderings.
type SortOption string

const (
	SortByCreatedDesc SortOption = "created_desc"
	SortByNameAsc     SortOption = "name_asc"
	SortByCategoryAsc SortOption = "category_asc"
)
