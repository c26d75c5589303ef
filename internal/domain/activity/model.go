package activity

import "time"

// Type classifies an activity log event.
type Type string

const (
	TypeProjectCreated  Type = "project_created"
	TypeProjectArchived Type = "project_archived"
	TypeProjectDeleted  Type = "project_deleted"
	TypePhotoAdded      Type = "photo_added"
	TypeScoreRecorded   Type = "score_recorded"
)

// Entry is one event in the activity log. ProjectID is empty for
// events not tied to a project (daily scores).
type Entry struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"project_id,omitempty"`
	RecordID  *string   `json:"record_id,omitempty"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
