package score

import "time"

// Score bounds for a daily self-assessment.
const (
	MinScore = 1
	MaxScore = 10
)

// DailyScore is a self-rating for one calendar day. Day is normalized
// to local midnight and is the uniqueness key: the ledger holds at most
// one entry per day.
type DailyScore struct {
	ID    string    `json:"id"`
	Day   time.Time `json:"day"`
	Score int       `json:"score"`
}

// DayOf truncates t to midnight in its own location. time.Truncate
// would bucket by UTC and misplace days in non-UTC zones.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}
