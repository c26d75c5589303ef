package score

import "errors"

var (
	// ErrScoreOutOfRange indicates a score outside [MinScore, MaxScore].
	ErrScoreOutOfRange = errors.New("score out of range")
	// ErrNoScoreToday indicates no entry exists for the current day.
	ErrNoScoreToday = errors.New("no score recorded today")
)
