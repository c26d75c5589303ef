package score

import (
	"context"
	"time"
)

// Repository provides persistence for the daily score ledger, ordered
// by day descending. Put upserts by calendar day.
type Repository interface {
	All(ctx context.Context) ([]DailyScore, error)
	ByDay(ctx context.Context, day time.Time) (*DailyScore, error)
	Put(ctx context.Context, entry *DailyScore) error
}
