package score

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ypliao/gardenlog/internal/domain/activity"
	"github.com/ypliao/gardenlog/internal/repository"
)

// Service handles the daily score ledger.
type Service struct {
	repo       Repository
	activities *activity.Service
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new score service. The activity service may be
// nil; event logging is best-effort.
func NewService(repo Repository, activities *activity.Service, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger, now: time.Now}
}

// WithClock overrides the clock, for tests that pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// UpsertToday records value against the current local calendar day,
// replacing an existing entry for that day in place.
func (s *Service) UpsertToday(ctx context.Context, value int) (*DailyScore, error) {
	if value < MinScore || value > MaxScore {
		return nil, ErrScoreOutOfRange
	}

	day := DayOf(s.now())
	entry, err := s.repo.ByDay(ctx, day)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading today's score: %w", err)
		}
		entry = &DailyScore{ID: uuid.NewString(), Day: day}
	}
	entry.Score = value

	if err := s.repo.Put(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving score: %w", err)
	}

	if s.activities != nil {
		_ = s.activities.Log(ctx, &activity.Entry{
			Type:    activity.TypeScoreRecorded,
			Summary: fmt.Sprintf("recorded daily score %d", value),
		})
	}
	return entry, nil
}

// Today returns the entry for the current local calendar day, or
// ErrNoScoreToday when none exists yet.
func (s *Service) Today(ctx context.Context) (*DailyScore, error) {
	entry, err := s.repo.ByDay(ctx, DayOf(s.now()))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoScoreToday
		}
		return nil, fmt.Errorf("loading today's score: %w", err)
	}
	return entry, nil
}

// List returns all scores, day descending.
func (s *Service) List(ctx context.Context) ([]DailyScore, error) {
	return s.repo.All(ctx)
}

// Average returns the arithmetic mean over the whole ledger, 0 when the
// ledger is empty.
func (s *Service) Average(ctx context.Context) (float64, error) {
	scores, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return 0, nil
	}
	sum := 0
	for _, entry := range scores {
		sum += entry.Score
	}
	return float64(sum) / float64(len(scores)), nil
}

// ClampScore rounds a raw slider-style value to the nearest integer and
// clamps it into [MinScore, MaxScore].
func ClampScore(v float64) int {
	n := int(math.Round(v))
	if n < MinScore {
		return MinScore
	}
	if n > MaxScore {
		return MaxScore
	}
	return n
}
