package jsonstore

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ypliao/gardenlog/internal/domain/score"
	"github.com/ypliao/gardenlog/internal/repository"
)

const scoresDoc = "dailyScores"

// ScoreRepository implements score.Repository over a JSON document. At
// most one entry exists per calendar day; Put replaces in place.
type ScoreRepository struct {
	store  *Store
	logger *slog.Logger

	mu     sync.Mutex
	scores []score.DailyScore
}

// NewScoreRepository creates a ScoreRepository, hydrating the ledger
// from the dailyScores document. A missing or corrupt document starts
// empty.
func NewScoreRepository(store *Store, logger *slog.Logger) *ScoreRepository {
	scores, _ := Load[[]score.DailyScore](store, scoresDoc)
	repo := &ScoreRepository{store: store, logger: logger, scores: scores}
	repo.sortLocked()
	return repo
}

// All returns the ledger, day descending.
func (r *ScoreRepository) All(ctx context.Context) ([]score.DailyScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.scores), nil
}

// ByDay looks up the entry for a calendar day.
func (r *ScoreRepository) ByDay(ctx context.Context, day time.Time) (*score.DailyScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.scores {
		if score.SameDay(r.scores[i].Day, day) {
			entry := r.scores[i]
			return &entry, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Put upserts by calendar day: an existing entry for the same day is
// replaced in place, otherwise the entry is appended. The ledger stays
// sorted by day descending either way.
func (r *ScoreRepository) Put(ctx context.Context, entry *score.DailyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := false
	for i := range r.scores {
		if score.SameDay(r.scores[i].Day, entry.Day) {
			r.scores[i] = *entry
			replaced = true
			break
		}
	}
	if !replaced {
		r.scores = append(r.scores, *entry)
	}
	r.sortLocked()
	r.persist()
	return nil
}

func (r *ScoreRepository) sortLocked() {
	slices.SortStableFunc(r.scores, func(a, b score.DailyScore) int {
		return b.Day.Compare(a.Day)
	})
}

// persist mirrors ProjectRepository.persist: best-effort full rewrite.
func (r *ScoreRepository) persist() {
	if err := Save(r.store, scoresDoc, r.scores); err != nil && r.logger != nil {
		r.logger.Warn("dailyScores document save failed, keeping in-memory state", "error", err)
	}
}
