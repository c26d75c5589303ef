package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ypliao/gardenlog/internal/domain/activity"
	"github.com/ypliao/gardenlog/internal/domain/project"
	"github.com/ypliao/gardenlog/internal/domain/score"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) All(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Insert(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// BlobStore is a mock for project.BlobStore.
type BlobStore struct {
	mock.Mock
}

func (m *BlobStore) Save(data []byte) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

func (m *BlobStore) Load(ref string) ([]byte, error) {
	args := m.Called(ref)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

// ScoreRepository is a mock for score.Repository.
type ScoreRepository struct {
	mock.Mock
}

func (m *ScoreRepository) All(ctx context.Context) ([]score.DailyScore, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]score.DailyScore); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScoreRepository) ByDay(ctx context.Context, day time.Time) (*score.DailyScore, error) {
	args := m.Called(ctx, day)
	if entry, ok := args.Get(0).(*score.DailyScore); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScoreRepository) Put(ctx context.Context, entry *score.DailyScore) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
