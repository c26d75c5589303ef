package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ypliao/gardenlog/internal/domain/project"
	"github.com/ypliao/gardenlog/internal/repository"
	"github.com/ypliao/gardenlog/internal/repository/mocks"
)

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, &mocks.BlobStore{}, nil, nil)

	_, err := svc.Create(ctx, project.CreateRequest{Name: ""})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, project.CreateRequest{Name: "   \t"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestProjectService_CreateNormalizes(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Insert", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, &mocks.BlobStore{}, nil, nil)
	proj, err := svc.Create(ctx, project.CreateRequest{
		Name:       "  Tomato ",
		Category:   "   ",
		SymbolName: "leaf",
	})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, "Tomato", proj.Name)
	require.Empty(t, proj.Category, "blank category must be stored absent")
	require.False(t, proj.IsArchived)
	require.Nil(t, proj.Profit)
	require.False(t, proj.CreatedAt.IsZero())
}

func TestProjectService_CreateDefaultsSymbol(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Insert", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, &mocks.BlobStore{}, nil, nil)
	proj, err := svc.Create(ctx, project.CreateRequest{Name: "Basil"})
	require.NoError(t, err)
	require.Equal(t, "leaf", proj.SymbolName)
}

func TestProjectService_ArchiveParsesAmount(t *testing.T) {
	ctx := context.Background()

	stored := project.Project{ID: "p1", Name: "Tomato", CreatedAt: time.Now()}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&stored, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return p.IsArchived && p.Profit != nil && *p.Profit == 1234.5
	})).Return(nil)

	svc := project.NewService(repo, &mocks.BlobStore{}, nil, nil)
	proj, err := svc.Archive(ctx, "p1", " 1,234.5 ")
	require.NoError(t, err)
	require.True(t, proj.IsArchived)
	require.NotNil(t, proj.Profit)
	require.Equal(t, 1234.5, *proj.Profit)
}

func TestProjectService_ArchiveNegativeAmount(t *testing.T) {
	ctx := context.Background()

	stored := project.Project{ID: "p1", Name: "Fern"}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&stored, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, &mocks.BlobStore{}, nil, nil)
	proj, err := svc.Archive(ctx, "p1", "-42")
	require.NoError(t, err)
	require.Equal(t, -42.0, *proj.Profit)
}

func TestProjectService_ArchiveInvalidAmount(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, &mocks.BlobStore{}, nil, nil)

	_, err := svc.Archive(ctx, "p1", "abc")
	require.ErrorIs(t, err, project.ErrInvalidAmount)

	// Parse failure must not touch the repository at all.
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectService_ArchiveUnknownProject(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)

	svc := project.NewService(repo, &mocks.BlobStore{}, nil, nil)
	_, err := svc.Archive(ctx, "ghost", "10")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_ReArchiveOverwritesProfit(t *testing.T) {
	ctx := context.Background()

	old := 10.0
	stored := project.Project{ID: "p1", Name: "Tomato", IsArchived: true, Profit: &old}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&stored, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, &mocks.BlobStore{}, nil, nil)
	proj, err := svc.Archive(ctx, "p1", "25")
	require.NoError(t, err)
	require.True(t, proj.IsArchived)
	require.Equal(t, 25.0, *proj.Profit)
}

func TestProjectService_AttachPhoto(t *testing.T) {
	ctx := context.Background()
	shotDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	stored := project.Project{ID: "p1", Name: "Tomato"}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&stored, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return len(p.Records) == 1 && p.Records[0].ImageRef == "ref-1.jpg"
	})).Return(nil)

	blobs := &mocks.BlobStore{}
	blobs.On("Save", []byte("jpeg bytes")).Return("ref-1.jpg", nil)

	svc := project.NewService(repo, blobs, nil, nil)
	rec, err := svc.AttachPhoto(ctx, "p1", project.PendingPhoto{
		Image:    []byte("jpeg bytes"),
		ShotDate: shotDate,
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, "ref-1.jpg", rec.ImageRef)
	require.True(t, rec.ShotDate.Equal(shotDate))
}

func TestProjectService_AttachPhotoBlobFailure(t *testing.T) {
	ctx := context.Background()

	stored := project.Project{ID: "p1", Name: "Tomato"}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&stored, nil)

	blobs := &mocks.BlobStore{}
	blobs.On("Save", mock.Anything).Return("", repository.ErrWriteFailed)

	svc := project.NewService(repo, blobs, nil, nil)
	_, err := svc.AttachPhoto(ctx, "p1", project.PendingPhoto{Image: []byte("x")})
	require.ErrorIs(t, err, repository.ErrWriteFailed)

	// A failed blob save must not produce a record.
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectService_LoadPhotoMissingBlob(t *testing.T) {
	ctx := context.Background()

	stored := project.Project{
		ID:      "p1",
		Records: []project.PhotoRecord{{ID: "r1", ImageRef: "gone.jpg"}},
	}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&stored, nil)

	blobs := &mocks.BlobStore{}
	blobs.On("Load", "gone.jpg").Return(nil, repository.ErrNotFound)

	svc := project.NewService(repo, blobs, nil, nil)
	_, err := svc.LoadPhoto(ctx, "p1", "r1")
	require.ErrorIs(t, err, project.ErrPhotoMissing)

	_, err = svc.LoadPhoto(ctx, "p1", "r2")
	require.ErrorIs(t, err, project.ErrRecordNotFound)
}
