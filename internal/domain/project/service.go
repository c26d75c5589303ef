package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ypliao/gardenlog/internal/domain/activity"
	"github.com/ypliao/gardenlog/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo       Repository
	blobs      BlobStore
	activities *activity.Service
	logger     *slog.Logger
}

// NewService creates a new project service. The activity service may be
// nil; event logging is best-effort.
func NewService(repo Repository, blobs BlobStore, activities *activity.Service, logger *slog.Logger) *Service {
	return &Service{repo: repo, blobs: blobs, activities: activities, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name       string
	Category   string
	SymbolName string
}

// Create creates a new project at the head of the collection.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	symbol := strings.TrimSpace(req.SymbolName)
	if symbol == "" {
		symbol = "leaf"
	}

	proj := &Project{
		ID:         uuid.NewString(),
		Name:       name,
		Category:   strings.TrimSpace(req.Category),
		SymbolName: symbol,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Insert(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logEvent(ctx, proj.ID, nil, activity.TypeProjectCreated, fmt.Sprintf("created project %q", proj.Name))
	return proj, nil
}

// Archive marks a project finished and records its profit or loss.
// profitInput is the raw user string; thousands separators are stripped
// before parsing. Calling Archive on an already-archived project
// overwrites the recorded profit.
func (s *Service) Archive(ctx context.Context, id, profitInput string) (*Project, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(profitInput), ",", "")
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	proj.IsArchived = true
	proj.Profit = &value

	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("archiving project: %w", err)
	}

	s.logEvent(ctx, proj.ID, nil, activity.TypeProjectArchived, fmt.Sprintf("archived project %q with profit %v", proj.Name, value))
	return proj, nil
}

// Delete removes the given projects from the collection. Blob files
// referenced by their records are left behind.
func (s *Service) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.repo.Delete(ctx, ids); err != nil {
		return fmt.Errorf("deleting projects: %w", err)
	}
	for _, id := range ids {
		s.logEvent(ctx, id, nil, activity.TypeProjectDeleted, fmt.Sprintf("deleted project %s", id))
	}
	return nil
}

// AttachPhoto commits a pending photo ingestion: the bytes go to the
// blob store first, and only a successful save produces a PhotoRecord.
func (s *Service) AttachPhoto(ctx context.Context, projectID string, pending PendingPhoto) (*PhotoRecord, error) {
	if len(pending.Image) == 0 {
		return nil, ErrInvalidInput
	}

	proj, err := s.repo.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	ref, err := s.blobs.Save(pending.Image)
	if err != nil {
		return nil, fmt.Errorf("saving photo bytes: %w", err)
	}

	shotDate := pending.ShotDate
	if shotDate.IsZero() {
		shotDate = time.Now()
	}

	rec := PhotoRecord{
		ID:        uuid.NewString(),
		ImageRef:  ref,
		ShotDate:  shotDate,
		CreatedAt: time.Now(),
	}
	proj.Records = append(proj.Records, rec)

	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("attaching photo record: %w", err)
	}

	s.logEvent(ctx, proj.ID, &rec.ID, activity.TypePhotoAdded, fmt.Sprintf("added photo to project %q", proj.Name))
	return &rec, nil
}

// LoadPhoto returns the image bytes behind a project's photo record. A
// blob missing from disk surfaces ErrPhotoMissing so callers can render
// a placeholder instead of failing.
func (s *Service) LoadPhoto(ctx context.Context, projectID, recordID string) ([]byte, error) {
	proj, err := s.repo.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	for _, rec := range proj.Records {
		if rec.ID != recordID {
			continue
		}
		data, err := s.blobs.Load(rec.ImageRef)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPhotoMissing
			}
			return nil, fmt.Errorf("loading photo bytes: %w", err)
		}
		return data, nil
	}

	return nil, ErrRecordNotFound
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns the full project collection, head (newest) first.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.All(ctx)
}

// Archived returns archived projects in collection order.
func (s *Service) Archived(ctx context.Context) ([]Project, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	archived := make([]Project, 0)
	for _, p := range all {
		if p.IsArchived {
			archived = append(archived, p)
		}
	}
	return archived, nil
}

func (s *Service) logEvent(ctx context.Context, projectID string, recordID *string, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.Entry{
		ProjectID: projectID,
		RecordID:  recordID,
		Type:      typ,
		Summary:   summary,
	})
}
