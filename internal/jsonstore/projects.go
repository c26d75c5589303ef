package jsonstore

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/ypliao/gardenlog/internal/domain/project"
	"github.com/ypliao/gardenlog/internal/repository"
)

const projectsDoc = "projects"

// ProjectRepository implements project.Repository over a JSON document.
// The hydrated in-memory collection is authoritative; every mutation
// rewrites the whole document, best-effort. The mutex serializes
// access under the HTTP transport's overlapping requests.
type ProjectRepository struct {
	store  *Store
	logger *slog.Logger

	mu       sync.Mutex
	projects []project.Project
}

// NewProjectRepository creates a ProjectRepository, hydrating the
// collection from the projects document. A missing or corrupt document
// starts empty.
func NewProjectRepository(store *Store, logger *slog.Logger) *ProjectRepository {
	projects, _ := Load[[]project.Project](store, projectsDoc)
	return &ProjectRepository{store: store, logger: logger, projects: projects}
}

// All returns the collection in order, head (newest insertion) first.
func (r *ProjectRepository) All(ctx context.Context) ([]project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.projects), nil
}

// Get retrieves a project by ID.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].ID == id {
			proj := r.projects[i]
			return &proj, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Insert places a new project at the head of the collection.
func (r *ProjectRepository) Insert(ctx context.Context, proj *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append([]project.Project{*proj}, r.projects...)
	r.persist()
	return nil
}

// Update replaces the stored project with the same ID.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].ID == proj.ID {
			r.projects[i] = *proj
			r.persist()
			return nil
		}
	}
	return repository.ErrNotFound
}

// Delete removes every project whose ID is in ids. Unknown IDs are
// ignored.
func (r *ProjectRepository) Delete(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = slices.DeleteFunc(r.projects, func(p project.Project) bool {
		return slices.Contains(ids, p.ID)
	})
	r.persist()
	return nil
}

// persist rewrites the projects document. A failed write is logged and
// absorbed: in-memory state stays authoritative and the next save
// rewrites the full collection anyway. Callers hold the mutex.
func (r *ProjectRepository) persist() {
	if err := Save(r.store, projectsDoc, r.projects); err != nil && r.logger != nil {
		r.logger.Warn("projects document save failed, keeping in-memory state", "error", err)
	}
}
