package project

import "context"

// Repository provides persistence for the project collection. The
// collection is ordered: Insert places new projects at the head.
type Repository interface {
	All(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Insert(ctx context.Context, proj *Project) error
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, ids []string) error
}

// BlobStore persists raw image bytes under generated reference names.
type BlobStore interface {
	Save(data []byte) (string, error)
	Load(ref string) ([]byte, error)
}
