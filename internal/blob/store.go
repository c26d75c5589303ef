// Package blob stores raw image bytes as a flat directory of files
// named by generated references.
package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ypliao/gardenlog/internal/repository"
)

// Store writes image bytes under generated UUID names. References are
// flat file names, never paths.
type Store struct {
	dir string
}

// New creates a blob store rooted at dir. The directory itself is
// created lazily on first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes data under a freshly generated reference and returns the
// reference. The file is opened O_EXCL: a generated name can never
// overwrite an existing blob. Failures wrap repository.ErrWriteFailed
// and leave nothing for the caller to reference.
func (s *Store) Save(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating photo dir: %v", repository.ErrWriteFailed, err)
	}

	ref := uuid.NewString() + ".jpg"
	f, err := os.OpenFile(filepath.Join(s.dir, ref), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: creating blob %s: %v", repository.ErrWriteFailed, ref, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(filepath.Join(s.dir, ref))
		return "", fmt.Errorf("%w: writing blob %s: %v", repository.ErrWriteFailed, ref, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(filepath.Join(s.dir, ref))
		return "", fmt.Errorf("%w: closing blob %s: %v", repository.ErrWriteFailed, ref, err)
	}
	return ref, nil
}

// Load reads the bytes for a reference. An absent blob returns
// repository.ErrNotFound; blob files are not guaranteed to survive a
// reinstall, so callers degrade to a placeholder.
func (s *Store) Load(ref string) ([]byte, error) {
	if ref == "" || strings.ContainsAny(ref, `/\`) || ref != filepath.Base(ref) {
		return nil, repository.ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("reading blob %s: %w", ref, err)
	}
	return data, nil
}
