// Package jsonstore persists whole collections as JSON documents, one
// file per document, with atomic replacement on every save.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ypliao/gardenlog/internal/repository"
)

// Store is a directory of named JSON documents.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a document store rooted at dir, creating it if absent.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating document dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load reads and decodes a named document. ok is false when the
// document is missing (first launch) or fails to parse (corruption);
// both degrade to "start empty" and are never fatal.
func Load[T any](s *Store, name string) (value T, ok bool) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Warn("document unreadable, starting empty", "document", name, "error", err)
		}
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		if s.logger != nil {
			s.logger.Warn("document corrupt, starting empty", "document", name, "error", err)
		}
		var zero T
		return zero, false
	}
	return value, true
}

// Save encodes value and atomically replaces the named document: the
// bytes land in a temp file in the same directory and are renamed over
// the old document, so interruption never leaves a partial write.
func Save[T any](s *Store, name string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp document for %s: %v", repository.ErrWriteFailed, name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing document %s: %v", repository.ErrWriteFailed, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing document %s: %v", repository.ErrWriteFailed, name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing document %s: %v", repository.ErrWriteFailed, name, err)
	}
	return nil
}
