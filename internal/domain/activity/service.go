package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrInvalidInput indicates a nil or malformed activity entry.
var ErrInvalidInput = errors.New("invalid activity entry")

// Service handles activity log operations. The log is an audit trail;
// callers treat Log as best-effort and never fail an operation on it.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Log records an activity entry, stamping CreatedAt when missing.
func (s *Service) Log(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		if s.logger != nil {
			s.logger.Warn("activity log write failed", "type", entry.Type, "error", err)
		}
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// Recent lists activity entries, newest first.
func (s *Service) Recent(ctx context.Context, opts ListOptions) ([]Entry, error) {
	return s.repo.List(ctx, opts)
}
