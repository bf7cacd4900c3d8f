package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service handles audit log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new audit service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Record logs a status transition, stamping the current time if missing.
func (s *Service) Record(ctx context.Context, entry *Entry) error {
	if entry == nil || strings.TrimSpace(entry.Collection) == "" || strings.TrimSpace(entry.RecordID) == "" {
		return ErrInvalidInput
	}
	if !entry.To.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidInput, entry.To)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging transition: %w", err)
	}
	s.logger.Info("status transition",
		"collection", entry.Collection,
		"record_id", entry.RecordID,
		"from", entry.From,
		"to", entry.To,
		"actor", entry.Actor,
	)
	return nil
}

// List returns audit entries, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
