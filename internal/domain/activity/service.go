package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/academe/internal/domain/role"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.EntityID == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists activity entries with filtering.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	return s.repo.List(ctx, opts)
}

// Record builds an entry stamped with the acting user from ctx and writes it
// to logger. Logging failures are reported but never fail the caller's
// mutation. A nil logger is a no-op.
func Record(ctx context.Context, logger Logger, slogger *slog.Logger, entry ActivityEntry) {
	if logger == nil {
		return
	}
	if actor, ok := role.ActorFromContext(ctx); ok {
		entry.ActorID = actor.ID
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := logger.Log(ctx, &entry); err != nil && slogger != nil {
		slogger.Warn("activity log failed", "type", entry.ActivityType, "entity_id", entry.EntityID, "error", err)
	}
}
