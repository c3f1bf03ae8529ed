package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/academe/internal/domain/task"
)

// TaskLister supplies the tasks a live report is computed from.
type TaskLister interface {
	List(ctx context.Context) ([]task.Task, error)
}

// Service produces progress reports in the configured mode.
type Service struct {
	tasks  TaskLister
	mode   Mode
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates a report service.
func NewService(tasks TaskLister, mode Mode, logger *slog.Logger) *Service {
	return &Service{tasks: tasks, mode: mode, now: time.Now, logger: logger}
}

// Mode reports which mode the service runs in.
func (s *Service) Mode() Mode {
	return s.mode
}

// Progress returns the report for opts.
func (s *Service) Progress(ctx context.Context, opts Options) (*Report, error) {
	if s.mode == ModeStatic {
		r := Static(opts)
		return &r, nil
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	r := Compute(tasks, opts, s.now())
	if s.logger != nil {
		s.logger.Debug("progress report", "project_id", opts.ProjectID, "group_id", opts.GroupID, "total", r.Total)
	}
	return &r, nil
}
