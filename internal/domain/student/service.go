package student

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/academe/internal/domain/filter"
	"github.com/rpggio/academe/internal/repository"
)

// Service exposes the student pool.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new student service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns students whose name or email contains search.
func (s *Service) List(ctx context.Context, search string) ([]Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	return filter.Apply(students, func(st Student) bool {
		return filter.Matches(search, st.Name, st.Email)
	}), nil
}

// Get fetches a student by ID.
func (s *Service) Get(ctx context.Context, id string) (*Student, error) {
	st, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("getting student: %w", err)
	}
	return st, nil
}
