package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/academe/internal/domain/activity"
	"github.com/rpggio/academe/internal/repository"
	"github.com/rpggio/academe/internal/validate"
)

// Service handles project operations. Updates are serialised.
type Service struct {
	mu         sync.Mutex
	repo       Repository
	members    MemberCounter
	activities activity.Logger
	logger     *slog.Logger
}

// NewService creates a new project service. members and activities may be nil.
func NewService(repo Repository, members MemberCounter, activities activity.Logger, logger *slog.Logger) *Service {
	return &Service{repo: repo, members: members, activities: activities, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Title          string   `json:"title" validate:"notblank,max=200,plaintext"`
	Description    string   `json:"description" validate:"max=2000,plaintext"`
	Tags           []string `json:"tags" validate:"max=20,dive,max=50,plaintext"`
	MentorID       string   `json:"mentor_id" validate:"notblank"`
	MentorName     string   `json:"mentor_name" validate:"plaintext"`
	TeamLeaderID   string   `json:"team_leader_id"`
	TeamLeaderName string   `json:"team_leader_name" validate:"plaintext"`
}

// UpdateRequest carries the fields to change; nil fields are preserved.
type UpdateRequest struct {
	Title          *string   `json:"title" validate:"omitempty,notblank,max=200,plaintext"`
	Description    *string   `json:"description" validate:"omitempty,max=2000,plaintext"`
	Tags           *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50,plaintext"`
	TeamLeaderID   *string   `json:"team_leader_id"`
	TeamLeaderName *string   `json:"team_leader_name" validate:"omitempty,plaintext"`
	Status         *Status   `json:"status" validate:"omitempty,oneof=open in-progress completed"`
	Progress       *int      `json:"progress" validate:"omitempty,min=0,max=100"`
}

// Create creates a new open project with zero progress.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	proj := &Project{
		ID:             uuid.NewString(),
		Title:          validate.Text(req.Title),
		Description:    validate.Text(req.Description),
		MentorID:       req.MentorID,
		MentorName:     validate.Text(req.MentorName),
		TeamLeaderID:   req.TeamLeaderID,
		TeamLeaderName: validate.Text(req.TeamLeaderName),
		Status:         StatusOpen,
		Progress:       0,
		Tags:           validate.Texts(req.Tags),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.record(ctx, proj.ID, activity.TypeProjectCreated, fmt.Sprintf("created project %q", proj.Title))
	return proj, nil
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
	if err := s.countMembers(ctx, proj); err != nil {
		return nil, err
	}
	return proj, nil
}

// List returns the projects matching opts.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	projects = Filter(projects, opts)
	for i := range projects {
		if err := s.countMembers(ctx, &projects[i]); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// Update merges the provided fields into the project.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Project, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Title != nil {
		updated.Title = validate.Text(*req.Title)
	}
	if req.Description != nil {
		updated.Description = validate.Text(*req.Description)
	}
	if req.Tags != nil {
		updated.Tags = validate.Texts(*req.Tags)
	}
	if req.TeamLeaderID != nil {
		updated.TeamLeaderID = *req.TeamLeaderID
	}
	if req.TeamLeaderName != nil {
		updated.TeamLeaderName = validate.Text(*req.TeamLeaderName)
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.Progress != nil {
		updated.Progress = *req.Progress
	}
	updated.UpdatedAt = time.Now().UTC()

	stored := updated
	stored.Members = 0
	if err := s.repo.Update(ctx, &stored); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.record(ctx, updated.ID, activity.TypeProjectUpdated, fmt.Sprintf("updated project %q", updated.Title))
	return &updated, nil
}

// Delete removes a project. Its groups and tasks are left in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	s.record(ctx, id, activity.TypeProjectDeleted, fmt.Sprintf("deleted project %s", id))
	return nil
}

func (s *Service) countMembers(ctx context.Context, proj *Project) error {
	if s.members == nil {
		return nil
	}
	n, err := s.members.CountMembers(ctx, proj.ID)
	if err != nil {
		return fmt.Errorf("counting project members: %w", err)
	}
	proj.Members = n
	return nil
}

func (s *Service) record(ctx context.Context, id string, typ activity.ActivityType, summary string) {
	if s.logger != nil {
		s.logger.Debug("project mutation", "type", typ, "project_id", id)
	}
	activity.Record(ctx, s.activities, s.logger, activity.ActivityEntry{
		ProjectID:    id,
		EntityType:   activity.EntityProject,
		EntityID:     id,
		ActivityType: typ,
		Summary:      summary,
	})
}
