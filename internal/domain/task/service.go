package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/academe/internal/domain/activity"
	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/repository"
	"github.com/rpggio/academe/internal/validate"
)

// Service handles task business logic. Updates and moves are serialised.
type Service struct {
	mu         sync.Mutex
	tasks      Repository
	projects   ProjectRepository
	groups     GroupRepository
	students   StudentRepository
	activities activity.Logger
	logger     *slog.Logger
}

// NewService creates a new task service. activities may be nil.
func NewService(
	tasks Repository,
	projects ProjectRepository,
	groups GroupRepository,
	students StudentRepository,
	activities activity.Logger,
	logger *slog.Logger,
) *Service {
	return &Service{
		tasks:      tasks,
		projects:   projects,
		groups:     groups,
		students:   students,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest describes a task creation request.
type CreateRequest struct {
	Title       string   `json:"title" validate:"notblank,max=200,plaintext"`
	Description string   `json:"description" validate:"max=4000,plaintext"`
	Status      Status   `json:"status" validate:"omitempty,oneof=todo in-progress review completed"`
	Priority    Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string   `json:"due_date" validate:"notblank"`
	ProjectID   string   `json:"project_id"`
	GroupID     string   `json:"group_id"`
	AssigneeIDs []string `json:"assignee_ids" validate:"dive,notblank"`
}

// UpdateRequest carries the fields to change; nil fields are preserved. An
// empty ProjectID or GroupID detaches the task.
type UpdateRequest struct {
	Title       *string   `json:"title" validate:"omitempty,notblank,max=200,plaintext"`
	Description *string   `json:"description" validate:"omitempty,max=4000,plaintext"`
	Status      *Status   `json:"status" validate:"omitempty,oneof=todo in-progress review completed"`
	Priority    *Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string   `json:"due_date" validate:"omitempty,notblank"`
	ProjectID   *string   `json:"project_id"`
	GroupID     *string   `json:"group_id"`
	AssigneeIDs *[]string `json:"assignee_ids" validate:"omitempty,dive,notblank"`
}

// ParseDueDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d.UTC(), nil
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d.UTC(), nil
	}
	return time.Time{}, ErrInvalidDueDate
}

// Create creates a task, resolving project, group and assignee names.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	due, err := ParseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	t := &Task{
		ID:          uuid.NewString(),
		Title:       validate.Text(req.Title),
		Description: validate.Text(req.Description),
		Priority:    priority,
		DueDate:     due,
		Assignees:   []Assignee{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.setStatus(status, now)

	if err := s.attachProject(ctx, t, req.ProjectID); err != nil {
		return nil, err
	}
	if err := s.attachGroup(ctx, t, req.GroupID); err != nil {
		return nil, err
	}
	if err := s.assign(ctx, t, req.AssigneeIDs); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.record(ctx, t, activity.TypeTaskCreated, fmt.Sprintf("created task %q", t.Title))
	return t, nil
}

// Get returns a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// List returns the tasks matching opts.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return Filter(tasks, opts), nil
}

// Update merges the provided fields into the task.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Task, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := *current
	if req.Title != nil {
		updated.Title = validate.Text(*req.Title)
	}
	if req.Description != nil {
		updated.Description = validate.Text(*req.Description)
	}
	if req.Status != nil {
		updated.setStatus(*req.Status, now)
	}
	if req.Priority != nil {
		updated.Priority = *req.Priority
	}
	if req.DueDate != nil {
		due, err := ParseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		updated.DueDate = due
	}
	if req.ProjectID != nil {
		if err := s.attachProject(ctx, &updated, *req.ProjectID); err != nil {
			return nil, err
		}
	}
	if req.GroupID != nil {
		if err := s.attachGroup(ctx, &updated, *req.GroupID); err != nil {
			return nil, err
		}
	}
	if req.AssigneeIDs != nil {
		if err := s.assign(ctx, &updated, *req.AssigneeIDs); err != nil {
			return nil, err
		}
	}
	updated.UpdatedAt = now

	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	s.record(ctx, &updated, activity.TypeTaskUpdated, fmt.Sprintf("updated task %q", updated.Title))
	return &updated, nil
}

// Move changes only the task's status, as a board drag does.
func (s *Service) Move(ctx context.Context, id string, status Status) (*Task, error) {
	if err := validate.Var("status", string(status), "oneof=todo in-progress review completed"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}

	now := time.Now().UTC()
	updated := *current
	from := updated.Status
	updated.setStatus(status, now)
	updated.UpdatedAt = now

	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	s.record(ctx, &updated, activity.TypeTaskMoved, fmt.Sprintf("moved task %q from %s to %s", updated.Title, from, status))
	return &updated, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	s.record(ctx, t, activity.TypeTaskDeleted, fmt.Sprintf("deleted task %q", t.Title))
	return nil
}

func (s *Service) save(ctx context.Context, t *Task) error {
	if err := s.tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (s *Service) attachProject(ctx context.Context, t *Task, projectID string) error {
	if projectID == "" {
		t.ProjectID, t.ProjectTitle = "", ""
		return nil
	}
	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("loading project: %w", err)
	}
	t.ProjectID, t.ProjectTitle = proj.ID, proj.Title
	return nil
}

func (s *Service) attachGroup(ctx context.Context, t *Task, groupID string) error {
	if groupID == "" {
		t.GroupID, t.GroupName = "", ""
		return nil
	}
	g, err := s.groups.Get(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return group.ErrGroupNotFound
		}
		return fmt.Errorf("loading group: %w", err)
	}
	t.GroupID, t.GroupName = g.ID, g.Name
	return nil
}

func (s *Service) assign(ctx context.Context, t *Task, ids []string) error {
	assignees := make([]Assignee, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		st, err := s.students.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return student.ErrStudentNotFound
			}
			return fmt.Errorf("loading assignee: %w", err)
		}
		assignees = append(assignees, Assignee{ID: st.ID, Name: st.Name, Avatar: st.Avatar})
	}
	t.Assignees = assignees
	return nil
}

func (s *Service) record(ctx context.Context, t *Task, typ activity.ActivityType, summary string) {
	if s.logger != nil {
		s.logger.Debug("task mutation", "type", typ, "task_id", t.ID)
	}
	activity.Record(ctx, s.activities, s.logger, activity.ActivityEntry{
		ProjectID:    t.ProjectID,
		EntityType:   activity.EntityTask,
		EntityID:     t.ID,
		ActivityType: typ,
		Summary:      summary,
	})
}
