package group

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/academe/internal/domain/activity"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/repository"
	"github.com/rpggio/academe/internal/validate"
)

// Service handles group operations and membership changes. Membership
// changes are serialised so concurrent callers never overwrite each other.
type Service struct {
	mu         sync.Mutex
	groups     Repository
	projects   ProjectRepository
	students   StudentRepository
	activities activity.Logger
	logger     *slog.Logger
}

// NewService creates a new group service. activities may be nil.
func NewService(
	groups Repository,
	projects ProjectRepository,
	students StudentRepository,
	activities activity.Logger,
	logger *slog.Logger,
) *Service {
	return &Service{
		groups:     groups,
		projects:   projects,
		students:   students,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest describes a group creation request.
type CreateRequest struct {
	Name        string `json:"name" validate:"notblank,max=120,plaintext"`
	Description string `json:"description" validate:"max=2000,plaintext"`
	ProjectID   string `json:"project_id" validate:"notblank"`
	LeaderID    string `json:"leader_id" validate:"notblank"`
}

// UpdateRequest carries the fields to change; nil fields are preserved.
type UpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=120,plaintext"`
	Description *string `json:"description" validate:"omitempty,max=2000,plaintext"`
	Progress    *int    `json:"progress" validate:"omitempty,min=0,max=100"`
}

// Create creates a group whose only member is its leader.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Group, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	proj, err := s.projects.Get(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	leader, err := s.student(ctx, req.LeaderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	g := &Group{
		ID:           uuid.NewString(),
		Name:         validate.Text(req.Name),
		Description:  validate.Text(req.Description),
		ProjectID:    proj.ID,
		ProjectTitle: proj.Title,
		Members:      []Member{memberFrom(*leader, RoleLeader)},
		Progress:     0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.groups.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	s.record(ctx, g, activity.TypeGroupCreated, fmt.Sprintf("created group %q", g.Name))
	return g, nil
}

// Get fetches a group by ID.
func (s *Service) Get(ctx context.Context, id string) (*Group, error) {
	g, err := s.groups.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("getting group: %w", err)
	}
	return g, nil
}

// List returns the groups matching opts.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	return Filter(groups, opts), nil
}

// Update merges name, description and progress into the group.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Group, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, activity.TypeGroupUpdated, func(g *Group) (string, error) {
		if req.Name != nil {
			g.Name = validate.Text(*req.Name)
		}
		if req.Description != nil {
			g.Description = validate.Text(*req.Description)
		}
		if req.Progress != nil {
			g.Progress = *req.Progress
		}
		return fmt.Sprintf("updated group %q", g.Name), nil
	})
}

// Delete removes a group. Tasks pointing at it are left in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	g, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("deleting group: %w", err)
	}
	s.record(ctx, g, activity.TypeGroupDeleted, fmt.Sprintf("deleted group %q", g.Name))
	return nil
}

// AddMember adds an existing student to the group as a regular member.
func (s *Service) AddMember(ctx context.Context, groupID, studentID string) (*Group, error) {
	if _, err := s.Get(ctx, groupID); err != nil {
		return nil, err
	}
	st, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, groupID, activity.TypeMemberAdded, func(g *Group) (string, error) {
		members, err := WithMember(g.Members, memberFrom(*st, RoleMember))
		if err != nil {
			return "", err
		}
		g.Members = members
		return fmt.Sprintf("added %s to group %q", st.Name, g.Name), nil
	})
}

// RemoveMember removes a regular member. The leader and the last member
// cannot be removed.
func (s *Service) RemoveMember(ctx context.Context, groupID, memberID string) (*Group, error) {
	return s.mutate(ctx, groupID, activity.TypeMemberRemoved, func(g *Group) (string, error) {
		members, err := WithoutMember(g.Members, memberID)
		if err != nil {
			return "", err
		}
		g.Members = members
		return fmt.Sprintf("removed %s from group %q", memberID, g.Name), nil
	})
}

// ChangeLeader makes an existing member the leader and demotes the previous one.
func (s *Service) ChangeLeader(ctx context.Context, groupID, newLeaderID string) (*Group, error) {
	return s.mutate(ctx, groupID, activity.TypeLeaderChanged, func(g *Group) (string, error) {
		members, err := WithLeader(g.Members, newLeaderID)
		if err != nil {
			return "", err
		}
		g.Members = members
		return fmt.Sprintf("%s now leads group %q", newLeaderID, g.Name), nil
	})
}

// AvailableStudents lists students that can join the group. An empty
// groupID returns the whole pool.
func (s *Service) AvailableStudents(ctx context.Context, groupID string) ([]student.Student, error) {
	pool, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	if groupID == "" {
		return pool, nil
	}
	g, err := s.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := make([]student.Student, 0, len(pool))
	for _, st := range pool {
		if !g.HasMember(st.ID) {
			out = append(out, st)
		}
	}
	return out, nil
}

// CountMembers returns the number of distinct students across the
// project's groups.
func (s *Service) CountMembers(ctx context.Context, projectID string) (int, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing groups: %w", err)
	}
	seen := make(map[string]struct{})
	for _, g := range groups {
		if g.ProjectID != projectID {
			continue
		}
		for _, m := range g.Members {
			seen[m.ID] = struct{}{}
		}
	}
	return len(seen), nil
}

// mutate reloads the group, applies fn to a copy and persists the copy in one
// repository write. A failing fn leaves storage untouched.
func (s *Service) mutate(ctx context.Context, id string, typ activity.ActivityType, fn func(*Group) (string, error)) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *current
	summary, err := fn(&updated)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.groups.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("updating group: %w", err)
	}

	s.record(ctx, &updated, typ, summary)
	return &updated, nil
}

func (s *Service) student(ctx context.Context, id string) (*student.Student, error) {
	st, err := s.students.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, student.ErrStudentNotFound
		}
		return nil, fmt.Errorf("loading student: %w", err)
	}
	return st, nil
}

func memberFrom(st student.Student, r MemberRole) Member {
	return Member{ID: st.ID, Name: st.Name, Email: st.Email, Role: r, Avatar: st.Avatar}
}

func (s *Service) record(ctx context.Context, g *Group, typ activity.ActivityType, summary string) {
	if s.logger != nil {
		s.logger.Debug("group mutation", "type", typ, "group_id", g.ID)
	}
	activity.Record(ctx, s.activities, s.logger, activity.ActivityEntry{
		ProjectID:    g.ProjectID,
		EntityType:   activity.EntityGroup,
		EntityID:     g.ID,
		ActivityType: typ,
		Summary:      summary,
	})
}
