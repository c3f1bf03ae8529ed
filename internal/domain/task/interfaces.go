package task

import (
	"context"

	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/student"
)

// Repository provides persistence for tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository resolves a task's project title.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// GroupRepository resolves a task's group name.
type GroupRepository interface {
	Get(ctx context.Context, id string) (*group.Group, error)
}

// StudentRepository resolves assignees.
type StudentRepository interface {
	Get(ctx context.Context, id string) (*student.Student, error)
}
