package group

import (
	"context"

	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/student"
)

// Repository provides persistence for groups. Update replaces the whole
// group, members included, atomically.
type Repository interface {
	Create(ctx context.Context, g *Group) error
	Get(ctx context.Context, id string) (*Group, error)
	List(ctx context.Context) ([]Group, error)
	Update(ctx context.Context, g *Group) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository resolves the project a group belongs to.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// StudentRepository resolves students joining a group.
type StudentRepository interface {
	Get(ctx context.Context, id string) (*student.Student, error)
	List(ctx context.Context) ([]student.Student, error)
}
