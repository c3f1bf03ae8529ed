package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id string) error
}

// MemberCounter counts the distinct students across a project's groups.
type MemberCounter interface {
	CountMembers(ctx context.Context, projectID string) (int, error)
}
