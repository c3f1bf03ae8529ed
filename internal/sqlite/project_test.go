package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/repository"
	"github.com/stretchr/testify/require"
)

func newProject(id string) *project.Project {
	now := time.Now().UTC().Truncate(time.Second)
	return &project.Project{
		ID:          id,
		Title:       "Machine Learning for Healthcare",
		Description: "Applying ML algorithms to healthcare data",
		MentorID:    "mentor-1",
		MentorName:  "Dr. Alan Smith",
		Status:      project.StatusOpen,
		Tags:        []string{"Machine Learning", "Healthcare"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestProjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newProject("p1")
	require.NoError(t, repo.Create(ctx, proj))

	retrieved, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, proj.Title, retrieved.Title)
	require.Equal(t, proj.Tags, retrieved.Tags)
	require.Equal(t, project.StatusOpen, retrieved.Status)
	require.True(t, proj.CreatedAt.Equal(retrieved.CreatedAt))

	require.ErrorIs(t, repo.Create(ctx, proj), repository.ErrConflict)
}

func TestProjectRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_UpdateDelete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newProject("p1")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Status = project.StatusInProgress
	proj.Progress = 60
	proj.Tags = nil
	require.NoError(t, repo.Update(ctx, proj))

	retrieved, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 60, retrieved.Progress)
	require.Empty(t, retrieved.Tags)

	require.NoError(t, repo.Delete(ctx, "p1"))
	require.ErrorIs(t, repo.Delete(ctx, "p1"), repository.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, proj), repository.ErrNotFound)
}

func TestProjectRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProject("p2")))
	require.NoError(t, repo.Create(ctx, newProject("p1")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "p2", list[0].ID)
}
