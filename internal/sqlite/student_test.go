package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestStudentRepository(t *testing.T) {
	db := NewTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &student.Student{ID: "s2", Name: "Emily Wilson", Email: "emily.wilson@university.edu"}))
	require.NoError(t, repo.Create(ctx, &student.Student{ID: "s1", Name: "John Davis", Email: "john.davis@university.edu"}))
	require.ErrorIs(t, repo.Create(ctx, &student.Student{ID: "s1", Name: "Dup"}), repository.ErrConflict)

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "John Davis", got.Name)

	_, err = repo.Get(ctx, "nobody")
	require.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "s2", list[0].ID)
}
