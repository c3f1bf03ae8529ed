package student_test

import (
	"context"
	"testing"

	"github.com/rpggio/academe/internal/domain/apperr"
	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/repository"
	"github.com/rpggio/academe/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestStudentService_ListSearch(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.StudentRepository{}
	repo.On("List", ctx).Return([]student.Student{
		{ID: "s1", Name: "John Davis", Email: "john.davis@university.edu"},
		{ID: "s2", Name: "Emily Wilson", Email: "emily.wilson@university.edu"},
	}, nil)

	svc := student.NewService(repo, nil)
	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	found, err := svc.List(ctx, "WILSON")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "s2", found[0].ID)
}

func TestStudentService_GetMissing(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.StudentRepository{}
	repo.On("Get", ctx, "nope").Return((*student.Student)(nil), repository.ErrNotFound)

	svc := student.NewService(repo, nil)
	_, err := svc.Get(ctx, "nope")
	require.ErrorIs(t, err, student.ErrStudentNotFound)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
