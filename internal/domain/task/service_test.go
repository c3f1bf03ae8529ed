package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/academe/internal/domain/apperr"
	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/domain/task"
	"github.com/rpggio/academe/internal/repository"
	"github.com/rpggio/academe/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateResolvesReferences(t *testing.T) {
	ctx := context.Background()

	tasks := &mocks.TaskRepository{}
	projects := &mocks.ProjectRepository{}
	groups := &mocks.GroupRepository{}
	students := &mocks.StudentRepository{}

	projects.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", Title: "Machine Learning"}, nil)
	groups.On("Get", ctx, "g1").Return(&group.Group{ID: "g1", Name: "Data Explorers"}, nil)
	students.On("Get", ctx, "s1").Return(&student.Student{ID: "s1", Name: "John Davis"}, nil)
	tasks.On("Create", ctx, mock.Anything).Return(nil)

	svc := task.NewService(tasks, projects, groups, students, nil, nil)
	created, err := svc.Create(ctx, task.CreateRequest{
		Title:       "Literature Review",
		DueDate:     "2024-02-15",
		ProjectID:   "p1",
		GroupID:     "g1",
		AssigneeIDs: []string{"s1", "s1"},
	})
	require.NoError(t, err)
	require.Equal(t, task.StatusTodo, created.Status)
	require.Equal(t, task.PriorityMedium, created.Priority)
	require.Equal(t, "Machine Learning", created.ProjectTitle)
	require.Equal(t, "Data Explorers", created.GroupName)
	require.Equal(t, []task.Assignee{{ID: "s1", Name: "John Davis"}}, created.Assignees)
	require.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), created.DueDate)
	require.Nil(t, created.CompletedAt)
}

func TestTaskService_CreateDanglingAssignee(t *testing.T) {
	ctx := context.Background()

	students := &mocks.StudentRepository{}
	students.On("Get", ctx, "ghost").Return((*student.Student)(nil), repository.ErrNotFound)

	svc := task.NewService(&mocks.TaskRepository{}, nil, nil, students, nil, nil)
	_, err := svc.Create(ctx, task.CreateRequest{Title: "T", DueDate: "2024-02-15", AssigneeIDs: []string{"ghost"}})
	require.ErrorIs(t, err, student.ErrStudentNotFound)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTaskService_CreateBadDueDate(t *testing.T) {
	svc := task.NewService(&mocks.TaskRepository{}, nil, nil, nil, nil, nil)
	_, err := svc.Create(context.Background(), task.CreateRequest{Title: "T", DueDate: "next week"})
	require.ErrorIs(t, err, task.ErrInvalidDueDate)
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestTaskService_CreateCompletedStampsCompletion(t *testing.T) {
	ctx := context.Background()

	tasks := &mocks.TaskRepository{}
	tasks.On("Create", ctx, mock.Anything).Return(nil)

	svc := task.NewService(tasks, nil, nil, nil, nil, nil)
	created, err := svc.Create(ctx, task.CreateRequest{Title: "T", DueDate: "2024-02-15T10:00:00Z", Status: task.StatusCompleted})
	require.NoError(t, err)
	require.NotNil(t, created.CompletedAt)
}

func TestTaskService_MoveTracksCompletion(t *testing.T) {
	ctx := context.Background()

	tasks := &mocks.TaskRepository{}
	activities := &mocks.ActivityRepository{}
	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", Title: "T", Status: task.StatusReview}, nil).Once()
	tasks.On("Update", ctx, mock.Anything).Return(nil)
	activities.On("Log", ctx, mock.Anything).Return(nil)

	svc := task.NewService(tasks, nil, nil, nil, activities, nil)
	moved, err := svc.Move(ctx, "t1", task.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, task.StatusCompleted, moved.Status)
	require.NotNil(t, moved.CompletedAt)

	completedAt := *moved.CompletedAt
	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", Title: "T", Status: task.StatusCompleted, CompletedAt: &completedAt}, nil).Once()
	back, err := svc.Move(ctx, "t1", task.StatusInProgress)
	require.NoError(t, err)
	require.Nil(t, back.CompletedAt)
}

func TestTaskService_MoveRejectsUnknownStatus(t *testing.T) {
	svc := task.NewService(&mocks.TaskRepository{}, nil, nil, nil, nil, nil)
	_, err := svc.Move(context.Background(), "t1", task.Status("done"))
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestTaskService_UpdateDetachesGroup(t *testing.T) {
	ctx := context.Background()

	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(&task.Task{
		ID: "t1", Title: "T", Status: task.StatusTodo, GroupID: "g1", GroupName: "Data Explorers",
		Assignees: []task.Assignee{{ID: "s1"}},
	}, nil)
	tasks.On("Update", ctx, mock.Anything).Return(nil)

	empty := ""
	priority := task.PriorityHigh
	svc := task.NewService(tasks, nil, nil, nil, nil, nil)
	updated, err := svc.Update(ctx, "t1", task.UpdateRequest{GroupID: &empty, Priority: &priority})
	require.NoError(t, err)
	require.Empty(t, updated.GroupID)
	require.Empty(t, updated.GroupName)
	require.Equal(t, task.PriorityHigh, updated.Priority)
	require.Len(t, updated.Assignees, 1)
}

func TestTaskService_DeleteMissing(t *testing.T) {
	ctx := context.Background()

	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "gone").Return((*task.Task)(nil), repository.ErrNotFound)

	svc := task.NewService(tasks, nil, nil, nil, nil, nil)
	require.ErrorIs(t, svc.Delete(ctx, "gone"), task.ErrTaskNotFound)
}
