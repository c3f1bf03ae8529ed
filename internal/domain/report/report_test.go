package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/academe/internal/domain/report"
	"github.com/rpggio/academe/internal/domain/task"
	"github.com/rpggio/academe/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

// Wednesday; the four-week window starts Monday 2024-05-20.
var now = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: "1", Status: task.StatusCompleted, ProjectID: "p1", GroupID: "g1", DueDate: day(2024, 5, 20)},
		{ID: "2", Status: task.StatusInProgress, ProjectID: "p1", GroupID: "g1", DueDate: day(2024, 5, 26)},
		{ID: "3", Status: task.StatusReview, ProjectID: "p1", GroupID: "g2", DueDate: day(2024, 5, 28)},
		{ID: "4", Status: task.StatusCompleted, ProjectID: "p2", DueDate: day(2024, 6, 16)},
		{ID: "5", Status: task.StatusTodo, ProjectID: "p2", DueDate: day(2024, 6, 17)},
		{ID: "6", Status: task.StatusTodo, ProjectID: "p2", DueDate: day(2024, 5, 1)},
	}
}

func TestCompute_LiveBucketsAndCompletion(t *testing.T) {
	r := report.Compute(sampleTasks(), report.Options{}, now)
	require.Equal(t, report.ModeLive, r.Mode)
	require.Equal(t, 6, r.Total)
	require.Equal(t, 33, r.Completion)

	counts := map[task.Status]int{}
	for _, b := range r.Buckets {
		counts[b.Status] = b.Count
	}
	require.Equal(t, map[task.Status]int{
		task.StatusTodo:       2,
		task.StatusInProgress: 1,
		task.StatusReview:     1,
		task.StatusCompleted:  2,
	}, counts)
	require.Equal(t, "In Review", r.Buckets[2].Label)
}

func TestCompute_LiveWeeklySeries(t *testing.T) {
	r := report.Compute(sampleTasks(), report.Options{}, now)
	require.Len(t, r.Weeks, report.WeekCount)
	require.Equal(t, day(2024, 5, 20), r.Weeks[0].Start)

	require.Equal(t, 2, r.Weeks[0].Planned)
	require.Equal(t, 1, r.Weeks[0].Actual)
	require.Equal(t, 1, r.Weeks[1].Planned)
	require.Zero(t, r.Weeks[2].Planned)
	require.Equal(t, 1, r.Weeks[3].Planned)
	require.Equal(t, 1, r.Weeks[3].Actual)
}

func TestCompute_LiveScoped(t *testing.T) {
	r := report.Compute(sampleTasks(), report.Options{ProjectID: "p1", GroupID: "g1"}, now)
	require.Equal(t, 2, r.Total)
	require.Equal(t, 50, r.Completion)

	all := report.Compute(sampleTasks(), report.Options{ProjectID: "all", GroupID: "all"}, now)
	require.Equal(t, 6, all.Total)
}

func TestCompute_LiveEmpty(t *testing.T) {
	r := report.Compute(nil, report.Options{}, now)
	require.Zero(t, r.Total)
	require.Zero(t, r.Completion)
	require.Len(t, r.Buckets, 4)
}

func TestStatic_KeepsFixedSnapshot(t *testing.T) {
	r := report.Static(report.Options{ProjectID: "p1"})
	require.Equal(t, report.ModeStatic, r.Mode)
	require.Equal(t, 44, r.Completion)
	require.Equal(t, 12, r.Buckets[3].Count)
	require.Equal(t, report.Week{Name: "Week 3", Planned: 10, Actual: 6}, r.Weeks[2])
}

func TestService_StaticIgnoresTasks(t *testing.T) {
	tasks := &mocks.TaskRepository{}
	svc := report.NewService(tasks, report.ModeStatic, nil)

	r, err := svc.Progress(context.Background(), report.Options{})
	require.NoError(t, err)
	require.Equal(t, 4, r.Buckets[0].Count)
	tasks.AssertNotCalled(t, "List")
}

func TestService_LiveReadsTasks(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	tasks.On("List", ctx).Return(sampleTasks(), nil)

	svc := report.NewService(tasks, report.ParseMode("live"), nil)
	r, err := svc.Progress(ctx, report.Options{})
	require.NoError(t, err)
	require.Equal(t, 6, r.Total)
}
