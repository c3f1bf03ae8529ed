// Package report aggregates tasks into the dashboard progress overview.
package report

import (
	"fmt"
	"time"

	"github.com/rpggio/academe/internal/domain/task"
)

// Compute builds a live report from tasks. The weekly series covers the
// WeekCount weeks ending with the week containing now; weeks start on Monday
// in UTC.
func Compute(tasks []task.Task, opts Options, now time.Time) Report {
	scoped := task.Filter(tasks, task.ListOptions{ProjectID: opts.ProjectID, GroupID: opts.GroupID})

	counts := make(map[task.Status]int, len(labels))
	for _, t := range scoped {
		counts[t.Status]++
	}

	r := Report{
		Mode:      ModeLive,
		ProjectID: opts.ProjectID,
		GroupID:   opts.GroupID,
		Total:     len(scoped),
		Buckets:   make([]Bucket, 0, len(labels)),
		Weeks:     make([]Week, WeekCount),
	}
	for _, s := range task.Statuses() {
		r.Buckets = append(r.Buckets, Bucket{Status: s, Label: labels[s], Count: counts[s]})
	}
	if r.Total > 0 {
		r.Completion = counts[task.StatusCompleted] * 100 / r.Total
	}

	first := startOfWeek(now).AddDate(0, 0, -7*(WeekCount-1))
	for i := range r.Weeks {
		r.Weeks[i] = Week{Name: fmt.Sprintf("Week %d", i+1), Start: first.AddDate(0, 0, 7*i)}
	}
	for _, t := range scoped {
		if t.DueDate.IsZero() {
			continue
		}
		due := t.DueDate.UTC()
		if due.Before(first) {
			continue
		}
		i := int(due.Sub(first).Hours() / (24 * 7))
		if i >= WeekCount {
			continue
		}
		r.Weeks[i].Planned++
		if t.Status == task.StatusCompleted {
			r.Weeks[i].Actual++
		}
	}
	return r
}

// Static returns the fixed snapshot the dashboard shipped with, regardless
// of the stored tasks.
func Static(opts Options) Report {
	fixed := map[task.Status]int{
		task.StatusTodo:       4,
		task.StatusInProgress: 8,
		task.StatusReview:     3,
		task.StatusCompleted:  12,
	}
	r := Report{
		Mode:       ModeStatic,
		ProjectID:  opts.ProjectID,
		GroupID:    opts.GroupID,
		Total:      27,
		Completion: 44,
		Buckets:    make([]Bucket, 0, len(fixed)),
		Weeks: []Week{
			{Name: "Week 1", Planned: 5, Actual: 4},
			{Name: "Week 2", Planned: 8, Actual: 7},
			{Name: "Week 3", Planned: 10, Actual: 6},
			{Name: "Week 4", Planned: 12, Actual: 10},
		},
	}
	for _, s := range task.Statuses() {
		r.Buckets = append(r.Buckets, Bucket{Status: s, Label: labels[s], Count: fixed[s]})
	}
	return r
}

func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
