// Package memstore keeps every collection in process memory. It backs the
// service when no database is configured and in tests.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rpggio/academe/internal/domain/activity"
	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/domain/task"
	"github.com/rpggio/academe/internal/repository"
)

// DB holds one table per entity. Each table has its own lock.
type DB struct {
	latency time.Duration

	projects *table[project.Project]
	groups   *table[group.Group]
	tasks    *table[task.Task]
	students *table[student.Student]
	activity *activityTable
}

// Open creates an empty store. Every repository call sleeps for latency
// before touching data; zero disables the delay.
func Open(latency time.Duration) *DB {
	return &DB{
		latency:  latency,
		projects: newTable(cloneProject),
		groups:   newTable(cloneGroup),
		tasks:    newTable(cloneTask),
		students: newTable(func(s student.Student) student.Student { return s }),
		activity: &activityTable{},
	}
}

// Reset empties every table.
func (db *DB) Reset() {
	db.projects.reset()
	db.groups.reset()
	db.tasks.reset()
	db.students.reset()
	db.activity.reset()
}

// wait simulates a round trip, returning early if ctx is cancelled.
func (db *DB) wait(ctx context.Context) error {
	if db.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(db.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// table stores rows by id and remembers insertion order so listings are
// stable. Values are cloned on the way in and out so callers never share
// slices with the store.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[string]T), clone: clone}
}

func (t *table[T]) insert(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; ok {
		return repository.ErrConflict
	}
	t.rows[id] = t.clone(v)
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return t.clone(v), nil
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

func (t *table[T]) replace(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	t.rows[id] = t.clone(v)
	return nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return nil
}

func (t *table[T]) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = make(map[string]T)
	t.order = nil
}

func cloneProject(p project.Project) project.Project {
	p.Tags = slices.Clone(p.Tags)
	return p
}

func cloneGroup(g group.Group) group.Group {
	g.Members = slices.Clone(g.Members)
	return g
}

func cloneTask(t task.Task) task.Task {
	t.Assignees = slices.Clone(t.Assignees)
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		t.CompletedAt = &completed
	}
	return t
}

// activityTable is an append-only log with sequential ids.
type activityTable struct {
	mu      sync.RWMutex
	entries []activity.ActivityEntry
	nextID  int64
}

func (t *activityTable) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = nil
	t.nextID = 0
}
