package memstore

import (
	"context"

	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/domain/task"
)

// ProjectRepository implements project.Repository.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a project repository.
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.projects.insert(proj.ID, *proj)
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}
	p, err := r.db.projects.get(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}
	return r.db.projects.list(), nil
}

func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.projects.replace(proj.ID, *proj)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.projects.remove(id)
}

// GroupRepository implements group.Repository. Update swaps the whole
// group, members included, under one lock.
type GroupRepository struct {
	db *DB
}

// NewGroupRepository creates a group repository.
func NewGroupRepository(db *DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, g *group.Group) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.groups.insert(g.ID, *g)
}

func (r *GroupRepository) Get(ctx context.Context, id string) (*group.Group, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}
	g, err := r.db.groups.get(id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) List(ctx context.Context) ([]group.Group, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}
	return r.db.groups.list(), nil
}

func (r *GroupRepository) Update(ctx context.Context, g *group.Group) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.groups.replace(g.ID, *g)
}

func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.groups.remove(id)
}

// TaskRepository implements task.Repository.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a task repository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.tasks.insert(t.ID, *t)
}

func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}
	t, err := r.db.tasks.get(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}
	return r.db.tasks.list(), nil
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.tasks.replace(t.ID, *t)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.tasks.remove(id)
}

// StudentRepository implements student.Repository.
type StudentRepository struct {
	db *DB
}

// NewStudentRepository creates a student repository.
func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	return r.db.students.insert(s.ID, *s)
}

func (r *StudentRepository) Get(ctx context.Context, id string) (*student.Student, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}
	s, err := r.db.students.get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) List(ctx context.Context) ([]student.Student, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}
	return r.db.students.list(), nil
}
