package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/academe/internal/domain/task"
	"github.com/rpggio/academe/internal/repository"
)

// TaskRepository implements task.Repository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, description, status, priority, due_date, project_id, project_title,
	group_id, group_name, created_at, updated_at, completed_at`

// Create inserts a task with its assignees
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.ProjectID, t.ProjectTitle,
			t.GroupID, t.GroupName, t.CreatedAt, t.UpdatedAt, completedAt(t),
		)
		if err != nil {
			return insertErr(err, "task")
		}
		return insertAssignees(ctx, tx, t.ID, t.Assignees)
	})
}

// Get retrieves a task and its assignees
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	assignees, err := r.assignees(ctx, `WHERE task_id = ?`, id)
	if err != nil {
		return nil, err
	}
	t.Assignees = orEmpty(assignees[id])
	return t, nil
}

// List returns every task with assignees, in insertion order
func (r *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	rows.Close()

	assignees, err := r.assignees(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Assignees = orEmpty(assignees[tasks[i].ID])
	}
	return tasks, nil
}

// Update replaces the task row and its assignees atomically
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE tasks
			SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, project_id = ?,
				project_title = ?, group_id = ?, group_name = ?, updated_at = ?, completed_at = ?
			WHERE id = ?`,
			t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.ProjectID,
			t.ProjectTitle, t.GroupID, t.GroupName, t.UpdatedAt, completedAt(t), t.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		if err := affected(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = ?`, t.ID); err != nil {
			return fmt.Errorf("failed to clear task assignees: %w", err)
		}
		return insertAssignees(ctx, tx, t.ID, t.Assignees)
	})
}

// Delete removes a task; its assignee rows cascade
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return affected(res)
}

func (r *TaskRepository) assignees(ctx context.Context, where string, args ...any) (map[string][]task.Assignee, error) {
	query := `SELECT task_id, student_id, name, avatar FROM task_assignees ` + where + ` ORDER BY task_id, position`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list task assignees: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]task.Assignee)
	for rows.Next() {
		var taskID string
		var a task.Assignee
		if err := rows.Scan(&taskID, &a.ID, &a.Name, &a.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan task assignee: %w", err)
		}
		out[taskID] = append(out[taskID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task assignee rows: %w", err)
	}
	return out, nil
}

func insertAssignees(ctx context.Context, tx *sql.Tx, taskID string, assignees []task.Assignee) error {
	for i, a := range assignees {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO task_assignees (task_id, student_id, name, avatar, position) VALUES (?, ?, ?, ?, ?)`,
			taskID, a.ID, a.Name, a.Avatar, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert task assignee: %w", err)
		}
	}
	return nil
}

func scanTask(row scanner) (*task.Task, error) {
	var t task.Task
	var completed sql.NullTime
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.ProjectID,
		&t.ProjectTitle,
		&t.GroupID,
		&t.GroupName,
		&t.CreatedAt,
		&t.UpdatedAt,
		&completed,
	); err != nil {
		return nil, err
	}
	if completed.Valid {
		at := completed.Time
		t.CompletedAt = &at
	}
	return &t, nil
}

func completedAt(t *task.Task) sql.NullTime {
	if t.CompletedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t.CompletedAt, Valid: true}
}

func orEmpty(a []task.Assignee) []task.Assignee {
	if a == nil {
		return []task.Assignee{}
	}
	return a
}
