package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, description, mentor_id, mentor_name, team_leader_id,
	team_leader_name, status, progress, tags, created_at, updated_at`

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	tags, err := encodeTags(proj.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Title,
		proj.Description,
		proj.MentorID,
		proj.MentorName,
		proj.TeamLeaderID,
		proj.TeamLeaderName,
		proj.Status,
		proj.Progress,
		tags,
		proj.CreatedAt,
		proj.UpdatedAt,
	)
	if err != nil {
		return insertErr(err, "project")
	}
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// List returns all projects in insertion order
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// Update overwrites a project's stored fields
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	tags, err := encodeTags(proj.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET title = ?, description = ?, mentor_id = ?, mentor_name = ?, team_leader_id = ?,
			team_leader_name = ?, status = ?, progress = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		proj.Title,
		proj.Description,
		proj.MentorID,
		proj.MentorName,
		proj.TeamLeaderID,
		proj.TeamLeaderName,
		proj.Status,
		proj.Progress,
		tags,
		proj.UpdatedAt,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return affected(res)
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return affected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*project.Project, error) {
	var proj project.Project
	var tags string
	if err := row.Scan(
		&proj.ID,
		&proj.Title,
		&proj.Description,
		&proj.MentorID,
		&proj.MentorName,
		&proj.TeamLeaderID,
		&proj.TeamLeaderName,
		&proj.Status,
		&proj.Progress,
		&tags,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &proj.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return &proj, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}
