package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/repository"
)

// GroupRepository implements group.Repository for SQLite. Members live in
// group_members and are rewritten with their group in one transaction.
type GroupRepository struct {
	db *DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *DB) *GroupRepository {
	return &GroupRepository{db: db}
}

const groupColumns = `id, name, description, project_id, project_title, progress, created_at, updated_at`

// Create inserts a group with its members
func (r *GroupRepository) Create(ctx context.Context, g *group.Group) error {
	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO study_groups (`+groupColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Name, g.Description, g.ProjectID, g.ProjectTitle, g.Progress, g.CreatedAt, g.UpdatedAt,
		)
		if err != nil {
			return insertErr(err, "group")
		}
		return insertMembers(ctx, tx, g.ID, g.Members)
	})
}

// Get retrieves a group and its members
func (r *GroupRepository) Get(ctx context.Context, id string) (*group.Group, error) {
	g, err := scanGroup(r.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM study_groups WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := r.members(ctx, `WHERE group_id = ?`, id)
	if err != nil {
		return nil, err
	}
	g.Members = members[id]
	if g.Members == nil {
		g.Members = []group.Member{}
	}
	return g, nil
}

// List returns every group with members, in insertion order
func (r *GroupRepository) List(ctx context.Context) ([]group.Group, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+groupColumns+` FROM study_groups ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	groups := []group.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, *g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	rows.Close()

	members, err := r.members(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range groups {
		groups[i].Members = members[groups[i].ID]
		if groups[i].Members == nil {
			groups[i].Members = []group.Member{}
		}
	}
	return groups, nil
}

// Update replaces the group row and its member list atomically
func (r *GroupRepository) Update(ctx context.Context, g *group.Group) error {
	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE study_groups
			SET name = ?, description = ?, project_id = ?, project_title = ?, progress = ?, updated_at = ?
			WHERE id = ?`,
			g.Name, g.Description, g.ProjectID, g.ProjectTitle, g.Progress, g.UpdatedAt, g.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}
		if err := affected(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = ?`, g.ID); err != nil {
			return fmt.Errorf("failed to clear group members: %w", err)
		}
		return insertMembers(ctx, tx, g.ID, g.Members)
	})
}

// Delete removes a group; its member rows cascade
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return affected(res)
}

// members loads member rows keyed by group ID, in join order.
func (r *GroupRepository) members(ctx context.Context, where string, args ...any) (map[string][]group.Member, error) {
	query := `SELECT group_id, student_id, name, email, role, avatar FROM group_members ` + where + ` ORDER BY group_id, position`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]group.Member)
	for rows.Next() {
		var groupID string
		var m group.Member
		if err := rows.Scan(&groupID, &m.ID, &m.Name, &m.Email, &m.Role, &m.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		out[groupID] = append(out[groupID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group member rows: %w", err)
	}
	return out, nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, groupID string, members []group.Member) error {
	for i, m := range members {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO group_members (group_id, student_id, name, email, role, avatar, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			groupID, m.ID, m.Name, m.Email, m.Role, m.Avatar, i,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return repository.ErrConflict
			}
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}
	return nil
}

func scanGroup(row scanner) (*group.Group, error) {
	var g group.Group
	if err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.ProjectID,
		&g.ProjectTitle,
		&g.Progress,
		&g.CreatedAt,
		&g.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &g, nil
}
