package mcp

import (
	"github.com/rpggio/academe/internal/domain/activity"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/role"
	"github.com/rpggio/academe/internal/domain/task"
)

type IDParams struct {
	ID string `json:"id" jsonschema:"entity ID"`
}

type ListProjectsParams struct {
	Search string `json:"search,omitempty" jsonschema:"case-insensitive match on title, description and tags"`
	Status string `json:"status,omitempty" jsonschema:"open, in-progress, completed or all"`
}

type CreateProjectParams struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	TeamLeaderID   string   `json:"team_leader_id,omitempty"`
	TeamLeaderName string   `json:"team_leader_name,omitempty"`
}

type UpdateProjectParams struct {
	ID             string          `json:"id"`
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Tags           *[]string       `json:"tags,omitempty"`
	TeamLeaderID   *string         `json:"team_leader_id,omitempty"`
	TeamLeaderName *string         `json:"team_leader_name,omitempty"`
	Status         *project.Status `json:"status,omitempty" jsonschema:"open, in-progress or completed"`
	Progress       *int            `json:"progress,omitempty" jsonschema:"percentage from 0 to 100"`
}

type ListGroupsParams struct {
	Search    string `json:"search,omitempty" jsonschema:"case-insensitive match on name and description"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"project ID or all"`
}

type CreateGroupParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"project_id"`
	LeaderID    string `json:"leader_id" jsonschema:"student who leads the group and becomes its first member"`
}

type UpdateGroupParams struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Progress    *int    `json:"progress,omitempty" jsonschema:"percentage from 0 to 100"`
}

type GroupMemberParams struct {
	GroupID   string `json:"group_id"`
	StudentID string `json:"student_id"`
}

type ChangeLeaderParams struct {
	GroupID     string `json:"group_id"`
	NewLeaderID string `json:"new_leader_id" jsonschema:"ID of an existing member"`
}

type AvailableStudentsParams struct {
	GroupID string `json:"group_id,omitempty" jsonschema:"omit to list the whole student pool"`
}

type ListStudentsParams struct {
	Search string `json:"search,omitempty" jsonschema:"case-insensitive match on name and email"`
}

type ListTasksParams struct {
	Search    string `json:"search,omitempty" jsonschema:"case-insensitive match on title and description"`
	Status    string `json:"status,omitempty" jsonschema:"todo, in-progress, review, completed or all"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"project ID or all"`
	GroupID   string `json:"group_id,omitempty" jsonschema:"group ID or all"`
}

type CreateTaskParams struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      task.Status   `json:"status,omitempty" jsonschema:"defaults to todo"`
	Priority    task.Priority `json:"priority,omitempty" jsonschema:"low, medium or high; defaults to medium"`
	DueDate     string        `json:"due_date" jsonschema:"YYYY-MM-DD or RFC 3339 timestamp"`
	ProjectID   string        `json:"project_id,omitempty"`
	GroupID     string        `json:"group_id,omitempty"`
	AssigneeIDs []string      `json:"assignee_ids,omitempty"`
}

type UpdateTaskParams struct {
	ID          string         `json:"id"`
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *task.Status   `json:"status,omitempty"`
	Priority    *task.Priority `json:"priority,omitempty"`
	DueDate     *string        `json:"due_date,omitempty"`
	ProjectID   *string        `json:"project_id,omitempty" jsonschema:"empty string detaches the task"`
	GroupID     *string        `json:"group_id,omitempty" jsonschema:"empty string detaches the task"`
	AssigneeIDs *[]string      `json:"assignee_ids,omitempty"`
}

type MoveTaskParams struct {
	ID     string      `json:"id"`
	Status task.Status `json:"status" jsonschema:"todo, in-progress, review or completed"`
}

type ProgressReportParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"project ID or all"`
	GroupID   string `json:"group_id,omitempty" jsonschema:"group ID or all"`
}

type PermissionsParams struct {
	Entity  role.Entity `json:"entity,omitempty" jsonschema:"project, group or task; omit for capabilities only"`
	OwnerID string      `json:"owner_id,omitempty" jsonschema:"mentor ID of the project being checked"`
}

type RecentActivityParams struct {
	ProjectID string                 `json:"project_id,omitempty"`
	EntityID  *string                `json:"entity_id,omitempty"`
	Type      *activity.ActivityType `json:"type,omitempty"`
	Limit     int                    `json:"limit,omitempty"`
	Offset    int                    `json:"offset,omitempty"`
}

// PermissionsResponse describes what the calling actor may do.
type PermissionsResponse struct {
	Actor        role.Actor        `json:"actor"`
	Capabilities role.Capabilities `json:"capabilities"`
	Actions      *role.ActionSet   `json:"actions,omitempty"`
}

// DeletedResponse acknowledges a delete.
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
