package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/academe/internal/domain/role"
)

// registerTools exposes every handler method as an MCP tool.
func registerTools(server *sdkmcp.Server, h *Handler) {
	// Projects
	addTool[ListProjectsParams](server, h, "list_projects", "List projects, optionally filtered by search text and status")
	addTool[IDParams](server, h, "get_project", "Get a project by ID, including its derived member count")
	addTool[CreateProjectParams](server, h, "create_project", "Create a project owned by the calling mentor")
	addTool[UpdateProjectParams](server, h, "update_project", "Update fields of a project the caller mentors")
	addTool[IDParams](server, h, "delete_project", "Delete a project the caller mentors; its groups and tasks are kept")

	// Groups
	addTool[ListGroupsParams](server, h, "list_groups", "List groups, optionally filtered by search text and project")
	addTool[IDParams](server, h, "get_group", "Get a group with its ordered member list")
	addTool[CreateGroupParams](server, h, "create_group", "Create a group under a project with the given student as leader")
	addTool[UpdateGroupParams](server, h, "update_group", "Update a group's name, description or progress")
	addTool[IDParams](server, h, "delete_group", "Delete a group")
	addTool[GroupMemberParams](server, h, "add_group_member", "Add a student to a group as a regular member")
	addTool[GroupMemberParams](server, h, "remove_group_member", "Remove a non-leader member from a group")
	addTool[ChangeLeaderParams](server, h, "change_group_leader", "Make an existing member the group leader; the previous leader becomes a member")
	addTool[AvailableStudentsParams](server, h, "available_students", "List students who are not yet members of a group")
	addTool[ListStudentsParams](server, h, "list_students", "List the student pool")

	// Tasks
	addTool[ListTasksParams](server, h, "list_tasks", "List tasks filtered by search text, status, project and group")
	addTool[IDParams](server, h, "get_task", "Get a task by ID")
	addTool[CreateTaskParams](server, h, "create_task", "Create a task, optionally attached to a project, group and assignees")
	addTool[UpdateTaskParams](server, h, "update_task", "Update fields of a task")
	addTool[MoveTaskParams](server, h, "move_task", "Move a task to another status column")
	addTool[IDParams](server, h, "delete_task", "Delete a task")
	addTool[ListTasksParams](server, h, "task_board", "Tasks grouped into todo, in-progress, review and completed columns")

	// Reporting
	addTool[ProgressReportParams](server, h, "progress_report", "Status breakdown, completion rate and four-week planned vs actual series")
	addTool[PermissionsParams](server, h, "permissions", "Show what the calling user may do, optionally for one entity")
	addTool[RecentActivityParams](server, h, "recent_activity", "List recent changes, newest first")
}

func addTool[In any](server *sdkmcp.Server, h *Handler, name, description string) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			params, err := json.Marshal(in)
			if err != nil {
				return nil, nil, fmt.Errorf("encode %s arguments: %w", name, err)
			}
			actor, _ := role.ActorFromContext(ctx)
			result, err := h.Handle(ctx, actor, name, params)
			if err != nil {
				return errorResult(err), nil, nil
			}
			data, err := json.Marshal(result)
			if err != nil {
				return nil, nil, fmt.Errorf("encode %s result: %w", name, err)
			}
			return &sdkmcp.CallToolResult{
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
			}, nil, nil
		})
}

func errorResult(err error) *sdkmcp.CallToolResult {
	text := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if data, mErr := json.Marshal(apiErr); mErr == nil {
			text = string(data)
		}
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
		IsError: true,
	}
}
