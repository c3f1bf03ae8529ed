package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/academe/internal/domain/role"
)

const serverInstructions = `academe tracks student projects as Projects, Groups, Tasks and Students.

Model:
- Project: owned by one mentor; status open, in-progress or completed; member count is derived from its groups.
- Group: belongs to a project; ordered members with exactly one leader.
- Task: status todo, in-progress, review or completed; optional project, group and assignees.
- Student: the pool group members and assignees are drawn from.

Roles:
- mentor: everything; may edit or delete only the projects they mentor.
- leader: manage tasks and groups.
- student: read only.

Identity: send _meta.user_id, _meta.user_name and _meta.role with each call, or the X-User-Id, X-User-Name and X-User-Role headers over HTTP. Without either the server's default user is used.

Call permissions first to see what the current user may do. Errors come back as JSON with a code of NOT_FOUND, INVALID_OPERATION, INVALID_INPUT or FORBIDDEN.

Docs:
- academe://docs/guide
- academe://docs/permissions
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "academe://docs/guide",
		Name:        "guide",
		Title:       "academe guide",
		Description: "Common workflows: setting up a project, forming groups, running the task board.",
		Content: `# academe guide

## Setting up a project (mentor)

1. create_project with a title, description and tags. You become its mentor.
2. create_group with the project_id and a leader_id from list_students.
3. available_students for the group, then add_group_member for each student.

## Group leadership

- change_group_leader only accepts a current member. The old leader stays in the group as a member.
- remove_group_member refuses the leader and the last remaining member. Change the leader first.

## Tasks

- create_task needs a title and due_date (YYYY-MM-DD). Status defaults to todo and priority to medium.
- task_board returns the four status columns; move_task moves a card between them.
- Moving a task to completed stamps completed_at; moving it back clears it.

## Reporting

- progress_report gives per-status counts, a completion percentage and a four-week planned vs actual series.
  Scope it with project_id and group_id; "all" or empty means everything.
- recent_activity lists changes newest first, optionally for one project or entity.

## Filters

Search is a case-insensitive substring match. Selectors such as status and project_id accept "all" to disable them.
`,
	},
	{
		URI:         "academe://docs/permissions",
		Name:        "permissions",
		Title:       "Role permissions",
		Description: "What each role may do.",
		Content:     permissionsDoc(),
	},
}

func permissionsDoc() string {
	var b strings.Builder
	b.WriteString("# Role permissions\n\n")
	b.WriteString("| capability | mentor | leader | student |\n|---|---|---|---|\n")

	roles := []role.Role{role.Mentor, role.Leader, role.Student}
	rows := []struct {
		label string
		has   func(role.Capabilities) bool
	}{
		{"view", func(c role.Capabilities) bool { return c.View }},
		{"create project", func(c role.Capabilities) bool { return c.CreateProject }},
		{"edit own project", func(c role.Capabilities) bool { return c.EditOwnProject }},
		{"delete own project", func(c role.Capabilities) bool { return c.DeleteOwnProject }},
		{"create task", func(c role.Capabilities) bool { return c.CreateTask }},
		{"edit task", func(c role.Capabilities) bool { return c.EditTask }},
		{"delete task", func(c role.Capabilities) bool { return c.DeleteTask }},
		{"manage groups", func(c role.Capabilities) bool { return c.ManageGroups }},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s |", row.label)
		for _, r := range roles {
			mark := " "
			if row.has(role.CapabilitiesFor(r)) {
				mark = "yes"
			}
			fmt.Fprintf(&b, " %s |", mark)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nProjects can only be edited or deleted by the mentor whose ID matches the project's mentor_id.\n")
	return b.String()
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
