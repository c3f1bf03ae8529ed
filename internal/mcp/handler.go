package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/rpggio/academe/internal/domain/activity"
	"github.com/rpggio/academe/internal/domain/apperr"
	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/report"
	"github.com/rpggio/academe/internal/domain/role"
	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/domain/task"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context, opts project.ListOptions) ([]project.Project, error)
	Update(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

// GroupService defines group operations needed by MCP.
type GroupService interface {
	Create(ctx context.Context, req group.CreateRequest) (*group.Group, error)
	Get(ctx context.Context, id string) (*group.Group, error)
	List(ctx context.Context, opts group.ListOptions) ([]group.Group, error)
	Update(ctx context.Context, id string, req group.UpdateRequest) (*group.Group, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, groupID, studentID string) (*group.Group, error)
	RemoveMember(ctx context.Context, groupID, memberID string) (*group.Group, error)
	ChangeLeader(ctx context.Context, groupID, newLeaderID string) (*group.Group, error)
	AvailableStudents(ctx context.Context, groupID string) ([]student.Student, error)
}

// TaskService defines task operations needed by MCP.
type TaskService interface {
	Create(ctx context.Context, req task.CreateRequest) (*task.Task, error)
	Get(ctx context.Context, id string) (*task.Task, error)
	List(ctx context.Context, opts task.ListOptions) ([]task.Task, error)
	Update(ctx context.Context, id string, req task.UpdateRequest) (*task.Task, error)
	Move(ctx context.Context, id string, status task.Status) (*task.Task, error)
	Delete(ctx context.Context, id string) error
}

// StudentService defines student lookups needed by MCP.
type StudentService interface {
	List(ctx context.Context, search string) ([]student.Student, error)
}

// ReportService produces progress reports.
type ReportService interface {
	Progress(ctx context.Context, opts report.Options) (*report.Report, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Groups   GroupService
	Tasks    TaskService
	Students StudentService
	Reports  ReportService
	Activity ActivityService
}

type method func(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error)

// Handler dispatches named methods to domain services after checking the
// actor's role. Both the MCP tools and the JSON-RPC endpoint go through it.
type Handler struct {
	svc     Services
	logger  *slog.Logger
	methods map[string]method
}

const defaultActivityLimit = 50

// NewHandler creates a new MCP handler.
func NewHandler(svc Services, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	h.methods = map[string]method{
		"list_projects":       h.listProjects,
		"get_project":         h.getProject,
		"create_project":      h.createProject,
		"update_project":      h.updateProject,
		"delete_project":      h.deleteProject,
		"list_groups":         h.listGroups,
		"get_group":           h.getGroup,
		"create_group":        h.createGroup,
		"update_group":        h.updateGroup,
		"delete_group":        h.deleteGroup,
		"add_group_member":    h.addGroupMember,
		"remove_group_member": h.removeGroupMember,
		"change_group_leader": h.changeGroupLeader,
		"available_students":  h.availableStudents,
		"list_students":       h.listStudents,
		"list_tasks":          h.listTasks,
		"get_task":            h.getTask,
		"create_task":         h.createTask,
		"update_task":         h.updateTask,
		"move_task":           h.moveTask,
		"delete_task":         h.deleteTask,
		"task_board":          h.taskBoard,
		"progress_report":     h.progressReport,
		"permissions":         h.permissions,
		"recent_activity":     h.recentActivity,
	}
	return h
}

// Methods lists the method names the handler serves, sorted.
func (h *Handler) Methods() []string {
	names := make([]string, 0, len(h.methods))
	for name := range h.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle runs method on behalf of actor. Domain errors come back as *APIError.
func (h *Handler) Handle(ctx context.Context, actor role.Actor, name string, params json.RawMessage) (any, error) {
	m, ok := h.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	actor.Role = role.Parse(string(actor.Role))
	ctx = role.WithActor(ctx, actor)

	result, err := m(ctx, actor, params)
	if err != nil {
		if h.logger != nil {
			h.logger.Debug("method failed", "method", name, "actor_id", actor.ID, "role", actor.Role, "error", err)
		}
		return nil, mapError(err)
	}
	return result, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	return nil
}

// Projects

func (h *Handler) listProjects(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req ListProjectsParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Projects.List(ctx, project.ListOptions{Search: req.Search, Status: req.Status})
}

func (h *Handler) getProject(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req IDParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Projects.Get(ctx, req.ID)
}

func (h *Handler) createProject(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanCreateProject(actor) {
		return nil, forbidden("create projects")
	}
	var req CreateProjectParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Projects.Create(ctx, project.CreateRequest{
		Title:          req.Title,
		Description:    req.Description,
		Tags:           req.Tags,
		MentorID:       actor.ID,
		MentorName:     actor.Name,
		TeamLeaderID:   req.TeamLeaderID,
		TeamLeaderName: req.TeamLeaderName,
	})
}

func (h *Handler) updateProject(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	var req UpdateProjectParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	current, err := h.svc.Projects.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !role.CanEditProject(actor, current.MentorID) {
		return nil, forbidden("edit this project")
	}
	return h.svc.Projects.Update(ctx, req.ID, project.UpdateRequest{
		Title:          req.Title,
		Description:    req.Description,
		Tags:           req.Tags,
		TeamLeaderID:   req.TeamLeaderID,
		TeamLeaderName: req.TeamLeaderName,
		Status:         req.Status,
		Progress:       req.Progress,
	})
}

func (h *Handler) deleteProject(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	var req IDParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	current, err := h.svc.Projects.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !role.CanDeleteProject(actor, current.MentorID) {
		return nil, forbidden("delete this project")
	}
	if err := h.svc.Projects.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return DeletedResponse{ID: req.ID, Deleted: true}, nil
}

// Groups

func (h *Handler) listGroups(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req ListGroupsParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Groups.List(ctx, group.ListOptions{Search: req.Search, ProjectID: req.ProjectID})
}

func (h *Handler) getGroup(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req IDParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Groups.Get(ctx, req.ID)
}

func (h *Handler) createGroup(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageGroups(actor) {
		return nil, forbidden("create groups")
	}
	var req CreateGroupParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Groups.Create(ctx, group.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		LeaderID:    req.LeaderID,
	})
}

func (h *Handler) updateGroup(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageGroups(actor) {
		return nil, forbidden("edit groups")
	}
	var req UpdateGroupParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Groups.Update(ctx, req.ID, group.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
		Progress:    req.Progress,
	})
}

func (h *Handler) deleteGroup(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageGroups(actor) {
		return nil, forbidden("delete groups")
	}
	var req IDParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if err := h.svc.Groups.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return DeletedResponse{ID: req.ID, Deleted: true}, nil
}

func (h *Handler) addGroupMember(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageGroups(actor) {
		return nil, forbidden("change group membership")
	}
	var req GroupMemberParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Groups.AddMember(ctx, req.GroupID, req.StudentID)
}

func (h *Handler) removeGroupMember(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageGroups(actor) {
		return nil, forbidden("change group membership")
	}
	var req GroupMemberParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Groups.RemoveMember(ctx, req.GroupID, req.StudentID)
}

func (h *Handler) changeGroupLeader(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageGroups(actor) {
		return nil, forbidden("change group leaders")
	}
	var req ChangeLeaderParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Groups.ChangeLeader(ctx, req.GroupID, req.NewLeaderID)
}

func (h *Handler) availableStudents(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req AvailableStudentsParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Groups.AvailableStudents(ctx, req.GroupID)
}

func (h *Handler) listStudents(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req ListStudentsParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Students.List(ctx, req.Search)
}

// Tasks

func (h *Handler) listTasks(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req ListTasksParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Tasks.List(ctx, task.ListOptions{
		Search:    req.Search,
		Status:    req.Status,
		ProjectID: req.ProjectID,
		GroupID:   req.GroupID,
	})
}

func (h *Handler) getTask(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req IDParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Tasks.Get(ctx, req.ID)
}

func (h *Handler) createTask(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageTasks(actor) {
		return nil, forbidden("create tasks")
	}
	var req CreateTaskParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Tasks.Create(ctx, task.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		GroupID:     req.GroupID,
		AssigneeIDs: req.AssigneeIDs,
	})
}

func (h *Handler) updateTask(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageTasks(actor) {
		return nil, forbidden("edit tasks")
	}
	var req UpdateTaskParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Tasks.Update(ctx, req.ID, task.UpdateRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		GroupID:     req.GroupID,
		AssigneeIDs: req.AssigneeIDs,
	})
}

func (h *Handler) moveTask(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageTasks(actor) {
		return nil, forbidden("move tasks")
	}
	var req MoveTaskParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Tasks.Move(ctx, req.ID, req.Status)
}

func (h *Handler) deleteTask(ctx context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	if !role.CanManageTasks(actor) {
		return nil, forbidden("delete tasks")
	}
	var req IDParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if err := h.svc.Tasks.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return DeletedResponse{ID: req.ID, Deleted: true}, nil
}

func (h *Handler) taskBoard(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req ListTasksParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	tasks, err := h.svc.Tasks.List(ctx, task.ListOptions{
		Search:    req.Search,
		ProjectID: req.ProjectID,
		GroupID:   req.GroupID,
	})
	if err != nil {
		return nil, err
	}
	return task.Board(tasks), nil
}

// Reporting

func (h *Handler) progressReport(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req ProgressReportParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Reports.Progress(ctx, report.Options{ProjectID: req.ProjectID, GroupID: req.GroupID})
}

func (h *Handler) permissions(_ context.Context, actor role.Actor, params json.RawMessage) (any, error) {
	var req PermissionsParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	resp := PermissionsResponse{Actor: actor, Capabilities: actor.Capabilities()}
	switch req.Entity {
	case "":
	case role.EntityProject, role.EntityGroup, role.EntityTask:
		actions := role.Permissions(actor, req.Entity, req.OwnerID)
		resp.Actions = &actions
	default:
		return nil, fmt.Errorf("%w: unknown entity %q", apperr.ErrInvalidInput, req.Entity)
	}
	return resp, nil
}

func (h *Handler) recentActivity(ctx context.Context, _ role.Actor, params json.RawMessage) (any, error) {
	var req RecentActivityParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if req.Limit <= 0 {
		req.Limit = defaultActivityLimit
	}
	return h.svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{
		ProjectID:    req.ProjectID,
		EntityID:     req.EntityID,
		ActivityType: req.Type,
		Limit:        req.Limit,
		Offset:       req.Offset,
	})
}
