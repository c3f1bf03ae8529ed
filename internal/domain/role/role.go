// Package role maps a user's role to the actions they may perform.
package role

import "strings"

// Role is the closed set of dashboard roles.
type Role string

const (
	Mentor  Role = "mentor"
	Leader  Role = "leader"
	Student Role = "student"
)

// Parse converts a role string. Unknown values fall back to Student, the
// most restrictive role.
func Parse(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case Mentor:
		return Mentor
	case Leader:
		return Leader
	default:
		return Student
	}
}

// Actor is the user an operation is performed on behalf of.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role Role   `json:"role"`
}

// Capabilities lists what a role may do.
type Capabilities struct {
	View             bool `json:"view"`
	CreateProject    bool `json:"create_project"`
	EditOwnProject   bool `json:"edit_own_project"`
	DeleteOwnProject bool `json:"delete_own_project"`
	CreateTask       bool `json:"create_task"`
	EditTask         bool `json:"edit_task"`
	DeleteTask       bool `json:"delete_task"`
	ManageGroups     bool `json:"manage_groups"`
}

var capabilityTable = map[Role]Capabilities{
	Mentor: {
		View:             true,
		CreateProject:    true,
		EditOwnProject:   true,
		DeleteOwnProject: true,
		CreateTask:       true,
		EditTask:         true,
		DeleteTask:       true,
		ManageGroups:     true,
	},
	Leader: {
		View:         true,
		CreateTask:   true,
		EditTask:     true,
		DeleteTask:   true,
		ManageGroups: true,
	},
	Student: {
		View: true,
	},
}

// CapabilitiesFor returns the capability row for r.
func CapabilitiesFor(r Role) Capabilities {
	return capabilityTable[Parse(string(r))]
}

// Capabilities returns the capability row for the actor's role.
func (a Actor) Capabilities() Capabilities {
	return CapabilitiesFor(a.Role)
}

// CanCreateProject reports whether the actor may create projects.
func CanCreateProject(a Actor) bool {
	return a.Capabilities().CreateProject
}

// CanEditProject reports whether the actor may edit the project owned by mentorID.
func CanEditProject(a Actor, mentorID string) bool {
	return a.Capabilities().EditOwnProject && owns(a, mentorID)
}

// CanDeleteProject reports whether the actor may delete the project owned by mentorID.
func CanDeleteProject(a Actor, mentorID string) bool {
	return a.Capabilities().DeleteOwnProject && owns(a, mentorID)
}

// CanManageTasks reports whether the actor may create, edit and delete tasks.
func CanManageTasks(a Actor) bool {
	c := a.Capabilities()
	return c.CreateTask && c.EditTask && c.DeleteTask
}

// CanManageGroups reports whether the actor may create groups and change membership.
func CanManageGroups(a Actor) bool {
	return a.Capabilities().ManageGroups
}

func owns(a Actor, mentorID string) bool {
	return a.ID != "" && a.ID == mentorID
}

// Entity names the kind of record an ActionSet is computed for.
type Entity string

const (
	EntityProject Entity = "project"
	EntityGroup   Entity = "group"
	EntityTask    Entity = "task"
)

// ActionSet is the create/edit/delete visibility for one entity.
type ActionSet struct {
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// Permissions returns which actions the actor sees for an entity. ownerID is
// the project's mentor ID and is ignored for groups and tasks.
func Permissions(a Actor, entity Entity, ownerID string) ActionSet {
	c := a.Capabilities()
	switch entity {
	case EntityProject:
		return ActionSet{
			Create: c.CreateProject,
			Edit:   CanEditProject(a, ownerID),
			Delete: CanDeleteProject(a, ownerID),
		}
	case EntityTask:
		return ActionSet{Create: c.CreateTask, Edit: c.EditTask, Delete: c.DeleteTask}
	case EntityGroup:
		return ActionSet{Create: c.ManageGroups, Edit: c.ManageGroups, Delete: c.ManageGroups}
	default:
		return ActionSet{}
	}
}
