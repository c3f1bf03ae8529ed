package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeProjectCreated ActivityType = "project_created"
	TypeProjectUpdated ActivityType = "project_updated"
	TypeProjectDeleted ActivityType = "project_deleted"
	TypeGroupCreated   ActivityType = "group_created"
	TypeGroupUpdated   ActivityType = "group_updated"
	TypeGroupDeleted   ActivityType = "group_deleted"
	TypeMemberAdded    ActivityType = "member_added"
	TypeMemberRemoved  ActivityType = "member_removed"
	TypeLeaderChanged  ActivityType = "leader_changed"
	TypeTaskCreated    ActivityType = "task_created"
	TypeTaskUpdated    ActivityType = "task_updated"
	TypeTaskMoved      ActivityType = "task_moved"
	TypeTaskDeleted    ActivityType = "task_deleted"
)

// EntityType names the kind of record an activity refers to.
type EntityType string

const (
	EntityProject EntityType = "project"
	EntityGroup   EntityType = "group"
	EntityTask    EntityType = "task"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    string       `json:"project_id,omitempty"`
	EntityType   EntityType   `json:"entity_type"`
	EntityID     string       `json:"entity_id"`
	ActorID      string       `json:"actor_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
