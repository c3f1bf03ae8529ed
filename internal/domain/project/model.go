package project

import "time"

// Status is the lifecycle stage of a project.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Project is a piece of academic work supervised by a mentor.
type Project struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	MentorID       string    `json:"mentor_id"`
	MentorName     string    `json:"mentor_name,omitempty"`
	TeamLeaderID   string    `json:"team_leader_id,omitempty"`
	TeamLeaderName string    `json:"team_leader_name,omitempty"`
	Members        int       `json:"members"` // derived from the project's groups, never stored
	Status         Status    `json:"status"`
	Progress       int       `json:"progress"`
	Tags           []string  `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
