package task

import "time"

// Status is the board column a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in board order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusReview, StatusCompleted}
}

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Assignee is a student working on a task.
type Assignee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Task is a unit of work, optionally scoped to a project and group.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       Status     `json:"status"`
	Priority     Priority   `json:"priority"`
	DueDate      time.Time  `json:"due_date"`
	ProjectID    string     `json:"project_id,omitempty"`
	ProjectTitle string     `json:"project_title,omitempty"`
	GroupID      string     `json:"group_id,omitempty"`
	GroupName    string     `json:"group_name,omitempty"`
	Assignees    []Assignee `json:"assignees"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// setStatus moves the task and keeps CompletedAt in step with the status.
func (t *Task) setStatus(s Status, now time.Time) {
	if s == StatusCompleted && t.Status != StatusCompleted {
		completed := now
		t.CompletedAt = &completed
	}
	if s != StatusCompleted {
		t.CompletedAt = nil
	}
	t.Status = s
}
