package report

import (
	"time"

	"github.com/rpggio/academe/internal/domain/task"
)

// Mode selects how a report is produced.
type Mode string

const (
	// ModeLive derives every figure from the task collection.
	ModeLive Mode = "live"
	// ModeStatic returns the fixed dashboard snapshot.
	ModeStatic Mode = "static"
)

// ParseMode maps a config value to a Mode. Anything but "static" is live.
func ParseMode(s string) Mode {
	if Mode(s) == ModeStatic {
		return ModeStatic
	}
	return ModeLive
}

// Bucket counts the tasks in one status.
type Bucket struct {
	Status task.Status `json:"status"`
	Label  string      `json:"label"`
	Count  int         `json:"count"`
}

// Week compares tasks due in one week with how many of them are done.
type Week struct {
	Name    string    `json:"name"`
	Start   time.Time `json:"start,omitzero"`
	Planned int       `json:"planned"`
	Actual  int       `json:"actual"`
}

// Report is the progress overview shown on the dashboard.
type Report struct {
	Mode       Mode     `json:"mode"`
	ProjectID  string   `json:"project_id,omitempty"`
	GroupID    string   `json:"group_id,omitempty"`
	Total      int      `json:"total"`
	Completion int      `json:"completion"`
	Buckets    []Bucket `json:"buckets"`
	Weeks      []Week   `json:"weeks"`
}

// Options scopes a report. "" or "all" means every project or group.
type Options struct {
	ProjectID string `json:"project_id"`
	GroupID   string `json:"group_id"`
}

// WeekCount is the length of the planned-vs-actual series.
const WeekCount = 4

var labels = map[task.Status]string{
	task.StatusTodo:       "Todo",
	task.StatusInProgress: "In Progress",
	task.StatusReview:     "In Review",
	task.StatusCompleted:  "Completed",
}
