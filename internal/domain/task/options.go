package task

import "github.com/rpggio/academe/internal/domain/filter"

// ListOptions narrows a task listing. Each selector is disabled by "all" or "".
type ListOptions struct {
	Search    string
	Status    string
	ProjectID string
	GroupID   string
}

// Filter returns the tasks matching opts. Search covers title and description.
func Filter(tasks []Task, opts ListOptions) []Task {
	return filter.Apply(tasks, func(t Task) bool {
		return filter.Selects(opts.Status, string(t.Status)) &&
			filter.Selects(opts.ProjectID, t.ProjectID) &&
			filter.Selects(opts.GroupID, t.GroupID) &&
			filter.Matches(opts.Search, t.Title, t.Description)
	})
}
