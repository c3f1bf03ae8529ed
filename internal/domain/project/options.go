package project

import "github.com/rpggio/academe/internal/domain/filter"

// ListOptions narrows a project listing. Status "all" or "" disables the
// status filter.
type ListOptions struct {
	Search string
	Status string
}

// Filter returns the projects matching opts. Search covers title,
// description and tags.
func Filter(projects []Project, opts ListOptions) []Project {
	return filter.Apply(projects, func(p Project) bool {
		if !filter.Selects(opts.Status, string(p.Status)) {
			return false
		}
		fields := append([]string{p.Title, p.Description}, p.Tags...)
		return filter.Matches(opts.Search, fields...)
	})
}
