package group

import "github.com/rpggio/academe/internal/domain/filter"

// ListOptions narrows a group listing. ProjectID "all" or "" disables the
// project filter.
type ListOptions struct {
	Search    string
	ProjectID string
}

// Filter returns the groups matching opts. Search covers name and description.
func Filter(groups []Group, opts ListOptions) []Group {
	return filter.Apply(groups, func(g Group) bool {
		return filter.Selects(opts.ProjectID, g.ProjectID) &&
			filter.Matches(opts.Search, g.Name, g.Description)
	})
}
