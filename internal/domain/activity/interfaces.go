package activity

import "context"

// Repository provides persistence operations for activity entries.
type Repository interface {
	Log(ctx context.Context, entry *ActivityEntry) error
	List(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error)
}

// Logger is the write half of Repository that domain services depend on.
type Logger interface {
	Log(ctx context.Context, entry *ActivityEntry) error
}
