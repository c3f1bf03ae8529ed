package memstore

import (
	"context"

	"github.com/rpggio/academe/internal/domain/activity"
)

// ActivityRepository implements activity.Repository.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates an activity repository.
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}
	t := r.db.activity
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	entry.ID = t.nextID
	t.entries = append(t.entries, *entry)
	return nil
}

// List returns matching entries newest first.
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}
	t := r.db.activity
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []activity.ActivityEntry{}
	skipped := 0
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if opts.ProjectID != "" && e.ProjectID != opts.ProjectID {
			continue
		}
		if opts.EntityID != nil && e.EntityID != *opts.EntityID {
			continue
		}
		if opts.ActivityType != nil && e.ActivityType != *opts.ActivityType {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}
