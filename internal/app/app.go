// Package app assembles repositories, services and the method handler from
// configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/academe/internal/config"
	"github.com/rpggio/academe/internal/domain/activity"
	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/report"
	"github.com/rpggio/academe/internal/domain/role"
	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/domain/task"
	"github.com/rpggio/academe/internal/mcp"
	"github.com/rpggio/academe/internal/memstore"
	"github.com/rpggio/academe/internal/seed"
	"github.com/rpggio/academe/internal/sqlite"
)

// Repositories is one storage backend.
type Repositories struct {
	Projects project.Repository
	Groups   group.Repository
	Tasks    task.Repository
	Students student.Repository
	Activity activity.Repository
}

// App holds the wired services.
type App struct {
	Services mcp.Services
	Handler  *mcp.Handler
	close    func() error
}

// New opens the configured store, seeds it when asked and wires services.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	repos, closeFn, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Seed {
		if err := seedIfEmpty(ctx, repos); err != nil {
			_ = closeFn()
			return nil, err
		}
	}

	svc := Wire(repos, report.ParseMode(cfg.Report.Mode), logger)
	if logger != nil {
		logger.Info("store ready", "driver", cfg.Store.Driver, "seeded", cfg.Store.Seed, "report_mode", cfg.Report.Mode)
	}
	return &App{
		Services: svc,
		Handler:  mcp.NewHandler(svc, logger),
		close:    closeFn,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// Wire builds every domain service on top of repos.
func Wire(repos Repositories, mode report.Mode, logger *slog.Logger) mcp.Services {
	groups := group.NewService(repos.Groups, repos.Projects, repos.Students, repos.Activity, logger)
	return mcp.Services{
		Projects: project.NewService(repos.Projects, groups, repos.Activity, logger),
		Groups:   groups,
		Tasks:    task.NewService(repos.Tasks, repos.Projects, repos.Groups, repos.Students, repos.Activity, logger),
		Students: student.NewService(repos.Students, logger),
		Reports:  report.NewService(repos.Tasks, mode, logger),
		Activity: activity.NewService(repos.Activity, logger),
	}
}

// DefaultActor returns the configured fallback identity.
func DefaultActor(cfg config.ActorConfig) role.Actor {
	return role.Actor{ID: cfg.ID, Name: cfg.Name, Role: role.Parse(cfg.Role)}
}

// Memory returns repositories over a fresh in-memory store.
func Memory(db *memstore.DB) Repositories {
	return Repositories{
		Projects: memstore.NewProjectRepository(db),
		Groups:   memstore.NewGroupRepository(db),
		Tasks:    memstore.NewTaskRepository(db),
		Students: memstore.NewStudentRepository(db),
		Activity: memstore.NewActivityRepository(db),
	}
}

// SQLite returns repositories over db.
func SQLite(db *sqlite.DB) Repositories {
	return Repositories{
		Projects: sqlite.NewProjectRepository(db),
		Groups:   sqlite.NewGroupRepository(db),
		Tasks:    sqlite.NewTaskRepository(db),
		Students: sqlite.NewStudentRepository(db),
		Activity: sqlite.NewActivityRepository(db),
	}
}

func openStore(cfg config.StoreConfig) (Repositories, func() error, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := ensureDBDir(cfg.Path); err != nil {
			return Repositories{}, nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return Repositories{}, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return Repositories{}, nil, err
		}
		return SQLite(db), db.Close, nil
	case config.DriverMemory, "":
		return Memory(memstore.Open(cfg.Latency)), func() error { return nil }, nil
	default:
		return Repositories{}, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// seedIfEmpty loads the demo dataset unless students already exist, so a
// durable store is only seeded once.
func seedIfEmpty(ctx context.Context, repos Repositories) error {
	existing, err := repos.Students.List(ctx)
	if err != nil {
		return fmt.Errorf("checking seed state: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	return seed.Load(ctx, seed.Repositories{
		Projects: repos.Projects,
		Groups:   repos.Groups,
		Tasks:    repos.Tasks,
		Students: repos.Students,
	})
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
