package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/hollis/boardwalk/internal/archive"
	"github.com/hollis/boardwalk/internal/repo"
	"github.com/hollis/boardwalk/internal/store"
)

// SaveDelay is the quiet period for debounced persistence. Rapid
// successive mutations collapse into one write; Close flushes.
const SaveDelay = 500 * time.Millisecond

// App holds the application state and dependencies. One instance is
// constructed in main and threaded explicitly through the UI; there
// are no ambient singletons.
type App struct {
	Projects *repo.ProjectRepository
	Tasks    *repo.TaskRepository
	DataDir  string

	db       *store.SQLite
	saver    *store.Debounced
	lockFile *flock.Flock
}

// Config holds application configuration
type Config struct {
	DataDir string
	DBPath  string
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	dataDir := store.DefaultDataDir()
	return &Config{
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, "boardwalk.db"),
	}
}

// New creates a new application instance
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{DataDir: cfg.DataDir}

	// Acquire lock to ensure single instance; concurrent writers to
	// the same store would clobber each other
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	app.db = db
	app.saver = store.NewDebounced(db, SaveDelay)

	projects, err := repo.NewProjectRepository(app.saver)
	if err != nil {
		db.Close()
		app.releaseLock()
		return nil, err
	}
	app.Projects = projects
	app.Tasks = repo.NewTaskRepository(projects)

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "boardwalk.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of boardwalk is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Export writes the full collection to a file
func (a *App) Export(path string) error {
	return archive.ExportFile(path, a.Projects.Projects())
}

// Import wholesale-replaces the collection from an export-shaped
// file. On a malformed document the existing state is untouched. The
// replacement is flushed to disk immediately rather than debounced.
func (a *App) Import(path string) error {
	projects, err := archive.ImportFile(path)
	if err != nil {
		return err
	}
	if err := a.Projects.ReplaceAll(projects); err != nil {
		return err
	}
	return a.saver.Flush()
}

// Close flushes pending writes and cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.saver != nil {
		if err := a.saver.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush store: %w", err))
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
