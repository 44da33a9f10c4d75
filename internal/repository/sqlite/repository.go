package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"progress-tracker/internal/errors"
	"progress-tracker/internal/repository"
	"progress-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

var effortColumns = repository.EffortColumns("t.difficulty", "t.completed = 1")

// SQLiteRepository implements repository.Store on top of modernc.org/sqlite.
type SQLiteRepository struct {
	db           *sql.DB
	logger       *zap.Logger
	queryTimeout time.Duration
	writeTimeout time.Duration
	now          func() time.Time
}

var _ repository.Store = (*SQLiteRepository)(nil)

// Option configures a SQLiteRepository.
type Option func(*SQLiteRepository)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *SQLiteRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTimeouts bounds every read and write with the given durations.
// Zero leaves the caller's context untouched.
func WithTimeouts(query, write time.Duration) Option {
	return func(r *SQLiteRepository) {
		r.queryTimeout = query
		r.writeTimeout = write
	}
}

// New opens (or creates) the database at dbPath and runs pending migrations.
func New(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// SQLite allows a single writer and ":memory:" is per connection.
	db.SetMaxOpenConns(1)

	r := &SQLiteRepository{
		db:     db,
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	r.logger.Debug("SQLite repository ready", zap.String("path", dbPath))
	return r, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping verifies the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.readContext(ctx)
	defer cancel()
	if err := r.db.PingContext(ctx); err != nil {
		return HandleDatabaseError("ping", err)
	}
	return nil
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout > 0 {
		return context.WithTimeout(ctx, r.queryTimeout)
	}
	return ctx, func() {}
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.writeTimeout > 0 {
		return context.WithTimeout(ctx, r.writeTimeout)
	}
	return ctx, func() {}
}

// CreateProject inserts a project and fills in its ID and timestamps
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *repository.Project) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	now := r.now()
	query := `INSERT INTO projects (name, created_at, updated_at) VALUES (?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, "project", project.Name, FormatTimeForDB(now), FormatTimeForDB(now))
	if err != nil {
		return err
	}

	project.ID = id
	project.CreatedAt = now
	project.UpdatedAt = now
	r.logger.Debug("Inserted project", zap.Int64("project_id", id))
	return nil
}

// GetProject retrieves a project by ID
func (r *SQLiteRepository) GetProject(ctx context.Context, id int64) (*repository.Project, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT id, name, created_at, updated_at FROM projects WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanProject, "project", fmt.Sprintf("%d", id), id)
}

// ListProjects retrieves all projects
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*repository.Project, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT id, name, created_at, updated_at FROM projects ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanProjects, "project")
}

// CountProjects returns the number of stored projects
func (r *SQLiteRepository) CountProjects(ctx context.Context) (int64, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()
	defer observe("count", "project", time.Now())

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, HandleDatabaseError("count projects", err)
	}
	return count, nil
}

// ListProjectsWithEffort returns a page of projects with their weighted
// effort summed in the same query. A non-positive limit returns every row.
func (r *SQLiteRepository) ListProjectsWithEffort(ctx context.Context, limit, offset int) ([]*repository.ProjectEffort, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT p.id, p.name, p.created_at, p.updated_at, ` + effortColumns + `
	FROM projects p
	LEFT JOIN tasks t ON t.project_id = p.id
	GROUP BY p.id, p.name, p.created_at, p.updated_at
	ORDER BY p.id ASC`

	var args []interface{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	return QueryMultiple(ctx, r.db, query, ScanProjectEfforts, "project", args...)
}

// CreateTask inserts a task and fills in its ID and timestamps
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	now := r.now()
	query := `
	INSERT INTO tasks (project_id, title, difficulty, completed, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, "task",
		task.ProjectID, task.Title, task.Difficulty, task.Completed, FormatTimeForDB(now), FormatTimeForDB(now))
	if err != nil {
		return err
	}

	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now
	r.logger.Debug("Inserted task", zap.Int64("task_id", id), zap.Int64("project_id", task.ProjectID))
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, project_id, title, difficulty, completed, created_at, updated_at
	FROM tasks
	WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasksByProject retrieves all tasks of a project in creation order
func (r *SQLiteRepository) ListTasksByProject(ctx context.Context, projectID int64) ([]*repository.Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, project_id, title, difficulty, completed, created_at, updated_at
	FROM tasks
	WHERE project_id = ?
	ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "task", projectID)
}

// ToggleTask flips the completed flag of a task and returns the updated row
func (r *SQLiteRepository) ToggleTask(ctx context.Context, id int64) (*repository.Task, error) {
	writeCtx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `UPDATE tasks SET completed = NOT completed, updated_at = ? WHERE id = ?`
	if err := ExecuteWithRowsAffected(writeCtx, r.db, query, "task", fmt.Sprintf("%d", id), FormatTimeForDB(r.now()), id); err != nil {
		return nil, err
	}

	return r.GetTask(ctx, id)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), id)
}

// ProjectEffort sums completed and total weighted effort for one project.
// A project without tasks, or one that does not exist, sums to zero.
func (r *SQLiteRepository) ProjectEffort(ctx context.Context, projectID int64) (repository.Effort, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()
	defer observe("aggregate", "task", time.Now())

	query := `SELECT ` + effortColumns + ` FROM tasks t WHERE t.project_id = ?`

	var effort repository.Effort
	if err := r.db.QueryRowContext(ctx, query, projectID).Scan(&effort.Completed, &effort.Total); err != nil {
		return repository.Effort{}, HandleDatabaseError("sum project effort", err)
	}
	return effort, nil
}
