package postgres

import (
	"context"
	_ "embed"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"progress-tracker/internal/errors"
	"progress-tracker/internal/metrics"
	"progress-tracker/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

var effortColumns = repository.EffortColumns("t.difficulty", "t.completed")

const taskColumns = `id, project_id, title, difficulty, completed, created_at, updated_at`

// Options tune the connection pool and query bounds.
type Options struct {
	Logger             *zap.Logger
	QueryTimeout       time.Duration
	WriteTimeout       time.Duration
	SlowQueryThreshold time.Duration
	MaxConns           int32
}

// PostgresRepository implements repository.Store on a pgx connection pool.
type PostgresRepository struct {
	db           *pgxpool.Pool
	logger       *zap.Logger
	queryTimeout time.Duration
	writeTimeout time.Duration
}

var _ repository.Store = (*PostgresRepository)(nil)

// New connects to dsn, verifies the connection and applies the schema.
func New(ctx context.Context, dsn string, opts Options) (*PostgresRepository, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("parse dsn", err)
	}

	poolCfg.MaxConns = 10
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
	}
	poolCfg.MinConns = 1
	poolCfg.MaxConnIdleTime = time.Minute
	poolCfg.ConnConfig.Tracer = NewSlowQueryTracer(logger, opts.SlowQueryThreshold)

	logger.Info("Initializing PostgreSQL connection pool",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("db", poolCfg.ConnConfig.Database),
	)

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, errors.NewDatabaseError("connect", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, errors.NewDatabaseError("ping", err)
	}
	if _, err := pool.Exec(connectCtx, schemaSQL); err != nil {
		pool.Close()
		return nil, errors.NewDatabaseError("apply schema", err)
	}

	logger.Info("PostgreSQL connection established successfully")
	return &PostgresRepository{
		db:           pool,
		logger:       logger,
		queryTimeout: opts.QueryTimeout,
		writeTimeout: opts.WriteTimeout,
	}, nil
}

// Close closes the pool
func (r *PostgresRepository) Close() error {
	r.db.Close()
	return nil
}

// Ping verifies the database is reachable.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.bounded(ctx, r.queryTimeout)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return errors.NewDatabaseError("ping", err)
	}
	return nil
}

func (r *PostgresRepository) bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return ctx, func() {}
}

func observe(operation, table string, start time.Time) {
	metrics.RecordDBQueryDuration("postgres", operation, table, time.Since(start))
}

func notFoundOr(err error, entity string, id int64, operation string) error {
	if stderrors.Is(err, pgx.ErrNoRows) {
		return errors.NewNotFoundError(entity, fmt.Sprintf("%d", id))
	}
	return errors.NewDatabaseError(operation, err)
}

// CreateProject inserts a project and fills in its ID and timestamps
func (r *PostgresRepository) CreateProject(ctx context.Context, project *repository.Project) error {
	ctx, cancel := r.bounded(ctx, r.writeTimeout)
	defer cancel()
	defer observe("insert", "project", time.Now())

	query := `
	INSERT INTO projects (name)
	VALUES ($1)
	RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, project.Name).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return errors.NewDatabaseError("insert project", err)
	}

	r.logger.Debug("Inserted project", zap.Int64("project_id", project.ID))
	return nil
}

// GetProject retrieves a project by ID
func (r *PostgresRepository) GetProject(ctx context.Context, id int64) (*repository.Project, error) {
	ctx, cancel := r.bounded(ctx, r.queryTimeout)
	defer cancel()
	defer observe("select", "project", time.Now())

	p := &repository.Project{}
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "project", id, "select project")
	}
	return p, nil
}

// ListProjects retrieves all projects
func (r *PostgresRepository) ListProjects(ctx context.Context) ([]*repository.Project, error) {
	ctx, cancel := r.bounded(ctx, r.queryTimeout)
	defer cancel()
	defer observe("select", "project", time.Now())

	rows, err := r.db.Query(ctx, `SELECT id, name, created_at, updated_at FROM projects ORDER BY id ASC`)
	if err != nil {
		return nil, errors.NewDatabaseError("query project", err)
	}
	defer rows.Close()

	projects := []*repository.Project{}
	for rows.Next() {
		p := &repository.Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, errors.NewDatabaseError("scan project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("scan project", err)
	}
	return projects, nil
}

// CountProjects returns the number of stored projects
func (r *PostgresRepository) CountProjects(ctx context.Context) (int64, error) {
	ctx, cancel := r.bounded(ctx, r.queryTimeout)
	defer cancel()
	defer observe("count", "project", time.Now())

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, errors.NewDatabaseError("count projects", err)
	}
	return count, nil
}

// ListProjectsWithEffort returns a page of projects with their weighted
// effort summed in the same query. A non-positive limit returns every row.
func (r *PostgresRepository) ListProjectsWithEffort(ctx context.Context, limit, offset int) ([]*repository.ProjectEffort, error) {
	ctx, cancel := r.bounded(ctx, r.queryTimeout)
	defer cancel()
	defer observe("select", "project", time.Now())

	query := `
	SELECT p.id, p.name, p.created_at, p.updated_at, ` + effortColumns + `
	FROM projects p
	LEFT JOIN tasks t ON t.project_id = p.id
	GROUP BY p.id
	ORDER BY p.id ASC`

	var args []any
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("query project", err)
	}
	defer rows.Close()

	results := []*repository.ProjectEffort{}
	for rows.Next() {
		pe := &repository.ProjectEffort{}
		err := rows.Scan(&pe.ID, &pe.Name, &pe.CreatedAt, &pe.UpdatedAt, &pe.Effort.Completed, &pe.Effort.Total)
		if err != nil {
			return nil, errors.NewDatabaseError("scan project", err)
		}
		results = append(results, pe)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("scan project", err)
	}
	return results, nil
}

// CreateTask inserts a task and fills in its ID and timestamps
func (r *PostgresRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	ctx, cancel := r.bounded(ctx, r.writeTimeout)
	defer cancel()
	defer observe("insert", "task", time.Now())

	query := `
	INSERT INTO tasks (project_id, title, difficulty, completed)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, task.ProjectID, task.Title, task.Difficulty, task.Completed).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert task", zap.Int64("project_id", task.ProjectID), zap.Error(err))
		return errors.NewDatabaseError("insert task", err)
	}

	r.logger.Debug("Inserted task", zap.Int64("task_id", task.ID), zap.Int64("project_id", task.ProjectID))
	return nil
}

func scanTask(row pgx.Row) (*repository.Task, error) {
	t := &repository.Task{}
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Difficulty, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTask retrieves a task by ID
func (r *PostgresRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	ctx, cancel := r.bounded(ctx, r.queryTimeout)
	defer cancel()
	defer observe("select", "task", time.Now())

	task, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "task", id, "select task")
	}
	return task, nil
}

// ListTasksByProject retrieves all tasks of a project in creation order
func (r *PostgresRepository) ListTasksByProject(ctx context.Context, projectID int64) ([]*repository.Task, error) {
	ctx, cancel := r.bounded(ctx, r.queryTimeout)
	defer cancel()
	defer observe("select", "task", time.Now())

	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 ORDER BY id ASC`, projectID)
	if err != nil {
		return nil, errors.NewDatabaseError("query task", err)
	}
	defer rows.Close()

	tasks := []*repository.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, errors.NewDatabaseError("scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("scan task", err)
	}
	return tasks, nil
}

// ToggleTask flips the completed flag of a task and returns the updated row
func (r *PostgresRepository) ToggleTask(ctx context.Context, id int64) (*repository.Task, error) {
	ctx, cancel := r.bounded(ctx, r.writeTimeout)
	defer cancel()
	defer observe("update", "task", time.Now())

	query := `
	UPDATE tasks SET completed = NOT completed, updated_at = now()
	WHERE id = $1
	RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "task", id, "toggle task")
	}
	return task, nil
}

// DeleteTask deletes a task by ID
func (r *PostgresRepository) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := r.bounded(ctx, r.writeTimeout)
	defer cancel()
	defer observe("delete", "task", time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return errors.NewDatabaseError("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	return nil
}

// ProjectEffort sums completed and total weighted effort for one project.
func (r *PostgresRepository) ProjectEffort(ctx context.Context, projectID int64) (repository.Effort, error) {
	ctx, cancel := r.bounded(ctx, r.queryTimeout)
	defer cancel()
	defer observe("aggregate", "task", time.Now())

	var effort repository.Effort
	query := `SELECT ` + effortColumns + ` FROM tasks t WHERE t.project_id = $1`
	if err := r.db.QueryRow(ctx, query, projectID).Scan(&effort.Completed, &effort.Total); err != nil {
		return repository.Effort{}, errors.NewDatabaseError("sum project effort", err)
	}
	return effort, nil
}
