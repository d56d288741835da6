package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/emacsway/ganttproject/internal/db"
	"github.com/emacsway/ganttproject/internal/domain"
)

//go:embed schema/init.sql
var schemaFS embed.FS

// initScriptPath is the fixed logical path of the bundled schema script.
const initScriptPath = "schema/init.sql"

// SQLiteProjectDatabase implements ProjectDatabase over an embedded SQLite
// store. Every operation acquires its own connection from the pool and
// releases it on all exit paths.
type SQLiteProjectDatabase struct {
	db       *sql.DB
	uow      db.UnitOfWork
	observer Observer
	scripts  fs.FS
}

var _ ProjectDatabase = (*SQLiteProjectDatabase)(nil)

// Option configures a SQLiteProjectDatabase.
type Option func(*SQLiteProjectDatabase)

// WithObserver attaches an operation observer.
func WithObserver(o Observer) Option {
	return func(d *SQLiteProjectDatabase) {
		if o != nil {
			d.observer = o
		}
	}
}

// WithInitScripts overrides the filesystem the init script is loaded from.
func WithInitScripts(fsys fs.FS) Option {
	return func(d *SQLiteProjectDatabase) {
		d.scripts = fsys
	}
}

// NewSQLiteProjectDatabase creates a project database on top of an open
// *sql.DB handle.
func NewSQLiteProjectDatabase(database *sql.DB, opts ...Option) *SQLiteProjectDatabase {
	d := &SQLiteProjectDatabase{
		db:       database,
		uow:      db.NewSQLiteUnitOfWork(database),
		observer: NoopObserver{},
		scripts:  schemaFS,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// withConn acquires a connection as a scoped resource, runs op against it,
// and wraps any failure in a DatabaseError. Acquisition failures and
// operation failures carry distinct kinds and messages so log consumers can
// separate infrastructure outages from statement errors.
func (d *SQLiteProjectDatabase) withConn(ctx context.Context, errMsg func() string, op func(ctx context.Context, conn *sql.Conn) error) error {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return connectError(err)
	}
	defer conn.Close()

	if err := op(ctx, conn); err != nil {
		return operationError(errMsg(), err)
	}
	return nil
}

func (d *SQLiteProjectDatabase) observe(ctx context.Context, name string, fields map[string]any, started time.Time, err error) {
	d.observer.ObserveOperation(ctx, OperationEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}

// Init reads the bundled schema script and executes it verbatim as one batch
// against a fresh connection. A missing script is reported before any
// connection is opened, so no partial schema changes are possible.
func (d *SQLiteProjectDatabase) Init(ctx context.Context) (err error) {
	started := time.Now()
	defer func() { d.observe(ctx, "init", nil, started, err) }()

	script, readErr := fs.ReadFile(d.scripts, initScriptPath)
	if readErr != nil {
		err = notFoundError("init script not found", readErr)
		return err
	}

	err = d.withConn(ctx,
		func() string { return "failed to init the database" },
		func(ctx context.Context, conn *sql.Conn) error {
			_, execErr := conn.ExecContext(ctx, string(script))
			return execErr
		})
	return err
}

func (d *SQLiteProjectDatabase) InsertTask(ctx context.Context, t *domain.Task) (err error) {
	started := time.Now()
	defer func() { d.observe(ctx, "insert_task", map[string]any{"task_id": t.ID}, started, err) }()

	err = d.withConn(ctx,
		func() string { return fmt.Sprintf("failed to insert task %d", t.ID) },
		func(ctx context.Context, conn *sql.Conn) error {
			return insertTask(ctx, conn, t)
		})
	return err
}

func (d *SQLiteProjectDatabase) InsertTaskDependency(ctx context.Context, dep *domain.TaskDependency) (err error) {
	started := time.Now()
	fields := map[string]any{"dependee_id": dep.DependeeID, "dependant_id": dep.DependantID}
	defer func() { d.observe(ctx, "insert_task_dependency", fields, started, err) }()

	err = d.withConn(ctx,
		func() string { return "failed to insert task dependency" },
		func(ctx context.Context, conn *sql.Conn) error {
			return insertTaskDependency(ctx, conn, dep)
		})
	return err
}

func (d *SQLiteProjectDatabase) CreateTaskUpdateBuilder(t *domain.Task) TaskUpdateBuilder {
	return newTaskUpdateBuilder(d, t.ID)
}

// ImportSnapshot inserts a full set of tasks and dependencies in one
// transaction. Tasks go first so that dependency foreign keys resolve.
func (d *SQLiteProjectDatabase) ImportSnapshot(ctx context.Context, tasks []*domain.Task, deps []*domain.TaskDependency) (err error) {
	started := time.Now()
	fields := map[string]any{"tasks": len(tasks), "dependencies": len(deps)}
	defer func() { d.observe(ctx, "import_snapshot", fields, started, err) }()

	txErr := d.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, t := range tasks {
			if insErr := insertTask(ctx, tx, t); insErr != nil {
				return fmt.Errorf("inserting task %d: %w", t.ID, insErr)
			}
		}
		for _, dep := range deps {
			if insErr := insertTaskDependency(ctx, tx, dep); insErr != nil {
				return fmt.Errorf("inserting dependency %d->%d: %w", dep.DependeeID, dep.DependantID, insErr)
			}
		}
		return nil
	})
	if txErr != nil {
		err = operationError("failed to import project snapshot", txErr)
	}
	return err
}

// Shutdown issues a clean shutdown command over a fresh connection, then
// closes the underlying handle. Ordering relative to in-flight writes is the
// caller's responsibility.
func (d *SQLiteProjectDatabase) Shutdown(ctx context.Context) (err error) {
	started := time.Now()
	defer func() { d.observe(ctx, "shutdown", nil, started, err) }()

	err = d.withConn(ctx,
		func() string { return "failed to shutdown the database" },
		func(ctx context.Context, conn *sql.Conn) error {
			_, execErr := conn.ExecContext(ctx, "PRAGMA optimize")
			return execErr
		})
	if err != nil {
		return err
	}

	if closeErr := d.db.Close(); closeErr != nil {
		err = operationError("failed to shutdown the database", closeErr)
	}
	return err
}

// taskColumns is the canonical column list for the task table, matching the
// attribute set serialized by insertTask.
const taskColumns = `id, name, color, shape, is_milestone, is_project_task,
	start_date, duration, completion, earliest_start_date, priority,
	web_link, cost_manual_value, is_cost_calculated, notes`

func insertTask(ctx context.Context, dbtx db.DBTX, t *domain.Task) error {
	costValue, costCalculated := costToColumns(t.Cost)
	query := `INSERT INTO task (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := dbtx.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Color,
		t.Shape,
		boolToInt(t.Milestone),
		boolToInt(t.ProjectTask),
		t.Start.Format(dateLayout),
		t.Duration,
		t.Completion,
		nullableDateToString(t.EarliestStart),
		t.Priority.PersistentValue(),
		t.WebLink,
		costValue,
		costCalculated,
		t.Notes,
	)
	return err
}

// costToColumns applies the storage normalization for costs: a calculated
// cost with a zero manual value persists as NULL in both columns, meaning
// "no explicit manual cost". An explicit override of zero keeps its values.
func costToColumns(c domain.Cost) (interface{}, interface{}) {
	if c.IsDefault() {
		return nil, nil
	}
	return c.ManualValue.String(), boolToInt(c.Calculated)
}

func insertTaskDependency(ctx context.Context, dbtx db.DBTX, dep *domain.TaskDependency) error {
	query := `INSERT INTO task_dependency (dependee_id, dependant_id, type, lag, hardness)
		VALUES (?, ?, ?, ?, ?)`
	_, err := dbtx.ExecContext(ctx, query,
		dep.DependeeID,
		dep.DependantID,
		dep.Type.PersistentValue(),
		dep.Lag,
		string(dep.Hardness),
	)
	return err
}
