package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emacsway/ganttproject/internal/domain"
	"github.com/shopspring/decimal"
)

// SQLiteTaskReader implements TaskReader with raw reads against the task
// tables. It shares the *sql.DB handle with the project database.
type SQLiteTaskReader struct {
	db *sql.DB
}

var _ TaskReader = (*SQLiteTaskReader)(nil)

// NewSQLiteTaskReader creates a new SQLiteTaskReader.
func NewSQLiteTaskReader(database *sql.DB) *SQLiteTaskReader {
	return &SQLiteTaskReader{db: database}
}

func (r *SQLiteTaskReader) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTaskReader) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskReader) ListDependencies(ctx context.Context) ([]domain.TaskDependency, error) {
	query := `SELECT dependee_id, dependant_id, type, lag, hardness
		FROM task_dependency ORDER BY dependant_id, dependee_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	var deps []domain.TaskDependency
	for rows.Next() {
		var d domain.TaskDependency
		var typeCode int
		var hardness string
		if err := rows.Scan(&d.DependeeID, &d.DependantID, &typeCode, &d.Lag, &hardness); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		ct, typeErr := domain.ConstraintTypeFromPersistentValue(typeCode)
		if typeErr != nil {
			return nil, fmt.Errorf("dependency %d->%d: %w", d.DependeeID, d.DependantID, typeErr)
		}
		d.Type = ct
		d.Hardness = domain.Hardness(hardness)
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans one task row in taskColumns order and reverses the storage
// mapping applied by insertTask.
func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var milestoneInt, projectTaskInt, priorityCode int
	var startStr string
	var earliestStr, costValueStr sql.NullString
	var costCalculated sql.NullInt64

	err := row.Scan(
		&t.ID, &t.Name, &t.Color, &t.Shape, &milestoneInt, &projectTaskInt,
		&startStr, &t.Duration, &t.Completion, &earliestStr, &priorityCode,
		&t.WebLink, &costValueStr, &costCalculated, &t.Notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Milestone = intToBool(milestoneInt)
	t.ProjectTask = intToBool(projectTaskInt)
	t.EarliestStart = parseNullableDate(earliestStr)

	t.Start, err = time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}

	t.Priority, err = domain.PriorityFromPersistentValue(priorityCode)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", t.ID, err)
	}

	t.Cost, err = costFromColumns(costValueStr, costCalculated)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", t.ID, err)
	}

	return &t, nil
}

// costFromColumns reverses the cost normalization: NULL columns mean a
// calculated cost with no manual override.
func costFromColumns(value sql.NullString, calculated sql.NullInt64) (domain.Cost, error) {
	if !value.Valid {
		return domain.Cost{ManualValue: decimal.Zero, Calculated: true}, nil
	}
	manual, err := decimal.NewFromString(value.String)
	if err != nil {
		return domain.Cost{}, fmt.Errorf("parsing cost value %q: %w", value.String, err)
	}
	return domain.Cost{
		ManualValue: manual,
		Calculated:  calculated.Valid && calculated.Int64 != 0,
	}, nil
}
