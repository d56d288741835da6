package repository

import (
	"context"
	"time"

	"github.com/emacsway/ganttproject/internal/domain"
)

// ProjectDatabase is the write surface consumed by the surrounding
// application. Each operation acquires and releases its own connection;
// there is no cross-operation atomicity outside ImportSnapshot.
type ProjectDatabase interface {
	// Init creates the schema by running the bundled init script against a
	// fresh connection. Re-running Init against an already-initialized store
	// is not guaranteed safe.
	Init(ctx context.Context) error

	// InsertTask persists one task snapshot as a new row.
	InsertTask(ctx context.Context, t *domain.Task) error

	// InsertTaskDependency persists one dependency. Both endpoint tasks must
	// already be persisted; the store rejects dangling references.
	InsertTaskDependency(ctx context.Context, d *domain.TaskDependency) error

	// CreateTaskUpdateBuilder returns a builder bound to the given task for
	// its entire lifetime. The builder is confined to a single caller.
	CreateTaskUpdateBuilder(t *domain.Task) TaskUpdateBuilder

	// ImportSnapshot inserts a full set of tasks and dependencies in one
	// transaction: all rows land or none do.
	ImportSnapshot(ctx context.Context, tasks []*domain.Task, deps []*domain.TaskDependency) error

	// Shutdown issues a clean shutdown command and closes the store.
	Shutdown(ctx context.Context) error
}

// TaskUpdateBuilder accumulates field-level changes to one task and flushes
// them as a single UPDATE statement. Mutators never touch the store and
// never fail; Execute with no pending changes is a no-op. The pending set is
// cleared after Execute whether or not the flush succeeds.
type TaskUpdateBuilder interface {
	SetName(name string)
	SetMilestone(milestone bool)
	SetPriority(p domain.Priority)
	SetStart(start time.Time)
	SetEnd(end time.Time)
	SetDuration(days int)
	Shift(days int)
	SetCompletionPercentage(pct int)
	SetShape(shape string)
	SetColor(color string)
	SetWebLink(link string)
	SetNotes(notes string)
	AddNotes(notes string)
	SetExpand(expand bool)
	SetCritical(critical bool)
	SetTaskInfo(info string)
	SetProjectTask(projectTask bool)

	Execute(ctx context.Context) error
}

// TaskReader is the raw read surface used by the CLI and by round-trip
// verification; the application proper keeps its task graph in memory.
type TaskReader interface {
	GetTask(ctx context.Context, id int) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	ListDependencies(ctx context.Context) ([]domain.TaskDependency, error)
}
