package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/emacsway/ganttproject/internal/domain"
)

// assignment is one pending column assignment. expr is the SQL right-hand
// side; plain value assignments use "?" while computed assignments (Shift,
// SetEnd, AddNotes) evaluate against the current row inside the store.
type assignment struct {
	column string
	expr   string
	args   []any
}

// SQLiteTaskUpdateBuilder accumulates column assignments against a single
// task row and flushes them as one UPDATE. It holds an ordered mapping from
// column to pending assignment: setting the same field twice keeps the last
// value in the original position. Not safe for concurrent use; a builder is
// bound to exactly one task for its lifetime.
type SQLiteTaskUpdateBuilder struct {
	db      *SQLiteProjectDatabase
	taskID  int
	pending []assignment
}

var _ TaskUpdateBuilder = (*SQLiteTaskUpdateBuilder)(nil)

func newTaskUpdateBuilder(database *SQLiteProjectDatabase, taskID int) *SQLiteTaskUpdateBuilder {
	return &SQLiteTaskUpdateBuilder{db: database, taskID: taskID}
}

// set records a plain value assignment, replacing any pending assignment for
// the same column.
func (b *SQLiteTaskUpdateBuilder) set(column string, value any) {
	b.setExpr(column, "?", value)
}

func (b *SQLiteTaskUpdateBuilder) setExpr(column, expr string, args ...any) {
	a := assignment{column: column, expr: expr, args: args}
	for i := range b.pending {
		if b.pending[i].column == column {
			b.pending[i] = a
			return
		}
	}
	b.pending = append(b.pending, a)
}

func (b *SQLiteTaskUpdateBuilder) SetName(name string) {
	b.set("name", name)
}

func (b *SQLiteTaskUpdateBuilder) SetMilestone(milestone bool) {
	b.set("is_milestone", boolToInt(milestone))
}

func (b *SQLiteTaskUpdateBuilder) SetPriority(p domain.Priority) {
	b.set("priority", p.PersistentValue())
}

func (b *SQLiteTaskUpdateBuilder) SetStart(start time.Time) {
	b.set("start_date", start.Format(dateLayout))
}

// SetEnd records the new exclusive end date; the duration is recomputed from
// the row's start date inside the store when the update flushes.
func (b *SQLiteTaskUpdateBuilder) SetEnd(end time.Time) {
	b.setExpr("duration",
		"CAST(julianday(?) - julianday(start_date) AS INTEGER)",
		end.Format(dateLayout))
}

func (b *SQLiteTaskUpdateBuilder) SetDuration(days int) {
	b.set("duration", days)
}

// Shift moves the task's start date by the given number of days, evaluated
// against the row's current start date when the update flushes.
func (b *SQLiteTaskUpdateBuilder) Shift(days int) {
	b.setExpr("start_date", "date(start_date, ?)", fmt.Sprintf("%+d days", days))
}

func (b *SQLiteTaskUpdateBuilder) SetCompletionPercentage(pct int) {
	b.set("completion", pct)
}

func (b *SQLiteTaskUpdateBuilder) SetShape(shape string) {
	b.set("shape", shape)
}

func (b *SQLiteTaskUpdateBuilder) SetColor(color string) {
	b.set("color", color)
}

func (b *SQLiteTaskUpdateBuilder) SetWebLink(link string) {
	b.set("web_link", link)
}

func (b *SQLiteTaskUpdateBuilder) SetNotes(notes string) {
	b.set("notes", notes)
}

// AddNotes appends a line to the existing notes instead of replacing them.
func (b *SQLiteTaskUpdateBuilder) AddNotes(notes string) {
	b.setExpr("notes",
		"CASE WHEN notes = '' THEN ? ELSE notes || char(10) || ? END",
		notes, notes)
}

func (b *SQLiteTaskUpdateBuilder) SetExpand(expand bool) {
	b.set("is_expanded", boolToInt(expand))
}

func (b *SQLiteTaskUpdateBuilder) SetCritical(critical bool) {
	b.set("is_critical", boolToInt(critical))
}

func (b *SQLiteTaskUpdateBuilder) SetTaskInfo(info string) {
	b.set("task_info", info)
}

func (b *SQLiteTaskUpdateBuilder) SetProjectTask(projectTask bool) {
	b.set("is_project_task", boolToInt(projectTask))
}

// Execute flushes every pending assignment as a single UPDATE keyed by the
// bound task id. With nothing pending it is a no-op. The pending set is
// cleared on every exit path, so a failed flush is never silently retried by
// a later, unrelated Execute.
func (b *SQLiteTaskUpdateBuilder) Execute(ctx context.Context) error {
	if len(b.pending) == 0 {
		return nil
	}
	defer func() {
		b.pending = nil
	}()

	var sb strings.Builder
	args := make([]any, 0, len(b.pending)+1)
	sb.WriteString("UPDATE task SET ")
	for i, a := range b.pending {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.column)
		sb.WriteString(" = ")
		sb.WriteString(a.expr)
		args = append(args, a.args...)
	}
	sb.WriteString(" WHERE id = ?")
	args = append(args, b.taskID)
	query := sb.String()

	return b.db.withConn(ctx,
		func() string { return "failed to execute update" },
		func(ctx context.Context, conn *sql.Conn) error {
			_, err := conn.ExecContext(ctx, query, args...)
			return err
		})
}
