package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task is a schedulable unit of work with timing, cost, and display
// attributes. Tasks are created and mutated by the surrounding application;
// the persistence layer only serializes snapshots or field deltas.
type Task struct {
	ID          int
	Name        string
	Color       string
	Shape       string // serialized paint descriptor
	Milestone   bool
	ProjectTask bool

	// Scheduling
	Start         time.Time // date-only semantics
	Duration      int       // working days
	Completion    int       // 0..100
	EarliestStart *time.Time
	Priority      Priority

	WebLink string
	Cost    Cost
	Notes   string
}

// End returns the exclusive end date implied by Start and Duration.
func (t *Task) End() time.Time {
	return t.Start.AddDate(0, 0, t.Duration)
}

// Cost is a task's cost: either an explicit manual value or a value
// calculated from subtasks (Calculated true).
type Cost struct {
	ManualValue decimal.Decimal
	Calculated  bool
}

// IsDefault reports whether the cost carries no explicit manual override:
// calculated with a manual value of exactly zero. Such costs are persisted
// as NULL columns, distinguishing "no override" from "override of zero".
func (c Cost) IsDefault() bool {
	return c.Calculated && c.ManualValue.IsZero()
}
