package testutil

import (
	"time"

	"github.com/emacsway/ganttproject/internal/domain"
	"github.com/shopspring/decimal"
)

// Task options
type TaskOption func(*domain.Task)

func WithStart(start time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Start = start
	}
}

func WithDuration(days int) TaskOption {
	return func(t *domain.Task) {
		t.Duration = days
	}
}

func WithMilestone() TaskOption {
	return func(t *domain.Task) {
		t.Milestone = true
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithCost(manual string, calculated bool) TaskOption {
	return func(t *domain.Task) {
		t.Cost = domain.Cost{
			ManualValue: decimal.RequireFromString(manual),
			Calculated:  calculated,
		}
	}
}

func WithNotes(notes string) TaskOption {
	return func(t *domain.Task) {
		t.Notes = notes
	}
}

// NewTestTask builds a task with sensible defaults: one-day duration,
// normal priority, calculated zero cost (persisted as NULL).
func NewTestTask(id int, name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:       id,
		Name:     name,
		Color:    "#8cb6ce",
		Start:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Duration: 1,
		Priority: domain.PriorityNormal,
		Cost:     domain.Cost{ManualValue: decimal.Zero, Calculated: true},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Dependency options
type DependencyOption func(*domain.TaskDependency)

func WithConstraintType(ct domain.ConstraintType) DependencyOption {
	return func(d *domain.TaskDependency) {
		d.Type = ct
	}
}

func WithLag(days int) DependencyOption {
	return func(d *domain.TaskDependency) {
		d.Lag = days
	}
}

func WithHardness(h domain.Hardness) DependencyOption {
	return func(d *domain.TaskDependency) {
		d.Hardness = h
	}
}

// NewTestDependency builds a finish-start dependency with no lag.
func NewTestDependency(dependeeID, dependantID int, opts ...DependencyOption) *domain.TaskDependency {
	d := &domain.TaskDependency{
		DependeeID:  dependeeID,
		DependantID: dependantID,
		Type:        domain.ConstraintFinishStart,
		Hardness:    domain.HardnessStrong,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
