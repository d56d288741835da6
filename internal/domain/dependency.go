package domain

// TaskDependency is a directed precedence relationship between two tasks:
// the dependant cannot be scheduled freely until the dependee satisfies the
// constraint. Both endpoints must already exist as persisted tasks before
// the dependency itself is persisted.
type TaskDependency struct {
	DependeeID  int
	DependantID int
	Type        ConstraintType
	Lag         int // days between the constrained dates
	Hardness    Hardness
}
