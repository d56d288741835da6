package domain

import "fmt"

// Priority is a task's scheduling priority. The persistent integer codes are
// historical and intentionally independent of declaration order; they must
// never be renumbered once written to storage.
type Priority int

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityHighest
)

var priorityPersistentValues = map[Priority]int{
	PriorityLowest:  3,
	PriorityLow:     0,
	PriorityNormal:  1,
	PriorityHigh:    2,
	PriorityHighest: 4,
}

// PersistentValue returns the stable integer code stored in the database.
func (p Priority) PersistentValue() int {
	if v, ok := priorityPersistentValues[p]; ok {
		return v
	}
	return priorityPersistentValues[PriorityNormal]
}

// PriorityFromPersistentValue maps a stored code back to a Priority.
func PriorityFromPersistentValue(v int) (Priority, error) {
	for p, code := range priorityPersistentValues {
		if code == v {
			return p, nil
		}
	}
	return PriorityNormal, fmt.Errorf("unknown priority code %d", v)
}

func (p Priority) String() string {
	switch p {
	case PriorityLowest:
		return "lowest"
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	case PriorityHighest:
		return "highest"
	default:
		return "normal"
	}
}

// ConstraintType classifies a dependency: which dates of the two tasks the
// constraint ties together. Persistent codes follow the project file format.
type ConstraintType int

const (
	ConstraintStartStart   ConstraintType = 1
	ConstraintFinishStart  ConstraintType = 2
	ConstraintFinishFinish ConstraintType = 3
	ConstraintStartFinish  ConstraintType = 4
)

// PersistentValue returns the stable integer code stored in the database.
func (c ConstraintType) PersistentValue() int {
	return int(c)
}

// ConstraintTypeFromPersistentValue maps a stored code back to a ConstraintType.
func ConstraintTypeFromPersistentValue(v int) (ConstraintType, error) {
	switch ct := ConstraintType(v); ct {
	case ConstraintStartStart, ConstraintFinishStart, ConstraintFinishFinish, ConstraintStartFinish:
		return ct, nil
	}
	return ConstraintFinishStart, fmt.Errorf("unknown constraint type code %d", v)
}

func (c ConstraintType) String() string {
	switch c {
	case ConstraintStartStart:
		return "start-start"
	case ConstraintFinishFinish:
		return "finish-finish"
	case ConstraintStartFinish:
		return "start-finish"
	default:
		return "finish-start"
	}
}

// Hardness classifies how strictly a dependency constrains scheduling.
type Hardness string

const (
	HardnessStrong Hardness = "Strong"
	HardnessRubber Hardness = "Rubber"
)

// ValidHardness is the canonical set of accepted hardness identifiers.
var ValidHardness = map[string]bool{
	string(HardnessStrong): true,
	string(HardnessRubber): true,
}
