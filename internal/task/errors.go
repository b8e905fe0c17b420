package task

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the graph operations. Callers match with errors.Is.
var (
	// ErrTaskNotFound is returned when a referenced task id is absent.
	ErrTaskNotFound = errors.New("task not found")
	// ErrEdgeNotFound is returned when removing a dependency that does not exist.
	ErrEdgeNotFound = errors.New("dependency not found")
	// ErrSelfDependency is returned when an edge would connect a task to itself.
	ErrSelfDependency = errors.New("task cannot depend on itself")
	// ErrDuplicateEdge is returned when the exact dependency already exists.
	ErrDuplicateEdge = errors.New("dependency already exists")
)

// CycleError reports that inserting an edge would close a cycle.
// Path is a real chain of prerequisite edges from the proposed prerequisite
// back to the proposed dependent.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Path, " -> "))
}

// HasDependentsError reports that a task cannot be deleted because other
// tasks still depend on it.
type HasDependentsError struct {
	TaskID     string
	Dependents []TaskRef
}

func (e *HasDependentsError) Error() string {
	ids := make([]string, len(e.Dependents))
	for i, d := range e.Dependents {
		ids[i] = d.ID
	}
	return fmt.Sprintf("cannot delete task %s: other tasks depend on it (%s)", e.TaskID, strings.Join(ids, ", "))
}
