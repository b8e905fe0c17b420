package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"     // Ready (or waiting) to be picked up
	StatusInProgress TaskStatus = "in_progress" // Someone is actively working
	StatusCompleted  TaskStatus = "completed"   // Done; terminal for automatic derivation
	StatusBlocked    TaskStatus = "blocked"     // Waiting on incomplete prerequisites
)

// ValidStatuses lists every accepted status value, in display order.
var ValidStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusBlocked}

// ParseStatus converts a raw string into a TaskStatus.
func ParseStatus(s string) (TaskStatus, error) {
	st := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range ValidStatuses {
		if st == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (valid: pending, in_progress, completed, blocked)", s)
}

// Task is a unit of work whose status may be derived from its prerequisites.
type Task struct {
	ID          string     `json:"id" validate:"required"`
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status" validate:"required,oneof=pending in_progress completed blocked"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Joined fields, populated on fetch (not stored on the row itself)
	Prerequisites []string `json:"prerequisites,omitempty"` // IDs this task depends on
	Dependents    []string `json:"dependents,omitempty"`    // IDs that depend on this task
}

// Edge is a directed dependency: DependentID cannot be ready until
// PrerequisiteID is completed.
type Edge struct {
	DependentID    string    `json:"dependent_id"`
	PrerequisiteID string    `json:"prerequisite_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// TaskRef is a lightweight task reference used in error payloads and
// readiness reports.
type TaskRef struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Status TaskStatus `json:"status,omitempty"`
}

// Readiness reports whether a task can be worked on and, if not, which
// prerequisites are still in the way.
type Readiness struct {
	TaskID   string    `json:"task_id"`
	Ready    bool      `json:"ready"`
	Blocking []TaskRef `json:"blocking,omitempty"`
}

// Snapshot is the full graph view served to visualization clients:
// every task node plus every dependency edge.
type Snapshot struct {
	Tasks []TaskRef `json:"tasks"`
	Edges []Edge    `json:"edges"`
}

var validate = validator.New()

// Validate checks the task against its struct tags.
func (t *Task) Validate() error {
	if err := validate.Struct(t); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("field %q failed rule %q", e.Field(), e.Tag()))
			}
			return fmt.Errorf("invalid task: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid task: %w", err)
	}
	return nil
}
