package server

import "github.com/josephgoksu/TaskGraph/internal/task"

// createTaskRequest is the body of POST /api/tasks.
type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// updateTaskRequest is the body of PATCH /api/tasks/{id}. All fields are
// optional; a status change to "completed" triggers the cascade.
type updateTaskRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// addDependencyRequest is the body of POST /api/tasks/{id}/dependencies.
type addDependencyRequest struct {
	PrerequisiteID string `json:"prerequisite_id"`
}

// checkCycleRequest is the body of POST /api/graph/check.
type checkCycleRequest struct {
	DependentID    string `json:"dependent_id"`
	PrerequisiteID string `json:"prerequisite_id"`
}

// checkCycleResponse reports the dry-run result, including the concrete
// cycle path when one was found.
type checkCycleResponse struct {
	HasCycle bool     `json:"has_cycle"`
	Path     []string `json:"path,omitempty"`
}

// apiError is the structured error payload for every non-2xx response.
type apiError struct {
	Error      string         `json:"error"`
	Path       []string       `json:"path,omitempty"`       // cycle diagnostics
	Dependents []task.TaskRef `json:"dependents,omitempty"` // deletion guard
}
