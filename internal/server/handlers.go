package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/josephgoksu/TaskGraph/internal/task"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.ListTasks()
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	writeAPIJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		writeBadRequest(w, "title is required")
		return
	}

	t, err := s.svc.CreateTask(req.Title, req.Description)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.GetTask(r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if req.Title != "" || req.Description != "" {
		if _, err := s.svc.UpdateTask(id, req.Title, req.Description); err != nil {
			writeAPIError(w, err)
			return
		}
	}

	if req.Status != "" {
		status, err := task.ParseStatus(req.Status)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		if err := s.svc.SetStatus(id, status); err != nil {
			writeAPIError(w, err)
			return
		}
	}

	t, err := s.svc.GetTask(id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTask(r.PathValue("id")); err != nil {
		writeAPIError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddDependency(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req addDependencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.PrerequisiteID == "" {
		writeBadRequest(w, "prerequisite_id is required")
		return
	}

	if err := s.svc.AddDependency(id, req.PrerequisiteID); err != nil {
		writeAPIError(w, err)
		return
	}

	t, err := s.svc.GetTask(id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusCreated, t)
}

func (s *Server) handleRemoveDependency(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveDependency(r.PathValue("id"), r.PathValue("prereqID")); err != nil {
		writeAPIError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	readiness, err := s.svc.Readiness(r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, readiness)
}

func (s *Server) handleCheckCycle(w http.ResponseWriter, r *http.Request) {
	var req checkCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.DependentID == "" || req.PrerequisiteID == "" {
		writeBadRequest(w, "dependent_id and prerequisite_id are required")
		return
	}

	hasCycle, path, err := s.svc.CheckCycle(req.DependentID, req.PrerequisiteID)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, checkCycleResponse{HasCycle: hasCycle, Path: path})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot()
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, snap)
}

func writeAPIJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeAPIJSON(w, http.StatusBadRequest, apiError{Error: msg})
}

// writeAPIError maps the graph error taxonomy onto HTTP status codes.
func writeAPIError(w http.ResponseWriter, err error) {
	var cycleErr *task.CycleError
	var depsErr *task.HasDependentsError

	switch {
	case errors.Is(err, task.ErrTaskNotFound), errors.Is(err, task.ErrEdgeNotFound):
		writeAPIJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
	case errors.Is(err, task.ErrSelfDependency), errors.Is(err, task.ErrDuplicateEdge):
		writeAPIJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
	case errors.As(err, &cycleErr):
		writeAPIJSON(w, http.StatusBadRequest, apiError{Error: "circular dependency detected", Path: cycleErr.Path})
	case errors.As(err, &depsErr):
		writeAPIJSON(w, http.StatusConflict, apiError{Error: "cannot delete task: other tasks depend on it", Dependents: depsErr.Dependents})
	default:
		writeAPIJSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
	}
}
