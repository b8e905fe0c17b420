package task

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service composes the cycle detector and status engine over a GraphStore
// into the externally callable graph operations. Every mutating operation
// runs under one lock and inside one store transaction, so the cycle check
// observes the same edge snapshot its insert commits against and a cascade
// either applies completely or not at all.
type Service struct {
	store              GraphStore
	overrideInProgress bool

	mu sync.Mutex // serializes mutating operations, including their cascades
}

// NewService creates a graph service on top of the given store.
// overrideInProgress is the derivation policy for manually started tasks.
func NewService(store GraphStore, overrideInProgress bool) *Service {
	return &Service{store: store, overrideInProgress: overrideInProgress}
}

// CreateTask validates and inserts a new task. The id is generated when
// empty; the status defaults to pending.
func (s *Service) CreateTask(title, description string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	t := &Task{
		ID:          "task-" + uuid.New().String()[:8],
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.CreateTask(t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// GetTask fetches a task with its prerequisite and dependent ids.
func (s *Service) GetTask(id string) (*Task, error) {
	return s.store.GetTask(id)
}

// ListTasks returns all tasks, newest first.
func (s *Service) ListTasks() ([]Task, error) {
	return s.store.ListTasks()
}

// UpdateTask rewrites a task's title and/or description. Empty arguments
// leave the existing value in place.
func (s *Service) UpdateTask(id, title, description string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.GetTask(id)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = t.Title
	}
	if description == "" {
		description = t.Description
	}
	next := *t
	next.Title = title
	next.Description = description
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.UpdateTask(id, title, description); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.store.GetTask(id)
}

// AddDependency inserts the edge dependent -> prerequisite after validating
// it: no self-loop, no duplicate, no cycle. On success the dependent's
// status is immediately re-derived so the new constraint is reflected.
func (s *Service) AddDependency(dependentID, prerequisiteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dependentID == prerequisiteID {
		return ErrSelfDependency
	}

	return s.store.WithTx(func(tx GraphStore) error {
		// Both endpoints must exist before the edge does.
		if _, err := tx.GetTask(dependentID); err != nil {
			return err
		}
		if _, err := tx.GetTask(prerequisiteID); err != nil {
			return err
		}

		exists, err := tx.EdgeExists(dependentID, prerequisiteID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateEdge
		}

		// The cycle check runs against the pre-insert snapshot inside
		// the same transaction that performs the insert.
		cyclic, path, err := NewCycleDetector(tx).WouldCreateCycle(dependentID, prerequisiteID)
		if err != nil {
			return err
		}
		if cyclic {
			return &CycleError{Path: path}
		}

		if err := tx.InsertEdge(dependentID, prerequisiteID); err != nil {
			return err
		}

		_, _, err = NewStatusEngine(tx, s.overrideInProgress).DeriveFromPrerequisites(dependentID)
		return err
	})
}

// RemoveDependency deletes the edge dependent -> prerequisite and re-derives
// the dependent's status; dropping a blocking edge may unblock it.
func (s *Service) RemoveDependency(dependentID, prerequisiteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.WithTx(func(tx GraphStore) error {
		if err := tx.DeleteEdge(dependentID, prerequisiteID); err != nil {
			return err
		}
		_, _, err := NewStatusEngine(tx, s.overrideInProgress).DeriveFromPrerequisites(dependentID)
		return err
	})
}

// SetStatus applies a manual status transition. Completing a task triggers
// the cascade across its dependents' closure; the write and the whole
// cascade commit together.
func (s *Service) SetStatus(taskID string, status TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.WithTx(func(tx GraphStore) error {
		if _, err := tx.GetTask(taskID); err != nil {
			return err
		}
		if err := tx.SetTaskStatus(taskID, status); err != nil {
			return err
		}
		if status == StatusCompleted {
			return NewStatusEngine(tx, s.overrideInProgress).CascadeOnCompletion(taskID)
		}
		return nil
	})
}

// DeleteTask removes a task and the edges it owns. Deletion is rejected
// while other tasks still list it as a prerequisite; the error names every
// dependent so the caller can see what is in the way.
func (s *Service) DeleteTask(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.WithTx(func(tx GraphStore) error {
		if _, err := tx.GetTask(taskID); err != nil {
			return err
		}

		dependents, err := tx.ListEdgesByPrerequisite(taskID)
		if err != nil {
			return err
		}
		if len(dependents) > 0 {
			herr := &HasDependentsError{TaskID: taskID}
			for _, id := range dependents {
				d, err := tx.GetTask(id)
				if err != nil {
					return err
				}
				herr.Dependents = append(herr.Dependents, TaskRef{ID: d.ID, Title: d.Title, Status: d.Status})
			}
			return herr
		}

		return tx.DeleteTask(taskID)
	})
}

// CheckCycle is the read-only dry run of the cycle detector, exposed for
// pre-flight checks from the API and CLI.
func (s *Service) CheckCycle(dependentID, prerequisiteID string) (bool, []string, error) {
	return NewCycleDetector(s.store).WouldCreateCycle(dependentID, prerequisiteID)
}

// Readiness reports whether a task's prerequisites are all completed.
func (s *Service) Readiness(taskID string) (*Readiness, error) {
	return NewStatusEngine(s.store, s.overrideInProgress).ComputeReadiness(taskID)
}

// Snapshot returns every task and edge for visualization. Readers tolerate
// observing a graph mid-cascade; snapshots are not serialized against writes.
func (s *Service) Snapshot() (*Snapshot, error) {
	tasks, err := s.store.ListTasks()
	if err != nil {
		return nil, fmt.Errorf("snapshot tasks: %w", err)
	}
	edges, err := s.store.ListEdges()
	if err != nil {
		return nil, fmt.Errorf("snapshot edges: %w", err)
	}

	snap := &Snapshot{Tasks: make([]TaskRef, 0, len(tasks)), Edges: edges}
	for _, t := range tasks {
		snap.Tasks = append(snap.Tasks, TaskRef{ID: t.ID, Title: t.Title, Status: t.Status})
	}
	return snap, nil
}
