package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/josephgoksu/TaskGraph/internal/memory"
	"github.com/josephgoksu/TaskGraph/internal/task"
)

func newTestStore(t *testing.T) *memory.SQLiteStore {
	t.Helper()
	store, err := memory.NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTask(id, title string) *task.Task {
	now := time.Now().UTC()
	return &task.Task{
		ID:        id,
		Title:     title,
		Status:    task.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTaskRoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := newTask("task-1", "Build schema")
	in.Description = "tables and indexes"
	if err := store.CreateTask(in); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetTask("task-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != in.Title || got.Description != in.Description || got.Status != task.StatusPending {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not persisted")
	}
}

func TestGetTask_NotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetTask("task-nope"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestUpdateAndStatus(t *testing.T) {
	store := newTestStore(t)
	if err := store.CreateTask(newTask("task-1", "old")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.UpdateTask("task-1", "new title", "new desc"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := store.SetTaskStatus("task-1", task.StatusInProgress); err != nil {
		t.Fatalf("set status: %v", err)
	}

	got, err := store.GetTask("task-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "new title" || got.Description != "new desc" || got.Status != task.StatusInProgress {
		t.Errorf("update not applied: %+v", got)
	}

	if err := store.UpdateTask("task-nope", "x", "y"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
	if err := store.SetTaskStatus("task-nope", task.StatusCompleted); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestEdgeOperations(t *testing.T) {
	store := newTestStore(t)
	for _, id := range []string{"task-a", "task-b", "task-c"} {
		if err := store.CreateTask(newTask(id, id)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	if err := store.InsertEdge("task-b", "task-a"); err != nil {
		t.Fatalf("insert edge: %v", err)
	}
	if err := store.InsertEdge("task-c", "task-a"); err != nil {
		t.Fatalf("insert edge: %v", err)
	}

	exists, err := store.EdgeExists("task-b", "task-a")
	if err != nil || !exists {
		t.Errorf("expected edge to exist, got %v %v", exists, err)
	}
	exists, err = store.EdgeExists("task-a", "task-b")
	if err != nil || exists {
		t.Errorf("reverse edge must not exist, got %v %v", exists, err)
	}

	prereqs, err := store.ListEdgesByDependent("task-b")
	if err != nil {
		t.Fatalf("list by dependent: %v", err)
	}
	if len(prereqs) != 1 || prereqs[0] != "task-a" {
		t.Errorf("unexpected prerequisites: %v", prereqs)
	}

	dependents, err := store.ListEdgesByPrerequisite("task-a")
	if err != nil {
		t.Fatalf("list by prerequisite: %v", err)
	}
	if len(dependents) != 2 {
		t.Errorf("expected 2 dependents, got %v", dependents)
	}

	if err := store.DeleteEdge("task-b", "task-a"); err != nil {
		t.Fatalf("delete edge: %v", err)
	}
	if err := store.DeleteEdge("task-b", "task-a"); !errors.Is(err, task.ErrEdgeNotFound) {
		t.Errorf("expected ErrEdgeNotFound, got %v", err)
	}
}

func TestListTasks_OrderAndEdges(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().UTC()
	for i, id := range []string{"task-a", "task-b", "task-c"} {
		tk := newTask(id, id)
		tk.CreatedAt = base.Add(time.Duration(i) * time.Second)
		tk.UpdatedAt = tk.CreatedAt
		if err := store.CreateTask(tk); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if err := store.InsertEdge("task-c", "task-a"); err != nil {
		t.Fatalf("insert edge: %v", err)
	}

	tasks, err := store.ListTasks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	// Newest first.
	if tasks[0].ID != "task-c" {
		t.Errorf("expected task-c first, got %s", tasks[0].ID)
	}

	byID := make(map[string]task.Task)
	for _, tk := range tasks {
		byID[tk.ID] = tk
	}
	if len(byID["task-c"].Prerequisites) != 1 || byID["task-c"].Prerequisites[0] != "task-a" {
		t.Errorf("task-c prerequisites not populated: %v", byID["task-c"].Prerequisites)
	}
	if len(byID["task-a"].Dependents) != 1 || byID["task-a"].Dependents[0] != "task-c" {
		t.Errorf("task-a dependents not populated: %v", byID["task-a"].Dependents)
	}
}

func TestDeleteTask_CascadesOwnEdges(t *testing.T) {
	store := newTestStore(t)
	if err := store.CreateTask(newTask("task-a", "a")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.CreateTask(newTask("task-b", "b")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.InsertEdge("task-b", "task-a"); err != nil {
		t.Fatalf("insert edge: %v", err)
	}

	if err := store.DeleteTask("task-b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	edges, err := store.ListEdges()
	if err != nil {
		t.Fatalf("list edges: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("edges owned by deleted task survived: %+v", edges)
	}

	if err := store.DeleteTask("task-nope"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	store := newTestStore(t)

	sentinel := errors.New("boom")
	err := store.WithTx(func(s task.GraphStore) error {
		if err := s.CreateTask(newTask("task-tx", "inside tx")); err != nil {
			return err
		}
		// The write is visible inside the transaction.
		if _, err := s.GetTask("task-tx"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	if _, err := store.GetTask("task-tx"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("rolled-back write is visible: %v", err)
	}
}

func TestWithTx_Commit(t *testing.T) {
	store := newTestStore(t)

	err := store.WithTx(func(s task.GraphStore) error {
		return s.CreateTask(newTask("task-tx", "inside tx"))
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}
	if _, err := store.GetTask("task-tx"); err != nil {
		t.Errorf("committed write not visible: %v", err)
	}
}
