package task_test

import (
	"testing"

	"github.com/josephgoksu/TaskGraph/internal/task"
)

func TestDerive_NoPrerequisitesIsUntouched(t *testing.T) {
	svc, store := newTestService(t)
	a := mustCreate(t, svc, "A")

	eng := task.NewStatusEngine(store, false)
	changed, status, err := eng.DeriveFromPrerequisites(a)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if changed {
		t.Error("task without prerequisites must never be auto-derived")
	}
	if status != task.StatusPending {
		t.Errorf("expected pending, got %s", status)
	}
}

func TestDerive_BlockedWhilePrereqIncomplete(t *testing.T) {
	svc, store := newTestService(t)
	a := mustCreate(t, svc, "A")
	b := mustCreate(t, svc, "B")

	if err := svc.AddDependency(b, a); err != nil {
		t.Fatalf("add dependency: %v", err)
	}

	// AddDependency already derived: B must be blocked while A is pending.
	got, err := svc.GetTask(b)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != task.StatusBlocked {
		t.Errorf("expected blocked, got %s", got.Status)
	}

	// Completing A and re-deriving flips B to pending.
	if err := store.SetTaskStatus(a, task.StatusCompleted); err != nil {
		t.Fatalf("set status: %v", err)
	}
	eng := task.NewStatusEngine(store, false)
	changed, status, err := eng.DeriveFromPrerequisites(b)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !changed || status != task.StatusPending {
		t.Errorf("expected change to pending, got changed=%v status=%s", changed, status)
	}
}

func TestDerive_CompletedIsSticky(t *testing.T) {
	svc, store := newTestService(t)
	a := mustCreate(t, svc, "A")
	b := mustCreate(t, svc, "B")

	if err := svc.AddDependency(b, a); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	// B was manually finished even though A is not done.
	if err := store.SetTaskStatus(b, task.StatusCompleted); err != nil {
		t.Fatalf("set status: %v", err)
	}

	changed, status, err := task.NewStatusEngine(store, false).DeriveFromPrerequisites(b)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if changed {
		t.Error("derivation must never demote a completed task")
	}
	if status != task.StatusCompleted {
		t.Errorf("expected completed, got %s", status)
	}
}

func TestDerive_InProgressPolicy(t *testing.T) {
	t.Run("default keeps in_progress", func(t *testing.T) {
		svc, store := newTestService(t)
		a := mustCreate(t, svc, "A")
		b := mustCreate(t, svc, "B")
		if err := svc.AddDependency(b, a); err != nil {
			t.Fatalf("add dependency: %v", err)
		}
		if err := store.SetTaskStatus(b, task.StatusInProgress); err != nil {
			t.Fatalf("set status: %v", err)
		}

		changed, status, err := task.NewStatusEngine(store, false).DeriveFromPrerequisites(b)
		if err != nil {
			t.Fatalf("derive: %v", err)
		}
		if changed || status != task.StatusInProgress {
			t.Errorf("in_progress must survive derivation by default, got changed=%v status=%s", changed, status)
		}
	})

	t.Run("override demotes in_progress", func(t *testing.T) {
		svc, store := newTestService(t)
		a := mustCreate(t, svc, "A")
		b := mustCreate(t, svc, "B")
		if err := svc.AddDependency(b, a); err != nil {
			t.Fatalf("add dependency: %v", err)
		}
		if err := store.SetTaskStatus(b, task.StatusInProgress); err != nil {
			t.Fatalf("set status: %v", err)
		}

		changed, status, err := task.NewStatusEngine(store, true).DeriveFromPrerequisites(b)
		if err != nil {
			t.Fatalf("derive: %v", err)
		}
		if !changed || status != task.StatusBlocked {
			t.Errorf("expected demotion to blocked with override enabled, got changed=%v status=%s", changed, status)
		}
	})
}

// The worked example: B and C depend on A, D depends on both B and C.
// Completing A readies B and C but leaves D blocked; completing B then C
// readies D.
func TestCascade_Diamond(t *testing.T) {
	svc, _ := newTestService(t)

	a := mustCreate(t, svc, "A")
	b := mustCreate(t, svc, "B")
	c := mustCreate(t, svc, "C")
	d := mustCreate(t, svc, "D")

	for _, pair := range [][2]string{{b, a}, {c, a}, {d, b}, {d, c}} {
		if err := svc.AddDependency(pair[0], pair[1]); err != nil {
			t.Fatalf("add dependency %v: %v", pair, err)
		}
	}

	assertStatus := func(id string, want task.TaskStatus) {
		t.Helper()
		got, err := svc.GetTask(id)
		if err != nil {
			t.Fatalf("get task: %v", err)
		}
		if got.Status != want {
			t.Errorf("task %s: expected %s, got %s", id, want, got.Status)
		}
	}

	assertStatus(b, task.StatusBlocked)
	assertStatus(c, task.StatusBlocked)
	assertStatus(d, task.StatusBlocked)

	if err := svc.SetStatus(a, task.StatusCompleted); err != nil {
		t.Fatalf("complete A: %v", err)
	}
	assertStatus(b, task.StatusPending)
	assertStatus(c, task.StatusPending)
	assertStatus(d, task.StatusBlocked) // C is still pending

	if err := svc.SetStatus(b, task.StatusCompleted); err != nil {
		t.Fatalf("complete B: %v", err)
	}
	assertStatus(d, task.StatusBlocked)

	if err := svc.SetStatus(c, task.StatusCompleted); err != nil {
		t.Fatalf("complete C: %v", err)
	}
	assertStatus(d, task.StatusPending)
}

func TestCascade_DeepChain(t *testing.T) {
	svc, _ := newTestService(t)

	// t0 <- t1 <- ... <- t49, each depending on the previous one.
	const depth = 50
	ids := make([]string, depth)
	for i := range ids {
		ids[i] = mustCreate(t, svc, "chain")
	}
	for i := 1; i < depth; i++ {
		if err := svc.AddDependency(ids[i], ids[i-1]); err != nil {
			t.Fatalf("add dependency at depth %d: %v", i, err)
		}
	}

	if err := svc.SetStatus(ids[0], task.StatusCompleted); err != nil {
		t.Fatalf("complete head: %v", err)
	}

	// Only the direct dependent becomes pending; everything deeper still
	// waits on its own incomplete prerequisite.
	for i := 1; i < depth; i++ {
		got, err := svc.GetTask(ids[i])
		if err != nil {
			t.Fatalf("get task: %v", err)
		}
		want := task.StatusBlocked
		if i == 1 {
			want = task.StatusPending
		}
		if got.Status != want {
			t.Fatalf("depth %d: expected %s, got %s", i, want, got.Status)
		}
	}

	// Completing the whole chain front to back unblocks it link by link.
	for i := 1; i < depth; i++ {
		if err := svc.SetStatus(ids[i], task.StatusCompleted); err != nil {
			t.Fatalf("complete depth %d: %v", i, err)
		}
	}
	got, err := svc.GetTask(ids[depth-1])
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != task.StatusCompleted {
		t.Fatalf("expected tail completed, got %s", got.Status)
	}
}

func TestCascade_NoopWhenNotCompleted(t *testing.T) {
	svc, store := newTestService(t)
	a := mustCreate(t, svc, "A")
	b := mustCreate(t, svc, "B")
	if err := svc.AddDependency(b, a); err != nil {
		t.Fatalf("add dependency: %v", err)
	}

	// A is still pending; a stale cascade invocation must not touch B.
	if err := task.NewStatusEngine(store, false).CascadeOnCompletion(a); err != nil {
		t.Fatalf("cascade: %v", err)
	}
	got, err := svc.GetTask(b)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != task.StatusBlocked {
		t.Errorf("expected blocked, got %s", got.Status)
	}
}

func TestCascade_Idempotent(t *testing.T) {
	svc, store := newTestService(t)
	a := mustCreate(t, svc, "A")
	b := mustCreate(t, svc, "B")
	if err := svc.AddDependency(b, a); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	if err := svc.SetStatus(a, task.StatusCompleted); err != nil {
		t.Fatalf("complete A: %v", err)
	}

	before, err := svc.GetTask(b)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}

	// Re-running the cascade on a stable graph must change nothing.
	eng := task.NewStatusEngine(store, false)
	if err := eng.CascadeOnCompletion(a); err != nil {
		t.Fatalf("second cascade: %v", err)
	}
	changed, _, err := eng.DeriveFromPrerequisites(b)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if changed {
		t.Error("derivation on a stable graph reported a change")
	}

	after, err := svc.GetTask(b)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("idempotent cascade still rewrote the task")
	}
}

func TestComputeReadiness(t *testing.T) {
	svc, store := newTestService(t)
	a := mustCreate(t, svc, "API")
	b := mustCreate(t, svc, "Frontend")
	if err := svc.AddDependency(b, a); err != nil {
		t.Fatalf("add dependency: %v", err)
	}

	eng := task.NewStatusEngine(store, false)

	r, err := eng.ComputeReadiness(b)
	if err != nil {
		t.Fatalf("readiness: %v", err)
	}
	if r.Ready {
		t.Error("expected not ready while prerequisite is pending")
	}
	if len(r.Blocking) != 1 || r.Blocking[0].ID != a || r.Blocking[0].Title != "API" {
		t.Errorf("expected blocking entry for %s, got %+v", a, r.Blocking)
	}

	if err := svc.SetStatus(a, task.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	r, err = eng.ComputeReadiness(b)
	if err != nil {
		t.Fatalf("readiness: %v", err)
	}
	if !r.Ready || len(r.Blocking) != 0 {
		t.Errorf("expected ready after prerequisite completion, got %+v", r)
	}

	// No prerequisites means always ready.
	r, err = eng.ComputeReadiness(a)
	if err != nil {
		t.Fatalf("readiness: %v", err)
	}
	if !r.Ready {
		t.Error("task without prerequisites must be ready")
	}
}
