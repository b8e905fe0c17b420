package task

// StatusEngine keeps task statuses consistent with the completion state of
// their prerequisites.
//
// Rules:
//  1. A task with no prerequisites is never touched automatically.
//  2. A task with prerequisites is blocked while any prerequisite is
//     incomplete, and pending (ready to work) once all are completed.
//  3. A completed task is never demoted by derivation; completion is sticky.
//  4. Whether a manually started (in_progress) task may be demoted is a
//     policy choice, off by default.
type StatusEngine struct {
	store GraphStore

	// overrideInProgress lets derivation flip an in_progress task back to
	// blocked/pending when its prerequisites change. Defaults to false:
	// in_progress is treated as a manual state the engine stays out of.
	overrideInProgress bool
}

// NewStatusEngine returns an engine writing through the given store.
func NewStatusEngine(store GraphStore, overrideInProgress bool) *StatusEngine {
	return &StatusEngine{store: store, overrideInProgress: overrideInProgress}
}

// DeriveFromPrerequisites recomputes a task's status from its direct
// prerequisites and persists it when it changed. The derivation is purely
// local: transitive correctness comes from CascadeOnCompletion having already
// pushed fresh statuses down to the direct prerequisites.
func (e *StatusEngine) DeriveFromPrerequisites(taskID string) (bool, TaskStatus, error) {
	t, err := e.store.GetTask(taskID)
	if err != nil {
		return false, "", err
	}

	prereqs, err := e.store.ListEdgesByDependent(taskID)
	if err != nil {
		return false, "", err
	}
	if len(prereqs) == 0 {
		return false, t.Status, nil
	}

	if t.Status == StatusCompleted {
		return false, t.Status, nil
	}
	if t.Status == StatusInProgress && !e.overrideInProgress {
		return false, t.Status, nil
	}

	allDone := true
	for _, pid := range prereqs {
		p, err := e.store.GetTask(pid)
		if err != nil {
			return false, "", err
		}
		if p.Status != StatusCompleted {
			allDone = false
			break
		}
	}

	newStatus := StatusBlocked
	if allDone {
		newStatus = StatusPending
	}
	if newStatus == t.Status {
		return false, t.Status, nil
	}

	if err := e.store.SetTaskStatus(taskID, newStatus); err != nil {
		return false, "", err
	}
	return true, newStatus, nil
}

// CascadeOnCompletion re-derives every task transitively reachable from a
// newly completed task via dependent edges. It walks the dependents' closure
// iteratively (queue + visited set inside traverse) rather than recursing, so
// deep chains cannot exhaust the stack. Termination is guaranteed by the
// acyclic invariant; the visited set just keeps diamonds from repeating work.
func (e *StatusEngine) CascadeOnCompletion(taskID string) error {
	t, err := e.store.GetTask(taskID)
	if err != nil {
		return err
	}
	// Guard against stale invocation: only a task that is actually
	// completed propagates anything.
	if t.Status != StatusCompleted {
		return nil
	}

	return traverse(taskID,
		func(id string) ([]string, error) {
			return e.store.ListEdgesByPrerequisite(id)
		},
		func(id string) (bool, error) {
			if id == taskID {
				return false, nil
			}
			if _, _, err := e.DeriveFromPrerequisites(id); err != nil {
				return true, err
			}
			return false, nil
		})
}

// ComputeReadiness reports whether a task can be worked on right now and
// lists the prerequisites that still stand in the way. A task with no
// prerequisites is always ready.
func (e *StatusEngine) ComputeReadiness(taskID string) (*Readiness, error) {
	if _, err := e.store.GetTask(taskID); err != nil {
		return nil, err
	}

	prereqs, err := e.store.ListEdgesByDependent(taskID)
	if err != nil {
		return nil, err
	}

	r := &Readiness{TaskID: taskID, Ready: true}
	for _, pid := range prereqs {
		p, err := e.store.GetTask(pid)
		if err != nil {
			return nil, err
		}
		if p.Status != StatusCompleted {
			r.Blocking = append(r.Blocking, TaskRef{ID: p.ID, Title: p.Title, Status: p.Status})
		}
	}
	r.Ready = len(r.Blocking) == 0
	return r, nil
}
