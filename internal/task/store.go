package task

// GraphStore defines the persistence contract the graph engine runs against.
// It is deliberately narrow: tasks keyed by id plus a set of directed
// dependency edges, with lookups in both edge directions.
type GraphStore interface {
	// CreateTask inserts a new task row.
	CreateTask(t *Task) error

	// GetTask retrieves a task by id, with Prerequisites and Dependents
	// populated. Returns ErrTaskNotFound if the id is absent.
	GetTask(id string) (*Task, error)

	// ListTasks returns all tasks, newest first.
	ListTasks() ([]Task, error)

	// UpdateTask rewrites the mutable detail fields (title, description)
	// and bumps updated_at.
	UpdateTask(id, title, description string) error

	// SetTaskStatus performs a partial update of status + updated_at only.
	SetTaskStatus(id string, status TaskStatus) error

	// DeleteTask removes the task row and every edge where it is the
	// dependent. Edges where it is the prerequisite are the service's
	// problem to guard; the store does not enforce that rule.
	DeleteTask(id string) error

	// ListEdgesByDependent returns the prerequisite ids of the given task.
	ListEdgesByDependent(dependentID string) ([]string, error)

	// ListEdgesByPrerequisite returns the ids of tasks that directly
	// depend on the given task.
	ListEdgesByPrerequisite(prerequisiteID string) ([]string, error)

	// EdgeExists reports whether the exact (dependent, prerequisite) pair
	// is already present.
	EdgeExists(dependentID, prerequisiteID string) (bool, error)

	// InsertEdge adds a dependency edge.
	InsertEdge(dependentID, prerequisiteID string) error

	// DeleteEdge removes a dependency edge. Returns ErrEdgeNotFound when
	// the pair is not present.
	DeleteEdge(dependentID, prerequisiteID string) error

	// ListEdges returns every edge in the graph.
	ListEdges() ([]Edge, error)

	// WithTx runs fn against a transactional view of the store. If fn
	// returns an error every write made inside it is rolled back; the
	// graph is never left with a half-applied cascade.
	WithTx(fn func(GraphStore) error) error

	// Close releases the underlying resources.
	Close() error
}
