package memory

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/josephgoksu/TaskGraph/internal/task"
)

const taskSelectColumns = `id, title, description, status, created_at, updated_at`

// taskRowScanner abstracts row scanning for reuse between QueryRow and rows.Next().
type taskRowScanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row taskRowScanner) (task.Task, error) {
	var t task.Task
	var desc sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&t.ID, &t.Title, &desc, &t.Status, &createdAt, &updatedAt); err != nil {
		return t, err
	}
	t.Description = desc.String
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

// CreateTask inserts a new task row.
func (s *SQLiteStore) CreateTask(t *task.Task) error {
	_, err := s.q.Exec(`
		INSERT INTO tasks (id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Description, t.Status,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert task %s: %w", t.ID, err)
	}
	return nil
}

// GetTask retrieves a task by id, with edge lists in both directions.
func (s *SQLiteStore) GetTask(id string) (*task.Task, error) {
	row := s.q.QueryRow(`SELECT `+taskSelectColumns+` FROM tasks WHERE id = ?`, id)

	t, err := scanTaskRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query task: %w", err)
	}

	if t.Prerequisites, err = s.ListEdgesByDependent(id); err != nil {
		return nil, err
	}
	if t.Dependents, err = s.ListEdgesByPrerequisite(id); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks returns all tasks, newest first.
func (s *SQLiteStore) ListTasks() ([]task.Task, error) {
	rows, err := s.q.Query(`SELECT ` + taskSelectColumns + ` FROM tasks ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	// Populate edge lists with one pass over task_dependencies instead of
	// two queries per task.
	if len(tasks) > 0 {
		edges, err := s.ListEdges()
		if err != nil {
			return nil, err
		}
		prereqs := make(map[string][]string)
		dependents := make(map[string][]string)
		for _, e := range edges {
			prereqs[e.DependentID] = append(prereqs[e.DependentID], e.PrerequisiteID)
			dependents[e.PrerequisiteID] = append(dependents[e.PrerequisiteID], e.DependentID)
		}
		for i := range tasks {
			tasks[i].Prerequisites = prereqs[tasks[i].ID]
			tasks[i].Dependents = dependents[tasks[i].ID]
		}
	}
	return tasks, nil
}

// UpdateTask rewrites title and description, bumping updated_at.
func (s *SQLiteStore) UpdateTask(id, title, description string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.q.Exec(`UPDATE tasks SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		title, description, now, id)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireAffected(res, id)
}

// SetTaskStatus performs the partial status + updated_at write.
func (s *SQLiteStore) SetTaskStatus(id string, status task.TaskStatus) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.q.Exec(`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`, status, now, id)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return requireAffected(res, id)
}

// DeleteTask removes the task row and the edges naming it as the dependent.
// The dependents guard lives in the service layer.
func (s *SQLiteStore) DeleteTask(id string) error {
	if _, err := s.q.Exec(`DELETE FROM task_dependencies WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("delete task edges: %w", err)
	}
	res, err := s.q.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res, id)
}

// ListEdgesByDependent returns the prerequisite ids of the given task.
func (s *SQLiteStore) ListEdgesByDependent(dependentID string) ([]string, error) {
	return s.queryIDs(`SELECT depends_on FROM task_dependencies WHERE task_id = ? ORDER BY created_at, depends_on`, dependentID)
}

// ListEdgesByPrerequisite returns the ids of tasks that depend on the given task.
func (s *SQLiteStore) ListEdgesByPrerequisite(prerequisiteID string) ([]string, error) {
	return s.queryIDs(`SELECT task_id FROM task_dependencies WHERE depends_on = ? ORDER BY created_at, task_id`, prerequisiteID)
}

func (s *SQLiteStore) queryIDs(query, arg string) ([]string, error) {
	rows, err := s.q.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}
	return ids, nil
}

// EdgeExists reports whether the exact dependency pair is present.
func (s *SQLiteStore) EdgeExists(dependentID, prerequisiteID string) (bool, error) {
	var one int
	err := s.q.QueryRow(`SELECT 1 FROM task_dependencies WHERE task_id = ? AND depends_on = ?`,
		dependentID, prerequisiteID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query edge: %w", err)
	}
	return true, nil
}

// InsertEdge adds a dependency edge.
func (s *SQLiteStore) InsertEdge(dependentID, prerequisiteID string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.q.Exec(`INSERT INTO task_dependencies (task_id, depends_on, created_at) VALUES (?, ?, ?)`,
		dependentID, prerequisiteID, now)
	if err != nil {
		return fmt.Errorf("insert dependency %s -> %s: %w", dependentID, prerequisiteID, err)
	}
	return nil
}

// DeleteEdge removes a dependency edge.
func (s *SQLiteStore) DeleteEdge(dependentID, prerequisiteID string) error {
	res, err := s.q.Exec(`DELETE FROM task_dependencies WHERE task_id = ? AND depends_on = ?`,
		dependentID, prerequisiteID)
	if err != nil {
		return fmt.Errorf("delete dependency: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete dependency rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s -> %s", task.ErrEdgeNotFound, dependentID, prerequisiteID)
	}
	return nil
}

// ListEdges returns every dependency edge in the graph.
func (s *SQLiteStore) ListEdges() ([]task.Edge, error) {
	rows, err := s.q.Query(`SELECT task_id, depends_on, created_at FROM task_dependencies ORDER BY created_at, task_id`)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var edges []task.Edge
	for rows.Next() {
		var e task.Edge
		var createdAt string
		if err := rows.Scan(&e.DependentID, &e.PrerequisiteID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		edges = append(edges, e)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}
	return edges, nil
}

// WithTx runs fn against a transactional view of the store. On error every
// write inside fn is rolled back. Calling WithTx on a view that is already
// transactional just reuses the open transaction.
func (s *SQLiteStore) WithTx(fn func(task.GraphStore) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&SQLiteStore{q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}
