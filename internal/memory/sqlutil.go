package memory

import (
	"database/sql"
	"fmt"

	"github.com/josephgoksu/TaskGraph/internal/task"
)

// checkRowsErr checks for errors that may have occurred during row iteration.
// Call after a for rows.Next() loop to catch iteration errors that
// rows.Next() doesn't report directly.
func checkRowsErr(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}

// requireAffected turns a zero-rows-affected update into ErrTaskNotFound.
func requireAffected(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return nil
}
