package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/josephgoksu/TaskGraph/internal/task"
	"github.com/josephgoksu/TaskGraph/internal/ui"
)

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
// In verbose mode the underlying technical error is shown instead of the
// user-friendly message.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// ExitWithGraphError prints a graph-taxonomy error with its diagnostics
// (cycle path, dependent list) and exits non-zero.
func ExitWithGraphError(err error) {
	var cycleErr *task.CycleError
	var depsErr *task.HasDependentsError

	switch {
	case errors.As(err, &cycleErr):
		fmt.Fprintln(os.Stderr, ui.StyleError.Render("Circular dependency detected:"))
		for i, id := range cycleErr.Path {
			prefix := "  "
			if i > 0 {
				prefix = "    -> "
			}
			fmt.Fprintf(os.Stderr, "%s%s\n", prefix, id)
		}
	case errors.As(err, &depsErr):
		fmt.Fprintln(os.Stderr, ui.StyleError.Render("Cannot delete: other tasks depend on it:"))
		for _, d := range depsErr.Dependents {
			fmt.Fprintf(os.Stderr, "  %s  %s\n", d.ID, d.Title)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
