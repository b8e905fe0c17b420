package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/TaskGraph/internal/task"
	"github.com/josephgoksu/TaskGraph/internal/ui"
)

// startCmd marks a task as in_progress.
var startCmd = &cobra.Command{
	Use:     "start [task_id]",
	Aliases: []string{"begin"},
	Short:   "Mark a task as in progress",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setStatusRun(args, task.StatusInProgress, func(t task.Task) bool {
			return t.Status == task.StatusPending
		}, "Select a task to start")
	},
}

// doneCmd marks a task as completed and cascades the status update.
var doneCmd = &cobra.Command{
	Use:     "done [task_id]",
	Aliases: []string{"finish", "complete", "d"},
	Short:   "Mark a task as done",
	Long: `Mark a task as completed. Every task that depends on it, directly or
transitively, is re-evaluated: dependents whose prerequisites are now all
completed flip from blocked to pending.`,
	Example: `  # Interactive mode
  taskgraph done

  # Complete a specific task
  taskgraph done task-a1b2c3d4`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setStatusRun(args, task.StatusCompleted, func(t task.Task) bool {
			return t.Status != task.StatusCompleted
		}, "Select a task to mark as done")
	},
}

// statusCmd applies an arbitrary manual status transition.
var statusCmd = &cobra.Command{
	Use:   "status <task_id> <status>",
	Short: "Set a task's status directly",
	Long: `Set a task's status to any of: pending, in_progress, completed, blocked.
Setting completed triggers the dependency cascade.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		st, err := task.ParseStatus(args[1])
		if err != nil {
			HandleFatalError(err.Error(), err)
		}
		setStatusRun(args[:1], st, nil, "")
	},
}

func setStatusRun(args []string, status task.TaskStatus, filterFn func(task.Task) bool, label string) {
	svc, store, err := GetService()
	if err != nil {
		HandleFatalError("Error: Could not initialize the task store.", err)
	}
	defer func() { _ = store.Close() }()

	id, err := resolveTaskArg(svc, args, filterFn, label)
	if err != nil {
		HandleFatalError("Error: Could not select a task.", err)
	}

	if err := svc.SetStatus(id, status); err != nil {
		ExitWithGraphError(err)
	}

	t, err := svc.GetTask(id)
	if err != nil {
		ExitWithGraphError(err)
	}
	fmt.Printf("%s %s is now %s\n", ui.StyleSuccess.Render("✔"), t.Title, ui.StatusBadge(t.Status))

	if status == task.StatusCompleted && len(t.Dependents) > 0 {
		fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf("Re-evaluated %d dependent task(s).", len(t.Dependents))))
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(statusCmd)
}
