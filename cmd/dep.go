package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/TaskGraph/internal/ui"
)

// depCmd groups the dependency operations.
var depCmd = &cobra.Command{
	Use:     "dep",
	Aliases: []string{"dependency", "deps"},
	Short:   "Manage dependencies between tasks",
}

var depAddCmd = &cobra.Command{
	Use:   "add <task_id> <prerequisite_id>",
	Short: "Make a task depend on another",
	Long: `Add a dependency edge: the first task cannot be worked until the second
is completed. The edge is rejected if it would duplicate an existing one,
connect a task to itself, or close a cycle — in which case the offending
path is printed.`,
	Example: `  taskgraph dep add task-front task-api`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = store.Close() }()

		if err := svc.AddDependency(args[0], args[1]); err != nil {
			ExitWithGraphError(err)
		}

		t, err := svc.GetTask(args[0])
		if err != nil {
			ExitWithGraphError(err)
		}
		fmt.Printf("%s %s now depends on %s (status: %s)\n",
			ui.StyleSuccess.Render("✔"), args[0], args[1], ui.StatusBadge(t.Status))
	},
}

var depRmCmd = &cobra.Command{
	Use:     "rm <task_id> <prerequisite_id>",
	Aliases: []string{"remove", "del"},
	Short:   "Remove a dependency",
	Long:    `Remove a dependency edge and re-evaluate the dependent task; dropping the only incomplete prerequisite unblocks it.`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = store.Close() }()

		if err := svc.RemoveDependency(args[0], args[1]); err != nil {
			ExitWithGraphError(err)
		}

		t, err := svc.GetTask(args[0])
		if err != nil {
			ExitWithGraphError(err)
		}
		fmt.Printf("%s %s no longer depends on %s (status: %s)\n",
			ui.StyleSuccess.Render("✔"), args[0], args[1], ui.StatusBadge(t.Status))
	},
}

var depCheckCmd = &cobra.Command{
	Use:   "check <task_id> <prerequisite_id>",
	Short: "Check whether a dependency would create a cycle",
	Long:  `Dry-run the cycle detector for a proposed edge without changing the graph.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = store.Close() }()

		hasCycle, path, err := svc.CheckCycle(args[0], args[1])
		if err != nil {
			ExitWithGraphError(err)
		}

		if !hasCycle {
			fmt.Println(ui.StyleSuccess.Render("✔ safe") + ui.StyleSubtle.Render(" — this dependency would not create a cycle"))
			return
		}
		fmt.Println(ui.StyleError.Render("✘ cycle") + ui.StyleSubtle.Render(" — adding it would close this loop:"))
		for _, id := range path {
			fmt.Printf("  %s\n", id)
		}
	},
}

func init() {
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRmCmd)
	depCmd.AddCommand(depCheckCmd)
	rootCmd.AddCommand(depCmd)
}
