package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/TaskGraph/internal/ui"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a task",
	Long: `Delete a task and the dependency edges it owns. Deletion is refused while
other tasks still depend on it; those dependents are listed so you can
unlink or delete them first.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = store.Close() }()

		id, err := resolveTaskArg(svc, args, nil, "Select a task to delete")
		if err != nil {
			HandleFatalError("Error: Could not select a task.", err)
		}

		if err := svc.DeleteTask(id); err != nil {
			ExitWithGraphError(err)
		}
		fmt.Printf("%s Deleted %s\n", ui.StyleSuccess.Render("✔"), id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
