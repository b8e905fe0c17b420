package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/TaskGraph/internal/ui"
)

// readyCmd represents the ready command
var readyCmd = &cobra.Command{
	Use:     "ready [task_id]",
	Aliases: []string{"readiness"},
	Short:   "Check whether a task is ready to be worked on",
	Long:    `A task is ready when it has no prerequisites, or all of them are completed. If it is not ready, the blocking prerequisites are listed.`,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = store.Close() }()

		id, err := resolveTaskArg(svc, args, nil, "Select a task to check")
		if err != nil {
			HandleFatalError("Error: Could not select a task.", err)
		}

		r, err := svc.Readiness(id)
		if err != nil {
			ExitWithGraphError(err)
		}
		fmt.Println(ui.RenderReadiness(r))
	},
}

func init() {
	rootCmd.AddCommand(readyCmd)
}
