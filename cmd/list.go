package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/TaskGraph/internal/task"
	"github.com/josephgoksu/TaskGraph/internal/ui"
)

var listStatus string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List tasks",
	Long:    `List all tasks, newest first, with their status and prerequisite count.`,
	Example: `  taskgraph list
  taskgraph list --status blocked`,
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = store.Close() }()

		tasks, err := svc.ListTasks()
		if err != nil {
			HandleFatalError("Error: Could not list tasks.", err)
		}

		if listStatus != "" {
			want, perr := task.ParseStatus(listStatus)
			if perr != nil {
				HandleFatalError(perr.Error(), perr)
			}
			filtered := tasks[:0]
			for _, t := range tasks {
				if t.Status == want {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}

		fmt.Println(ui.RenderTaskTable(tasks))
	},
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (pending, in_progress, completed, blocked)")
	rootCmd.AddCommand(listCmd)
}
