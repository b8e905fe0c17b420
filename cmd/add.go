package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/TaskGraph/internal/ui"
)

var addDescription string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"a", "new"},
	Short:   "Add a new task",
	Long:    `Add a new task with the given title. New tasks start as pending with no dependencies.`,
	Example: `  taskgraph add "Ship release notes"
  taskgraph add "Deploy backend" -d "Roll out v2 to staging first"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = store.Close() }()

		t, err := svc.CreateTask(args[0], addDescription)
		if err != nil {
			HandleFatalError("Error: Could not create the task.", err)
		}

		fmt.Printf("%s %s (ID: %s)\n", ui.StyleSuccess.Render("✔ Created"), t.Title, t.ID)
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "optional task description")
	rootCmd.AddCommand(addCmd)
}
