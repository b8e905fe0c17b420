package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/TaskGraph/internal/ui"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:     "show [task_id]",
	Aliases: []string{"get", "info"},
	Short:   "Show a task's details and its graph neighborhood",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = store.Close() }()

		id, err := resolveTaskArg(svc, args, nil, "Select a task to show")
		if err != nil {
			HandleFatalError("Error: Could not select a task.", err)
		}

		t, err := svc.GetTask(id)
		if err != nil {
			ExitWithGraphError(err)
		}

		fmt.Printf("%s  %s\n", ui.StyleTitle.Render(t.Title), ui.StatusBadge(t.Status))
		fmt.Printf("%s %s\n", ui.StyleSubtle.Render("ID:"), t.ID)
		if t.Description != "" {
			fmt.Printf("%s %s\n", ui.StyleSubtle.Render("Description:"), t.Description)
		}
		fmt.Printf("%s %s\n", ui.StyleSubtle.Render("Created:"), t.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("%s %s\n", ui.StyleSubtle.Render("Updated:"), t.UpdatedAt.Format("2006-01-02 15:04"))

		if len(t.Prerequisites) > 0 {
			fmt.Println(ui.StyleSubtle.Render("Depends on:"))
			for _, pid := range t.Prerequisites {
				fmt.Printf("  %s\n", pid)
			}
		}
		if len(t.Dependents) > 0 {
			fmt.Println(ui.StyleSubtle.Render("Required by:"))
			for _, did := range t.Dependents {
				fmt.Printf("  %s\n", did)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
