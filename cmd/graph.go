package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"
)

var (
	graphFormat string
	graphOut    string
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the full task graph",
	Long:  `Export every task (id, title, status) and every dependency edge, for visualization or inspection.`,
	Example: `  taskgraph graph
  taskgraph graph --format yaml
  taskgraph graph -o graph.json`,
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = store.Close() }()

		snap, err := svc.Snapshot()
		if err != nil {
			HandleFatalError("Error: Could not read the graph.", err)
		}

		var data []byte
		switch graphFormat {
		case "json":
			data, err = json.MarshalIndent(snap, "", "  ")
		case "yaml":
			data, err = yaml.Marshal(snap)
		default:
			HandleFatalError(fmt.Sprintf("Unsupported format %q (json, yaml)", graphFormat), nil)
		}
		if err != nil {
			HandleFatalError("Error: Could not encode the graph.", err)
		}

		if graphOut == "" {
			fmt.Println(string(data))
			return
		}
		if err := os.WriteFile(graphOut, data, 0644); err != nil {
			HandleFatalError("Error: Could not write the output file.", err)
		}
		fmt.Printf("Wrote %s (%d tasks, %d edges)\n", graphOut, len(snap.Tasks), len(snap.Edges))
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "json", "output format: json or yaml")
	graphCmd.Flags().StringVarP(&graphOut, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(graphCmd)
}
