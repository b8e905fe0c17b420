package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/TaskGraph/internal/config"
	"github.com/josephgoksu/TaskGraph/internal/server"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  `Serve the task graph over a JSON HTTP API: task CRUD, dependency management, cycle checks, readiness, and the full graph snapshot.`,
	Run: func(cmd *cobra.Command, args []string) {
		svc, store, err := GetService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}

		port := servePort
		if port == 0 {
			port = viper.GetInt(config.KeyServerPort)
		}

		srv := server.New(svc, store, port)

		var wg sync.WaitGroup
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)

		fmt.Printf("TaskGraph API listening on http://localhost:%d\n", port)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errChan:
			HandleFatalError("Error: API server failed.", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				HandleFatalError("Error: Shutdown failed.", err)
			}
		}
		wg.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
