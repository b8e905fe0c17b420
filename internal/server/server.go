// Package server exposes the graph service over a small JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/josephgoksu/TaskGraph/internal/task"
)

// Server wraps the graph service behind net/http.
type Server struct {
	svc    *task.Service
	store  task.GraphStore
	port   int
	server *http.Server
}

// New builds a server around an already-initialized service and store.
// The store handle is kept so shutdown can close it.
func New(svc *task.Service, store task.GraphStore, port int) *Server {
	s := &Server{svc: svc, store: store, port: port}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("PATCH /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("POST /api/tasks/{id}/dependencies", s.handleAddDependency)
	mux.HandleFunc("DELETE /api/tasks/{id}/dependencies/{prereqID}", s.handleRemoveDependency)
	mux.HandleFunc("GET /api/tasks/{id}/readiness", s.handleReadiness)
	mux.HandleFunc("POST /api/graph/check", s.handleCheckCycle)
	mux.HandleFunc("GET /api/graph", s.handleGraph)
	mux.HandleFunc("OPTIONS /api/", s.handleCORS)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsMiddleware(mux),
	}
	return s
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start runs the listener on its own goroutine, reporting a failed listen
// through errChan.
func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() { _ = s.store.Close() }()

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleCORS(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
