package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/hrd-survey/internal/store"
)

// Config holds the review server settings.
type Config struct {
	Host      string
	Port      int
	OutputDir string // directory holding *_검토리포트.json files
}

// DefaultConfig returns the development defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:      "0.0.0.0",
		Port:      8080,
		OutputDir: "output",
	}
}

// Server exposes mapping review reports over HTTP so the training team
// can check low-similarity matches without opening the spreadsheets.
type Server struct {
	config     *Config
	store      *store.Store // nil when no database is configured
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a review server. st may be nil; the run-history
// endpoints then report the store as unavailable.
func NewServer(config *Config, st *store.Store) *Server {
	s := &Server{config: config, store: st}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/reports", s.handleListReports).Methods("GET")
	api.HandleFunc("/reports/{name}", s.handleGetReport).Methods("GET")
	api.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	api.HandleFunc("/runs/{id:[0-9]+}", s.handleGetRun).Methods("GET")

	s.router.Use(requestLogging)
}

// requestLogging logs each request with its duration.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("Review server listening on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	<-stop
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			fmt.Printf("Store close error: %v\n", err)
		}
	}

	fmt.Println("Server stopped")
	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
