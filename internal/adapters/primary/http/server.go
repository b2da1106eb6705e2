package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/akulikov/reviewdeck/internal/core/app"
	"golang.org/x/text/language"
)

const (
	readTimeout = 10 * time.Second
	// Refresh cycles fan out across the whole organization; writes get
	// a correspondingly generous deadline.
	writeTimeout = 120 * time.Second
	idleTimeout  = 120 * time.Second
)

// Server exposes the dashboard state as a JSON API.
type Server struct {
	server *http.Server
	app    *app.App
	locale language.Tag
}

// NewServer creates a new HTTP server.
func NewServer(addr string, appInstance *app.App, locale string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		app:    appInstance,
		locale: language.Make(locale),
	}

	mux.HandleFunc("/api/refresh", s.handleRefresh)
	mux.HandleFunc("/api/pulls", s.handlePulls)
	mux.HandleFunc("/api/groups", s.handleGroups)
	mux.HandleFunc("/api/conflicts", s.handleConflicts)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/notifications", s.handleNotifications)
	mux.HandleFunc("/api/notifications/read", s.handleMarkRead)
	mux.HandleFunc("/api/notifications/read-all", s.handleMarkAllRead)
	mux.HandleFunc("/api/theme", s.handleTheme)

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server on %s", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
