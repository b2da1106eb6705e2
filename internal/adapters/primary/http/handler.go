package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/akulikov/reviewdeck/internal/core/app"
)

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	silent := r.URL.Query().Get("silent") == "1"

	result, err := s.app.Refresh(r.Context(), silent)
	if err != nil {
		log.Printf("Refresh failed: %v", err)
		http.Error(w, "Refresh failed", http.StatusBadGateway)

		return
	}

	writeJSON(w, map[string]any{
		"stale":         result.Stale,
		"pullRequests":  len(result.PullRequests),
		"notifications": len(result.Notifications),
	})
}

func (s *Server) handlePulls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	spec := filterSpecFromQuery(r)
	prs := app.Filter(s.app.Snapshot(), spec)
	prs = app.SortBy(prs, spec, s.locale)

	writeJSON(w, map[string]any{
		"lastRefreshed": s.app.LastRefreshed(),
		"pullRequests":  prs,
	})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	spec := filterSpecFromQuery(r)
	prs := app.Filter(s.app.Snapshot(), spec)
	prs = app.SortBy(prs, spec, s.locale)

	writeJSON(w, app.GroupByProject(prs, s.locale))
}

func (s *Server) handleConflicts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	conflicted := app.Conflicted(s.app.Snapshot())

	writeJSON(w, map[string]any{
		"pullRequests":       conflicted,
		"totalConflictFiles": app.TotalConflictFiles(conflicted),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	writeJSON(w, app.ComputeStats(s.app.Snapshot(), time.Now()))
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	writeJSON(w, map[string]any{
		"unread":        s.app.UnreadNotifications(),
		"notifications": s.app.Notifications(),
	})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)

		return
	}

	if err := s.app.MarkNotificationRead(r.Context(), payload.ID); err != nil {
		http.Error(w, "Notification not found", http.StatusNotFound)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	if err := s.app.MarkAllNotificationsRead(r.Context()); err != nil {
		log.Printf("Failed to persist notifications: %v", err)
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]string{"theme": s.app.Theme(r.Context())})
	case http.MethodPut:
		var payload struct {
			Theme string `json:"theme"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)

			return
		}
		if err := s.app.SetTheme(r.Context(), payload.Theme); err != nil {
			http.Error(w, "Failed to store theme", http.StatusInternalServerError)

			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func filterSpecFromQuery(r *http.Request) app.FilterSpec {
	q := r.URL.Query()

	return app.DefaultFilter().Merge(app.FilterSpec{
		SearchText:    q.Get("search"),
		Status:        q.Get("status"),
		Project:       q.Get("project"),
		HasConflicts:  q.Get("conflicts"),
		SortBy:        q.Get("sort"),
		SortDirection: q.Get("direction"),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
