package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akulikov/reviewdeck/internal/adapters/secondary/source/mocks"
	"github.com/akulikov/reviewdeck/internal/config"
	"github.com/akulikov/reviewdeck/internal/core/app"
	"github.com/akulikov/reviewdeck/internal/core/domain"
	"github.com/akulikov/reviewdeck/internal/labels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, source *mocks.MockSource, store *mocks.MockStore) *Server {
	t.Helper()

	if source == nil {
		source = &mocks.MockSource{}
	}
	if store == nil {
		store = &mocks.MockStore{}
		store.On("LoadNotifications", mock.Anything).Return([]*domain.Notification{}, nil)
		store.On("SaveNotifications", mock.Anything, mock.Anything).Return(nil).Maybe()
	}

	cfg := &config.Config{
		BatchSize:      5,
		FanOutLimit:    4,
		RequestTimeout: time.Second,
	}
	appInstance, err := app.NewApp(cfg, source, store, labels.NewFormatter("en"))
	require.NoError(t, err)

	return NewServer(":0", appInstance, "en")
}

func TestServer_handleRefresh(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		setupMock      func(*mocks.MockSource)
		expectedStatus int
	}{
		{
			name:   "successful refresh",
			method: http.MethodPost,
			setupMock: func(m *mocks.MockSource) {
				m.On("ListProjects", mock.Anything).Return([]domain.ProjectInfo{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong method",
			method:         http.MethodGet,
			setupMock:      func(m *mocks.MockSource) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "upstream failure",
			method: http.MethodPost,
			setupMock: func(m *mocks.MockSource) {
				m.On("ListProjects", mock.Anything).Return(nil, errors.New("unauthorized"))
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mocks.MockSource{}
			tt.setupMock(source)
			server := newTestServer(t, source, nil)

			req := httptest.NewRequest(tt.method, "/api/refresh", nil)
			rec := httptest.NewRecorder()

			server.handleRefresh(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestServer_handlePulls(t *testing.T) {
	server := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/pulls?search=cache&sort=title&direction=asc", nil)
	rec := httptest.NewRecorder()

	server.handlePulls(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		PullRequests []*domain.PullRequest `json:"pullRequests"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.Empty(t, payload.PullRequests)
}

func TestServer_handlePulls_WrongMethod(t *testing.T) {
	server := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/pulls", nil)
	rec := httptest.NewRecorder()

	server.handlePulls(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_handleGroups(t *testing.T) {
	server := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	rec := httptest.NewRecorder()

	server.handleGroups(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var groups []*domain.ProjectGroup
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&groups))
	assert.Empty(t, groups)
}

func TestServer_handleConflicts(t *testing.T) {
	server := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/conflicts", nil)
	rec := httptest.NewRecorder()

	server.handleConflicts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		TotalConflictFiles int `json:"totalConflictFiles"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.Equal(t, 0, payload.TotalConflictFiles)
}

func TestServer_handleStats(t *testing.T) {
	server := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()

	server.handleStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats app.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 0, stats.Total)
}

func TestServer_handleNotifications(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("LoadNotifications", mock.Anything).Return([]*domain.Notification{
		{ID: "a", Message: "conflict"},
		{ID: "b", Message: "approved", IsRead: true},
	}, nil)
	store.On("SaveNotifications", mock.Anything, mock.Anything).Return(nil).Maybe()
	server := newTestServer(t, nil, store)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	rec := httptest.NewRecorder()

	server.handleNotifications(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Unread        int                    `json:"unread"`
		Notifications []*domain.Notification `json:"notifications"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.Equal(t, 1, payload.Unread)
	require.Len(t, payload.Notifications, 2)
	assert.Equal(t, "a", payload.Notifications[0].ID)
}

func TestServer_handleMarkRead(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "existing notification",
			body:           `{"id":"a"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown notification",
			body:           `{"id":"missing"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid body",
			body:           "not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty id",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mocks.MockStore{}
			store.On("LoadNotifications", mock.Anything).Return([]*domain.Notification{
				{ID: "a"},
			}, nil)
			store.On("SaveNotifications", mock.Anything, mock.Anything).Return(nil).Maybe()
			server := newTestServer(t, nil, store)

			req := httptest.NewRequest(http.MethodPost, "/api/notifications/read", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			server.handleMarkRead(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestServer_handleMarkAllRead(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("LoadNotifications", mock.Anything).Return([]*domain.Notification{
		{ID: "a"}, {ID: "b"},
	}, nil)
	store.On("SaveNotifications", mock.Anything, mock.Anything).Return(nil)
	server := newTestServer(t, nil, store)

	req := httptest.NewRequest(http.MethodPost, "/api/notifications/read-all", nil)
	rec := httptest.NewRecorder()

	server.handleMarkAllRead(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	store.AssertExpectations(t)
}

func TestServer_handleTheme(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("LoadNotifications", mock.Anything).Return([]*domain.Notification{}, nil)
	store.On("Theme", mock.Anything).Return("dark", nil)
	store.On("SetTheme", mock.Anything, "light").Return(nil)
	server := newTestServer(t, nil, store)

	req := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
	rec := httptest.NewRecorder()
	server.handleTheme(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.Equal(t, "dark", payload["theme"])

	req = httptest.NewRequest(http.MethodPut, "/api/theme", bytes.NewBufferString(`{"theme":"light"}`))
	rec = httptest.NewRecorder()
	server.handleTheme(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/theme", nil)
	rec = httptest.NewRecorder()
	server.handleTheme(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	store.AssertExpectations(t)
}

func TestFilterSpecFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/pulls?search=cache&status=active&project=Platform&conflicts=clean&sort=title&direction=asc", nil)

	spec := filterSpecFromQuery(req)

	assert.Equal(t, "cache", spec.SearchText)
	assert.Equal(t, "active", spec.Status)
	assert.Equal(t, "Platform", spec.Project)
	assert.Equal(t, app.ConflictsNone, spec.HasConflicts)
	assert.Equal(t, app.SortByTitle, spec.SortBy)
	assert.Equal(t, "asc", spec.SortDirection)
}

func TestFilterSpecFromQuery_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/pulls", nil)

	spec := filterSpecFromQuery(req)

	assert.Equal(t, app.DefaultFilter(), spec)
}
