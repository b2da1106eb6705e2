package mocks

import (
	"context"

	"github.com/akulikov/reviewdeck/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockSource is a mock implementation of app.Source.
type MockSource struct {
	mock.Mock
}

// ListProjects mocks the ListProjects method.
func (m *MockSource) ListProjects(ctx context.Context) ([]domain.ProjectInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ProjectInfo), args.Error(1)
}

// ListRepositories mocks the ListRepositories method.
func (m *MockSource) ListRepositories(ctx context.Context, projectID string) ([]domain.RepositoryInfo, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.RepositoryInfo), args.Error(1)
}

// ListPullRequests mocks the ListPullRequests method.
func (m *MockSource) ListPullRequests(
	ctx context.Context,
	projectID, repoID string,
	status domain.PullRequestStatus,
) ([]*domain.PullRequest, error) {
	args := m.Called(ctx, projectID, repoID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.PullRequest), args.Error(1)
}

// GetConflicts mocks the GetConflicts method.
func (m *MockSource) GetConflicts(
	ctx context.Context,
	projectID, repoID string,
	prID int,
) ([]domain.MergeConflict, error) {
	args := m.Called(ctx, projectID, repoID, prID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.MergeConflict), args.Error(1)
}

// GetThreads mocks the GetThreads method.
func (m *MockSource) GetThreads(
	ctx context.Context,
	projectID, repoID string,
	prID int,
) ([]domain.CommentThread, error) {
	args := m.Called(ctx, projectID, repoID, prID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.CommentThread), args.Error(1)
}

// MockStore is a mock implementation of app.Store.
type MockStore struct {
	mock.Mock
}

// LoadNotifications mocks the LoadNotifications method.
func (m *MockStore) LoadNotifications(ctx context.Context) ([]*domain.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Notification), args.Error(1)
}

// SaveNotifications mocks the SaveNotifications method.
func (m *MockStore) SaveNotifications(ctx context.Context, notifications []*domain.Notification) error {
	args := m.Called(ctx, notifications)

	return args.Error(0)
}

// Theme mocks the Theme method.
func (m *MockStore) Theme(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

// SetTheme mocks the SetTheme method.
func (m *MockStore) SetTheme(ctx context.Context, theme string) error {
	args := m.Called(ctx, theme)

	return args.Error(0)
}
