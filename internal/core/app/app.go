package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/akulikov/reviewdeck/internal/config"
	"github.com/akulikov/reviewdeck/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// Source is the port to the remote code-review platform. List failures
// are returned as errors and downgraded per scope by the aggregator;
// GetConflicts and GetThreads degrade to empty results inside the
// adapter and never fail a caller.
type Source interface {
	ListProjects(ctx context.Context) ([]domain.ProjectInfo, error)
	ListRepositories(ctx context.Context, projectID string) ([]domain.RepositoryInfo, error)
	ListPullRequests(ctx context.Context, projectID, repoID string, status domain.PullRequestStatus) ([]*domain.PullRequest, error)
	GetConflicts(ctx context.Context, projectID, repoID string, prID int) ([]domain.MergeConflict, error)
	GetThreads(ctx context.Context, projectID, repoID string, prID int) ([]domain.CommentThread, error)
}

// Store persists the notification log and the theme preference. The app
// tolerates a store that is empty, corrupted or unavailable.
type Store interface {
	LoadNotifications(ctx context.Context) ([]*domain.Notification, error)
	SaveNotifications(ctx context.Context, notifications []*domain.Notification) error
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}

// Labels renders localized user-facing text from a message key and
// named parameters.
type Labels interface {
	Format(key string, params map[string]string) string
}

// App owns the authoritative pull-request snapshot and the notification
// log, and orchestrates refresh cycles against the Source.
type App struct {
	source Source
	store  Store
	labels Labels

	batchSize   int
	fanOutLimit int
	callTimeout time.Duration
	status      domain.PullRequestStatus

	mu            sync.Mutex
	snapshot      []*domain.PullRequest
	projects      []domain.ProjectInfo
	lastRefreshed time.Time
	initiated     uint64
	log           *NotificationLog
	ids           *idGenerator
}

// RefreshResult is what one completed refresh cycle produced.
type RefreshResult struct {
	PullRequests  []*domain.PullRequest
	Projects      []domain.ProjectInfo
	Notifications []*domain.Notification
	// Stale marks a cycle that resolved after a newer one had already
	// committed; its data was discarded.
	Stale bool
}

// NewApp creates the application core. A previously persisted
// notification log is loaded best-effort; a broken store means an empty
// log, never a startup failure.
func NewApp(cfg *config.Config, source Source, store Store, labels Labels) (*App, error) {
	a := &App{
		source:      source,
		store:       store,
		labels:      labels,
		batchSize:   cfg.BatchSize,
		fanOutLimit: cfg.FanOutLimit,
		callTimeout: cfg.RequestTimeout,
		status:      domain.StatusActive,
		log:         NewNotificationLog(),
		ids:         newIDGenerator(),
	}

	if persisted, err := store.LoadNotifications(context.Background()); err == nil {
		a.log.Restore(persisted)
	} else {
		fmt.Printf("Warning: failed to load notification history: %v\n", err)
	}

	return a, nil
}

// Refresh runs one full aggregation cycle: projects, repositories and
// summary pull requests are fanned out and joined best-effort, the
// combined list is enriched in batches, diffed against the previous
// snapshot and committed atomically. A cycle superseded by a newer one
// while in flight discards its data and reports Stale.
//
// Silent mode changes nothing here; it only tells the caller not to
// reset visible state while the cycle runs and to keep the old data
// on failure.
func (a *App) Refresh(ctx context.Context, silent bool) (*RefreshResult, error) {
	_ = silent

	a.mu.Lock()
	a.initiated++
	seq := a.initiated
	a.mu.Unlock()

	projects, err := a.listProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	prs := a.collectPullRequests(ctx, projects)

	sortByRecency(prs)

	enriched := a.EnrichAll(ctx, prs)

	return a.commit(ctx, seq, projects, enriched), nil
}

func (a *App) listProjects(ctx context.Context) ([]domain.ProjectInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	return a.source.ListProjects(ctx)
}

// collectPullRequests fans out across projects with a bounded number of
// in-flight fetches. A failed project or repository contributes nothing
// to the combined result.
func (a *App) collectPullRequests(ctx context.Context, projects []domain.ProjectInfo) []*domain.PullRequest {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.fanOutLimit)

	var mu sync.Mutex
	combined := make([]*domain.PullRequest, 0)

	for _, project := range projects {
		g.Go(func() error {
			prs, err := a.collectProject(gctx, project)
			if err != nil {
				// One broken project must not abort the refresh.
				return nil
			}
			mu.Lock()
			combined = append(combined, prs...)
			mu.Unlock()

			return nil
		})
	}

	// Individual errors are swallowed above, Wait only propagates
	// context cancellation.
	_ = g.Wait()

	return combined
}

func (a *App) collectProject(ctx context.Context, project domain.ProjectInfo) ([]*domain.PullRequest, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	repos, err := a.source.ListRepositories(callCtx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s: %w", project.Name, err)
	}

	prs := make([]*domain.PullRequest, 0)
	for _, repo := range repos {
		repoCtx, cancelRepo := context.WithTimeout(ctx, a.callTimeout)
		repoPRs, err := a.source.ListPullRequests(repoCtx, project.ID, repo.ID, a.status)
		cancelRepo()
		if err != nil {
			// Skip repositories we cannot read.
			continue
		}
		prs = append(prs, repoPRs...)
	}

	return prs, nil
}

// commit installs the new snapshot and generated notifications under the
// refresh-sequence guard: only the most recently initiated cycle may
// commit, everything older is discarded as stale.
func (a *App) commit(ctx context.Context, seq uint64, projects []domain.ProjectInfo, prs []*domain.PullRequest) *RefreshResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if seq != a.initiated {
		return &RefreshResult{Stale: true}
	}

	var notifications []*domain.Notification
	if a.snapshot == nil {
		notifications = a.initialNotifications(prs)
	} else {
		notifications = a.diffNotifications(prs, a.snapshot)
	}

	a.snapshot = prs
	a.projects = projects
	a.lastRefreshed = time.Now()
	a.log.Prepend(notifications)

	if err := a.store.SaveNotifications(ctx, a.log.All()); err != nil {
		fmt.Printf("Warning: failed to persist notifications: %v\n", err)
	}

	return &RefreshResult{
		PullRequests:  prs,
		Projects:      projects,
		Notifications: notifications,
	}
}

// LoadDetails enriches a single pull request on demand and replaces the
// matching snapshot entry. A failure stays local to this item.
func (a *App) LoadDetails(ctx context.Context, pr *domain.PullRequest) (*domain.PullRequest, error) {
	enriched, err := a.enrichOne(ctx, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to load details for #%d: %w", pr.ID, err)
	}

	a.mu.Lock()
	for i, existing := range a.snapshot {
		if existing.Key() == enriched.Key() {
			a.snapshot[i] = enriched

			break
		}
	}
	a.mu.Unlock()

	return enriched, nil
}

// Snapshot returns the currently committed pull-request collection.
func (a *App) Snapshot() []*domain.PullRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]*domain.PullRequest, len(a.snapshot))
	copy(out, a.snapshot)

	return out
}

// Projects returns the project list from the last committed refresh.
func (a *App) Projects() []domain.ProjectInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]domain.ProjectInfo, len(a.projects))
	copy(out, a.projects)

	return out
}

// LastRefreshed returns the commit time of the current snapshot, zero
// before the first successful refresh.
func (a *App) LastRefreshed() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.lastRefreshed
}

// Notifications returns the log, newest first.
func (a *App) Notifications() []*domain.Notification {
	return a.log.All()
}

// UnreadNotifications returns the number of unread log entries.
func (a *App) UnreadNotifications() int {
	return a.log.Unread()
}

// MarkNotificationRead flips one entry to read and persists the log.
func (a *App) MarkNotificationRead(ctx context.Context, id string) error {
	if !a.log.MarkRead(id) {
		return fmt.Errorf("notification not found: %s", id)
	}

	return a.persistLog(ctx)
}

// MarkAllNotificationsRead flips every entry to read and persists the log.
func (a *App) MarkAllNotificationsRead(ctx context.Context) error {
	a.log.MarkAllRead()

	return a.persistLog(ctx)
}

func (a *App) persistLog(ctx context.Context) error {
	if err := a.store.SaveNotifications(ctx, a.log.All()); err != nil {
		return fmt.Errorf("failed to persist notifications: %w", err)
	}

	return nil
}

// Theme returns the persisted UI theme, empty when none was stored.
func (a *App) Theme(ctx context.Context) string {
	theme, err := a.store.Theme(ctx)
	if err != nil {
		return ""
	}

	return theme
}

// SetTheme persists the UI theme preference.
func (a *App) SetTheme(ctx context.Context, theme string) error {
	if err := a.store.SetTheme(ctx, theme); err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}

	return nil
}

// sortByRecency orders newest first with a deterministic tie-break on
// the composite identity.
func sortByRecency(prs []*domain.PullRequest) {
	sort.SliceStable(prs, func(i, j int) bool {
		if !prs[i].CreatedAt.Equal(prs[j].CreatedAt) {
			return prs[i].CreatedAt.After(prs[j].CreatedAt)
		}
		if prs[i].Project.ID != prs[j].Project.ID {
			return prs[i].Project.ID < prs[j].Project.ID
		}

		return prs[i].ID < prs[j].ID
	})
}
