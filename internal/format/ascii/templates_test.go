package ascii

import (
	"strings"
	"testing"
	"time"

	"github.com/akulikov/reviewdeck/internal/core/app"
	"github.com/akulikov/reviewdeck/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePR() *domain.PullRequest {
	return &domain.PullRequest{
		ID:           7,
		Title:        "Add retry logic",
		Status:       domain.StatusActive,
		Author:       domain.Identity{DisplayName: "Alice"},
		CreatedAt:    time.Now().Add(-2 * time.Hour),
		SourceBranch: "feature/retry",
		TargetBranch: "main",
		Project:      domain.ProjectInfo{ID: "p1", Name: "Platform"},
		Repository:   domain.RepositoryInfo{ID: "r1", Name: "api"},
		Reviewers: []domain.Reviewer{
			{Identity: domain.Identity{ID: "u1", DisplayName: "Bob"}, Vote: domain.VoteApproved},
		},
	}
}

func TestFormatList(t *testing.T) {
	pr := samplePR()
	pr.MergeConflicts = []domain.MergeConflict{{ID: 1, Path: "main.go"}}

	out, err := FormatList([]*domain.PullRequest{pr}, time.Now().Add(-time.Minute))

	require.NoError(t, err)
	assert.Contains(t, out, "PULL REQUESTS (1)")
	assert.Contains(t, out, "#7 Add retry logic")
	assert.Contains(t, out, "Platform/api")
	assert.Contains(t, out, "feature/retry -> main")
	assert.Contains(t, out, "CONFLICTS: 1 file(s)")
	assert.Contains(t, out, "Bob (approved)")
	assert.Contains(t, out, "[!]")
}

func TestFormatList_Empty(t *testing.T) {
	out, err := FormatList(nil, time.Time{})

	require.NoError(t, err)
	assert.Contains(t, out, "PULL REQUESTS (0)")
	assert.Contains(t, out, "(none)")
	assert.NotContains(t, out, "updated")
}

func TestFormatGroups(t *testing.T) {
	pr := samplePR()
	groups := []*domain.ProjectGroup{
		{
			Project:       pr.Project,
			PullRequests:  []*domain.PullRequest{pr},
			TotalApproved: 1,
		},
	}

	out, err := FormatGroups(groups)

	require.NoError(t, err)
	assert.Contains(t, out, "PROJECTS (1)")
	assert.Contains(t, out, "Platform  (1 PRs, 0 conflicted, 1 approved, 0 waiting, 0 rejected)")
	assert.Contains(t, out, "#7 Add retry logic (api)")
}

func TestFormatConflicts(t *testing.T) {
	pr := samplePR()
	pr.MergeConflicts = []domain.MergeConflict{
		{ID: 1, Path: "main.go", ResolutionStatus: "unresolved"},
		{ID: 2, Path: "go.mod", ResolutionStatus: "unresolved"},
	}

	out, err := FormatConflicts([]*domain.PullRequest{pr})

	require.NoError(t, err)
	assert.Contains(t, out, "MERGE CONFLICTS: 1 PR(s), 2 conflicting file(s)")
	assert.Contains(t, out, "main.go (unresolved)")
	assert.Contains(t, out, "go.mod (unresolved)")
}

func TestFormatNotifications(t *testing.T) {
	notifications := []*domain.Notification{
		{
			ID:        "conflict-p1-7-1",
			Type:      domain.NotifyMergeConflict,
			Message:   `Merge conflicts detected in "Add retry logic"`,
			CreatedAt: time.Now(),
		},
		{
			ID:        "approved-p1-7-u1-2",
			Type:      domain.NotifyApproved,
			Message:   `Bob approved "Add retry logic" in Platform`,
			CreatedAt: time.Now(),
			IsRead:    true,
		},
	}

	out, err := FormatNotifications(notifications, 1)

	require.NoError(t, err)
	assert.Contains(t, out, "NOTIFICATIONS (1 unread)")
	assert.Contains(t, out, "* [mergeConflict]")
	assert.Contains(t, out, "  [approved]")
	assert.Contains(t, out, "id: conflict-p1-7-1")
}

func TestFormatStats(t *testing.T) {
	out, err := FormatStats(app.Stats{Total: 5, Approved: 2, Conflicts: 1})

	require.NoError(t, err)
	assert.Contains(t, out, "Total: 5")
	assert.Contains(t, out, "Approved: 2")
	assert.Contains(t, out, "Conflicts: 1")
}

func TestTruncTitle(t *testing.T) {
	short := "short title"
	long := strings.Repeat("x", 100)

	assert.Equal(t, short, truncTitle(short))
	truncated := truncTitle(long)
	assert.Len(t, truncated, titleMaxLen)
	assert.True(t, strings.HasSuffix(truncated, "..."))
}

func TestStatusIcon(t *testing.T) {
	conflicted := samplePR()
	conflicted.MergeConflicts = []domain.MergeConflict{{ID: 1}}
	assert.Equal(t, "[!]", statusIcon(conflicted))

	approved := samplePR()
	assert.Equal(t, "[+]", statusIcon(approved))

	rejected := samplePR()
	rejected.Reviewers = []domain.Reviewer{{Vote: domain.VoteRejected}}
	assert.Equal(t, "[-]", statusIcon(rejected))

	neutral := samplePR()
	neutral.Reviewers = nil
	assert.Equal(t, "[ ]", statusIcon(neutral))
}

func TestTimeAgo(t *testing.T) {
	assert.Equal(t, "just now", timeAgo(time.Now()))
	assert.Equal(t, "5m ago", timeAgo(time.Now().Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", timeAgo(time.Now().Add(-3*time.Hour)))
	assert.Equal(t, "2d ago", timeAgo(time.Now().Add(-49*time.Hour)))
}
