// Package gitlab implements the app.Source port on top of the GitLab
// REST API. The dashboard's "project" maps to a top-level group and its
// "repository" to a GitLab project inside that group; merge requests
// play the role of pull requests.
package gitlab

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/akulikov/reviewdeck/internal/core/domain"
	gitlab "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/sync/errgroup"
)

const perPageLimit = 100

// Award emoji carrying review votes by team convention.
const (
	emojiApprove = "thumbsup"
	emojiReject  = "thumbsdown"
)

// Source implements the app.Source interface for GitLab.
type Source struct {
	client *gitlab.Client
	groups map[string]struct{}

	// id -> display name, filled by the list calls so that merge
	// requests can carry project/repository names without extra
	// lookups.
	groupNames sync.Map
	repoNames  sync.Map
}

// NewSource creates a new GitLab source. A non-empty allowlist of group
// paths restricts which top-level groups are scanned.
func NewSource(client *gitlab.Client, groupAllowlist []string) *Source {
	groups := make(map[string]struct{}, len(groupAllowlist))
	for _, g := range groupAllowlist {
		groups[g] = struct{}{}
	}

	return &Source{
		client: client,
		groups: groups,
	}
}

// ListProjects returns the top-level groups visible to the token,
// filtered by the configured allowlist.
func (s *Source) ListProjects(ctx context.Context) ([]domain.ProjectInfo, error) {
	groups, _, err := s.client.Groups.ListGroups(&gitlab.ListGroupsOptions{
		ListOptions:  gitlab.ListOptions{PerPage: perPageLimit},
		TopLevelOnly: gitlab.Ptr(true),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	projects := make([]domain.ProjectInfo, 0, len(groups))
	for _, g := range groups {
		if len(s.groups) > 0 {
			if _, ok := s.groups[g.FullPath]; !ok {
				continue
			}
		}
		id := strconv.Itoa(g.ID)
		s.groupNames.Store(id, g.Name)
		projects = append(projects, domain.ProjectInfo{
			ID:   id,
			Name: g.Name,
		})
	}

	return projects, nil
}

// ListRepositories returns the projects of one group, including
// subgroup projects.
func (s *Source) ListRepositories(ctx context.Context, projectID string) ([]domain.RepositoryInfo, error) {
	gid, err := strconv.Atoi(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid group id %q: %w", projectID, err)
	}

	repos, _, err := s.client.Groups.ListGroupProjects(gid, &gitlab.ListGroupProjectsOptions{
		ListOptions:      gitlab.ListOptions{PerPage: perPageLimit},
		IncludeSubGroups: gitlab.Ptr(true),
		Archived:         gitlab.Ptr(false),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list group projects: %w", err)
	}

	out := make([]domain.RepositoryInfo, 0, len(repos))
	for _, r := range repos {
		id := strconv.Itoa(r.ID)
		s.repoNames.Store(id, r.Path)
		out = append(out, domain.RepositoryInfo{
			ID:   id,
			Name: r.Path,
			URL:  r.WebURL,
		})
	}

	return out, nil
}

// ListPullRequests returns summary-level merge requests for one
// repository; conflicts and threads stay empty until enrichment.
func (s *Source) ListPullRequests(
	ctx context.Context,
	projectID, repoID string,
	status domain.PullRequestStatus,
) ([]*domain.PullRequest, error) {
	rid, err := strconv.Atoi(repoID)
	if err != nil {
		return nil, fmt.Errorf("invalid repository id %q: %w", repoID, err)
	}

	opts := &gitlab.ListProjectMergeRequestsOptions{
		ListOptions: gitlab.ListOptions{PerPage: perPageLimit},
	}
	if state := mapStatusToState(status); state != "" {
		opts.State = gitlab.Ptr(state)
	}

	mrs, _, err := s.client.MergeRequests.ListProjectMergeRequests(rid, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list merge requests: %w", err)
	}

	prs := make([]*domain.PullRequest, 0, len(mrs))
	for _, mr := range mrs {
		pr := s.convertMergeRequest(mr, projectID, repoID)
		pr.Reviewers = s.fetchReviewers(ctx, rid, mr)
		prs = append(prs, pr)
	}

	return prs, nil
}

// GetConflicts reports the conflicting files of a merge request. GitLab
// has no conflict-listing endpoint, so a conflicted MR's changed files
// stand in as the conflict paths. Any failure degrades to an empty
// list, never an error.
func (s *Source) GetConflicts(ctx context.Context, _, repoID string, prID int) ([]domain.MergeConflict, error) {
	rid, err := strconv.Atoi(repoID)
	if err != nil {
		return []domain.MergeConflict{}, nil
	}

	mr, _, err := s.client.MergeRequests.GetMergeRequest(rid, prID, nil, gitlab.WithContext(ctx))
	if err != nil || !mr.HasConflicts {
		return []domain.MergeConflict{}, nil
	}

	diffs, _, err := s.client.MergeRequests.ListMergeRequestDiffs(rid, prID, &gitlab.ListMergeRequestDiffsOptions{
		ListOptions: gitlab.ListOptions{PerPage: perPageLimit},
	}, gitlab.WithContext(ctx))
	if err != nil {
		return []domain.MergeConflict{}, nil
	}

	conflicts := make([]domain.MergeConflict, 0, len(diffs))
	for i, d := range diffs {
		conflicts = append(conflicts, domain.MergeConflict{
			ID:               i + 1,
			Type:             "content",
			Path:             d.NewPath,
			SourcePath:       d.OldPath,
			TargetPath:       d.NewPath,
			ResolutionStatus: "unresolved",
		})
	}

	return conflicts, nil
}

// GetThreads returns the discussion threads of a merge request. System
// notes are kept but tagged so the core can ignore them when counting.
// Any failure degrades to an empty list, never an error.
func (s *Source) GetThreads(ctx context.Context, _, repoID string, prID int) ([]domain.CommentThread, error) {
	rid, err := strconv.Atoi(repoID)
	if err != nil {
		return []domain.CommentThread{}, nil
	}

	discussions, _, err := s.client.Discussions.ListMergeRequestDiscussions(
		rid, prID,
		&gitlab.ListMergeRequestDiscussionsOptions{PerPage: perPageLimit},
		gitlab.WithContext(ctx),
	)
	if err != nil {
		return []domain.CommentThread{}, nil
	}

	threads := make([]domain.CommentThread, 0, len(discussions))
	for i, d := range discussions {
		threads = append(threads, convertDiscussion(i+1, d))
	}

	return threads, nil
}

func convertDiscussion(id int, d *gitlab.Discussion) domain.CommentThread {
	thread := domain.CommentThread{
		ID:         id,
		IsResolved: true,
	}

	for _, note := range d.Notes {
		commentType := "text"
		if note.System {
			commentType = "system"
		}
		if note.Resolvable && !note.Resolved {
			thread.IsResolved = false
		}

		comment := domain.Comment{
			ID:      note.ID,
			Content: note.Body,
			Type:    commentType,
			Author: domain.Identity{
				ID:          strconv.Itoa(note.Author.ID),
				DisplayName: note.Author.Name,
				UniqueName:  note.Author.Username,
				AvatarURL:   note.Author.AvatarURL,
			},
		}
		if note.CreatedAt != nil {
			comment.Published = *note.CreatedAt
			if note.CreatedAt.After(thread.LastUpdated) {
				thread.LastUpdated = *note.CreatedAt
			}
		}
		thread.Comments = append(thread.Comments, comment)
	}

	return thread
}

// fetchReviewers combines the MR's reviewer list with approvals and
// vote emoji into the domain vote scale. Detail failures leave the
// reviewer at no-vote rather than dropping the reviewer.
func (s *Source) fetchReviewers(ctx context.Context, rid int, mr *gitlab.BasicMergeRequest) []domain.Reviewer {
	reviewers := make([]domain.Reviewer, 0, len(mr.Reviewers))
	for _, r := range mr.Reviewers {
		reviewers = append(reviewers, domain.Reviewer{
			Identity: domain.Identity{
				ID:          strconv.Itoa(r.ID),
				DisplayName: r.Name,
				UniqueName:  r.Username,
				AvatarURL:   r.AvatarURL,
			},
			Vote: domain.VoteNone,
		})
	}

	votes := s.fetchVotes(ctx, rid, mr.IID)
	if len(votes) == 0 {
		return reviewers
	}

	for i := range reviewers {
		if vote, ok := votes[reviewers[i].ID]; ok {
			reviewers[i].Vote = vote
		}
	}

	return reviewers
}

// fetchVotes reads approvals and thumbs emoji for one MR concurrently.
func (s *Source) fetchVotes(ctx context.Context, rid, iid int) map[string]domain.ReviewerVote {
	votes := make(map[string]domain.ReviewerVote)

	var (
		approvals *gitlab.MergeRequestApprovals
		awards    []*gitlab.AwardEmoji
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		approvals, _, err = s.client.MergeRequests.GetMergeRequestApprovals(rid, iid, gitlab.WithContext(gctx))

		return err
	})
	g.Go(func() error {
		var err error
		awards, _, err = s.client.AwardEmoji.ListMergeRequestAwardEmoji(rid, iid, &gitlab.ListAwardEmojiOptions{
			PerPage: perPageLimit,
		}, gitlab.WithContext(gctx))

		return err
	})

	if err := g.Wait(); err != nil {
		return votes
	}

	for _, award := range awards {
		userID := strconv.Itoa(award.User.ID)
		switch award.Name {
		case emojiApprove:
			votes[userID] = domain.VoteApproved
		case emojiReject:
			votes[userID] = domain.VoteRejected
		}
	}

	// Formal approvals outrank emoji.
	if approvals != nil {
		for _, by := range approvals.ApprovedBy {
			votes[strconv.Itoa(by.User.ID)] = domain.VoteApproved
		}
	}

	return votes
}

func (s *Source) convertMergeRequest(mr *gitlab.BasicMergeRequest, projectID, repoID string) *domain.PullRequest {
	pr := &domain.PullRequest{
		ID:           mr.IID,
		Title:        mr.Title,
		Description:  mr.Description,
		Status:       mapStateToStatus(mr.State),
		SourceBranch: mr.SourceBranch,
		TargetBranch: mr.TargetBranch,
		MergeStatus:  mapMergeStatus(mr),
		WebURL:       mr.WebURL,
		IsDraft:      mr.Draft,
		AutoComplete: mr.MergeWhenPipelineSucceeds,
		Labels:       append([]string(nil), mr.Labels...),
		Project: domain.ProjectInfo{
			ID:   projectID,
			Name: s.cachedName(&s.groupNames, projectID),
		},
		Repository: domain.RepositoryInfo{
			ID:   repoID,
			Name: s.cachedName(&s.repoNames, repoID),
		},
		CommentCount: mr.UserNotesCount,
	}

	if mr.Author != nil {
		pr.Author = domain.Identity{
			ID:          strconv.Itoa(mr.Author.ID),
			DisplayName: mr.Author.Name,
			UniqueName:  mr.Author.Username,
			AvatarURL:   mr.Author.AvatarURL,
		}
	}
	if mr.CreatedAt != nil {
		pr.CreatedAt = *mr.CreatedAt
	}
	if mr.ClosedAt != nil {
		pr.ClosedAt = mr.ClosedAt
	}

	return pr
}

// mapStatusToState translates the dashboard status filter to GitLab MR
// states; "all" means no state filter.
func mapStatusToState(status domain.PullRequestStatus) string {
	switch status {
	case domain.StatusActive:
		return "opened"
	case domain.StatusCompleted:
		return "merged"
	case domain.StatusAbandoned:
		return "closed"
	default:
		return ""
	}
}

func mapStateToStatus(state string) domain.PullRequestStatus {
	switch state {
	case "opened", "locked":
		return domain.StatusActive
	case "merged":
		return domain.StatusCompleted
	case "closed":
		return domain.StatusAbandoned
	default:
		return domain.StatusActive
	}
}

func mapMergeStatus(mr *gitlab.BasicMergeRequest) domain.MergeStatus {
	if mr.HasConflicts {
		return domain.MergeConflicts
	}

	switch mr.DetailedMergeStatus {
	case "mergeable":
		return domain.MergeSucceeded
	case "conflict":
		return domain.MergeConflicts
	case "blocked_status", "policies_denied", "not_approved", "discussions_not_resolved":
		return domain.MergeRejectedByPolicy
	case "broken_status", "ci_failed":
		return domain.MergeFailure
	case "checking", "preparing", "unchecked":
		return domain.MergeQueued
	default:
		return domain.MergeNotSet
	}
}

func (s *Source) cachedName(names *sync.Map, id string) string {
	if name, ok := names.Load(id); ok {
		if str, ok := name.(string); ok {
			return str
		}
	}

	return id
}
