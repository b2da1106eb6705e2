package domain

import (
	"strconv"
	"time"
)

// PullRequestStatus is the review lifecycle state of a pull request.
type PullRequestStatus string

const (
	StatusActive    PullRequestStatus = "active"
	StatusCompleted PullRequestStatus = "completed"
	StatusAbandoned PullRequestStatus = "abandoned"
	StatusAll       PullRequestStatus = "all"
)

// MergeStatus reports what the platform last knew about merging the PR.
type MergeStatus string

const (
	MergeNotSet           MergeStatus = "notSet"
	MergeSucceeded        MergeStatus = "succeeded"
	MergeConflicts        MergeStatus = "conflicts"
	MergeRejectedByPolicy MergeStatus = "rejectedByPolicy"
	MergeFailure          MergeStatus = "failure"
	MergeQueued           MergeStatus = "queued"
)

// ReviewerVote is the platform's ordered vote scale.
type ReviewerVote int

const (
	VoteApproved                ReviewerVote = 10
	VoteApprovedWithSuggestions ReviewerVote = 5
	VoteNone                    ReviewerVote = 0
	VoteWaitingForAuthor        ReviewerVote = -5
	VoteRejected                ReviewerVote = -10
)

type Identity struct {
	ID          string
	DisplayName string
	UniqueName  string
	AvatarURL   string
}

type ProjectInfo struct {
	ID   string
	Name string
}

type RepositoryInfo struct {
	ID   string
	Name string
	URL  string
}

type Reviewer struct {
	Identity
	Vote        ReviewerVote
	IsRequired  bool
	HasDeclined bool
}

type MergeConflict struct {
	ID               int
	Type             string
	Path             string
	SourcePath       string
	TargetPath       string
	ResolutionStatus string
}

// systemCommentType marks platform-generated comments that carry no
// human discussion.
const systemCommentType = "system"

type Comment struct {
	ID        int
	Author    Identity
	Content   string
	Type      string
	Published time.Time
}

type CommentThread struct {
	ID          int
	IsResolved  bool
	Comments    []Comment
	LastUpdated time.Time
}

// IsMeaningful reports whether the thread holds at least one comment a
// human wrote, as opposed to pure system noise.
func (t CommentThread) IsMeaningful() bool {
	for _, c := range t.Comments {
		if c.Type != systemCommentType {
			return true
		}
	}

	return false
}

// PullRequest is the central entity. Identity is the (ProjectID, ID)
// pair; the numeric id alone can recur across projects.
type PullRequest struct {
	ID             int
	Title          string
	Description    string
	Status         PullRequestStatus
	Author         Identity
	CreatedAt      time.Time
	ClosedAt       *time.Time
	SourceBranch   string
	TargetBranch   string
	Repository     RepositoryInfo
	Project        ProjectInfo
	Reviewers      []Reviewer
	MergeStatus    MergeStatus
	MergeConflicts []MergeConflict
	CommentCount   int
	ChangedFiles   int
	WebURL         string
	IsDraft        bool
	Labels         []string
	AutoComplete   bool
	Threads        []CommentThread
}

// Key returns the composite identity used everywhere PRs from different
// projects are mixed in one collection.
func (pr *PullRequest) Key() string {
	return pr.Project.ID + "-" + strconv.Itoa(pr.ID)
}

// IsConflicted reports whether the PR must be treated as conflicted.
// A populated conflict list takes precedence over the summary-level
// merge status, which can lag behind enrichment.
func (pr *PullRequest) IsConflicted() bool {
	return len(pr.MergeConflicts) > 0 || pr.MergeStatus == MergeConflicts
}

// ReviewScore folds reviewer votes into a single comparable number:
// +2 approved, +1 approved with suggestions, -2 rejected.
func (pr *PullRequest) ReviewScore() int {
	score := 0
	for _, r := range pr.Reviewers {
		switch r.Vote {
		case VoteApproved:
			score += 2
		case VoteApprovedWithSuggestions:
			score++
		case VoteRejected:
			score -= 2
		}
	}

	return score
}

// MeaningfulThreads returns the threads worth counting and displaying.
func (pr *PullRequest) MeaningfulThreads() []CommentThread {
	threads := make([]CommentThread, 0, len(pr.Threads))
	for _, t := range pr.Threads {
		if t.IsMeaningful() {
			threads = append(threads, t)
		}
	}

	return threads
}

// ProjectGroup is derived from a PR collection on every render, never
// stored or mutated independently.
type ProjectGroup struct {
	Project        ProjectInfo
	PullRequests   []*PullRequest
	TotalConflicts int
	TotalApproved  int
	TotalWaiting   int
	TotalRejected  int
}

// NotificationType classifies a user-facing change event.
type NotificationType string

const (
	NotifyMergeConflict NotificationType = "mergeConflict"
	NotifyApproved      NotificationType = "approved"
	NotifyRejected      NotificationType = "rejected"
	NotifyCommentAdded  NotificationType = "commentAdded"
	NotifyStatusChanged NotificationType = "statusChanged"
)

// Notification is immutable once created except for the read flag.
// Matching and de-duplication go by ID, never by message text.
type Notification struct {
	ID          string
	Type        NotificationType
	MessageKey  string
	Params      map[string]string
	Message     string
	PullRequest *PullRequest
	CreatedAt   time.Time
	IsRead      bool
}
