package app

import (
	"time"

	"github.com/akulikov/reviewdeck/internal/core/domain"
)

// agingThreshold marks active PRs open longer than this as aging.
const agingThreshold = 24 * time.Hour

// Stats are the dashboard headline numbers for one snapshot.
type Stats struct {
	Total          int
	Approved       int
	AwaitingReview int
	Conflicts      int
	Rejected       int
	Drafts         int
	Aging          int
}

// ComputeStats tallies a snapshot into dashboard counters.
func ComputeStats(prs []*domain.PullRequest, now time.Time) Stats {
	var s Stats
	s.Total = len(prs)

	for _, pr := range prs {
		if pr.IsDraft {
			s.Drafts++
		}
		if pr.IsConflicted() {
			s.Conflicts++
		}
		if pr.Status == domain.StatusActive && now.Sub(pr.CreatedAt) > agingThreshold {
			s.Aging++
		}

		approved, rejected, voted := false, false, false
		for _, r := range pr.Reviewers {
			switch r.Vote {
			case domain.VoteApproved:
				approved = true
			case domain.VoteRejected:
				rejected = true
			}
			if r.Vote != domain.VoteNone {
				voted = true
			}
		}

		if approved {
			s.Approved++
		}
		if rejected {
			s.Rejected++
		}
		if !voted {
			s.AwaitingReview++
		}
	}

	return s
}
