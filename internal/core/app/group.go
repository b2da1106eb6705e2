package app

import (
	"sort"

	"github.com/akulikov/reviewdeck/internal/core/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GroupByProject partitions prs into one group per distinct project id.
// Each group's pull requests keep the input order; the groups themselves
// are sorted by project display name. Groups are recomputed from scratch
// on every call.
func GroupByProject(prs []*domain.PullRequest, locale language.Tag) []*domain.ProjectGroup {
	byID := make(map[string]*domain.ProjectGroup)

	for _, pr := range prs {
		group, ok := byID[pr.Project.ID]
		if !ok {
			group = &domain.ProjectGroup{Project: pr.Project}
			byID[pr.Project.ID] = group
		}
		group.PullRequests = append(group.PullRequests, pr)
		tallyGroup(group, pr)
	}

	groups := make([]*domain.ProjectGroup, 0, len(byID))
	for _, group := range byID {
		groups = append(groups, group)
	}

	collator := collate.New(locale)
	sort.SliceStable(groups, func(i, j int) bool {
		c := collator.CompareString(groups[i].Project.Name, groups[j].Project.Name)
		if c != 0 {
			return c < 0
		}

		return groups[i].Project.ID < groups[j].Project.ID
	})

	return groups
}

func tallyGroup(group *domain.ProjectGroup, pr *domain.PullRequest) {
	if pr.IsConflicted() {
		group.TotalConflicts++
	}

	approved, rejected, voted := false, false, false
	for _, r := range pr.Reviewers {
		switch r.Vote {
		case domain.VoteApproved, domain.VoteApprovedWithSuggestions:
			approved = true
		case domain.VoteRejected:
			rejected = true
		}
		if r.Vote != domain.VoteNone {
			voted = true
		}
	}

	if approved {
		group.TotalApproved++
	}
	if rejected {
		group.TotalRejected++
	}
	if !voted {
		group.TotalWaiting++
	}
}
