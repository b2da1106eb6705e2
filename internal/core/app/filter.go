package app

import (
	"sort"
	"strconv"
	"strings"

	"github.com/akulikov/reviewdeck/internal/core/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Conflict filter values.
const (
	ConflictsAll  = "all"
	ConflictsOnly = "conflicts"
	ConflictsNone = "clean"
)

// Sort keys.
const (
	SortByDate      = "date"
	SortByTitle     = "title"
	SortByProject   = "project"
	SortByConflicts = "conflicts"
	SortByReviewers = "reviewers"
)

// FilterSpec is a declarative filter and sort description applied to an
// in-memory pull-request collection.
type FilterSpec struct {
	SearchText    string
	Status        string // "all" or an exact PullRequestStatus
	Project       string // "all" or an exact project name
	HasConflicts  string // all | conflicts | clean
	SortBy        string
	SortDirection string // asc | desc
}

// DefaultFilter matches everything, newest first.
func DefaultFilter() FilterSpec {
	return FilterSpec{
		Status:        "all",
		Project:       "all",
		HasConflicts:  ConflictsAll,
		SortBy:        SortByDate,
		SortDirection: "desc",
	}
}

// Merge overlays the non-empty fields of partial onto f and returns the
// combined spec. It never mutates its receiver.
func (f FilterSpec) Merge(partial FilterSpec) FilterSpec {
	merged := f
	if partial.SearchText != "" {
		merged.SearchText = partial.SearchText
	}
	if partial.Status != "" {
		merged.Status = partial.Status
	}
	if partial.Project != "" {
		merged.Project = partial.Project
	}
	if partial.HasConflicts != "" {
		merged.HasConflicts = partial.HasConflicts
	}
	if partial.SortBy != "" {
		merged.SortBy = partial.SortBy
	}
	if partial.SortDirection != "" {
		merged.SortDirection = partial.SortDirection
	}

	return merged
}

// Matches reports whether a single pull request passes the filter. The
// combined predicate is a plain conjunction, so applying filters in any
// order yields the same set.
func (f FilterSpec) Matches(pr *domain.PullRequest) bool {
	if f.SearchText != "" && !matchesSearch(pr, f.SearchText) {
		return false
	}

	if f.Status != "" && f.Status != "all" && string(pr.Status) != f.Status {
		return false
	}

	if f.Project != "" && f.Project != "all" && pr.Project.Name != f.Project {
		return false
	}

	switch f.HasConflicts {
	case ConflictsOnly:
		if !pr.IsConflicted() {
			return false
		}
	case ConflictsNone:
		if pr.IsConflicted() {
			return false
		}
	}

	return true
}

// Filter returns the pull requests matching the spec. The input is
// never mutated.
func Filter(prs []*domain.PullRequest, spec FilterSpec) []*domain.PullRequest {
	out := make([]*domain.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if spec.Matches(pr) {
			out = append(out, pr)
		}
	}

	return out
}

// SortBy returns a new slice ordered by the spec's sort key and
// direction. Ties fall back to the composite identity so the order is
// reproducible.
func SortBy(prs []*domain.PullRequest, spec FilterSpec, locale language.Tag) []*domain.PullRequest {
	sorted := make([]*domain.PullRequest, len(prs))
	copy(sorted, prs)

	dir := 1
	if spec.SortDirection == "desc" {
		dir = -1
	}

	collator := collate.New(locale)

	sort.SliceStable(sorted, func(i, j int) bool {
		c := dir * compare(sorted[i], sorted[j], spec.SortBy, collator)
		if c != 0 {
			return c < 0
		}

		return tieBreak(sorted[i], sorted[j])
	})

	return sorted
}

// compare orders a before b ascending for the given key; the direction
// multiplier is applied by the caller.
func compare(a, b *domain.PullRequest, key string, collator *collate.Collator) int {
	switch key {
	case SortByTitle:
		return collator.CompareString(a.Title, b.Title)
	case SortByProject:
		return collator.CompareString(a.Project.Name, b.Project.Name)
	case SortByConflicts:
		return len(a.MergeConflicts) - len(b.MergeConflicts)
	case SortByReviewers:
		return a.ReviewScore() - b.ReviewScore()
	default: // SortByDate
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func tieBreak(a, b *domain.PullRequest) bool {
	if a.Project.ID != b.Project.ID {
		return a.Project.ID < b.Project.ID
	}

	return a.ID < b.ID
}

// matchesSearch matches the free-text query case-insensitively against
// a synthesized searchable string covering title, author, branches,
// repository, project and the literal "#<id>".
func matchesSearch(pr *domain.PullRequest, query string) bool {
	searchable := strings.ToLower(strings.Join([]string{
		pr.Title,
		pr.Author.DisplayName,
		pr.SourceBranch,
		pr.TargetBranch,
		pr.Repository.Name,
		pr.Project.Name,
		"#" + strconv.Itoa(pr.ID),
	}, " "))

	return strings.Contains(searchable, strings.ToLower(query))
}

// Conflicted returns the subset of prs that must be shown as conflicted.
func Conflicted(prs []*domain.PullRequest) []*domain.PullRequest {
	out := make([]*domain.PullRequest, 0)
	for _, pr := range prs {
		if pr.IsConflicted() {
			out = append(out, pr)
		}
	}

	return out
}

// TotalConflictFiles sums the conflicting-file counts across prs.
func TotalConflictFiles(prs []*domain.PullRequest) int {
	total := 0
	for _, pr := range prs {
		total += len(pr.MergeConflicts)
	}

	return total
}
