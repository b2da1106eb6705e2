package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPullRequest_Key(t *testing.T) {
	a := &PullRequest{ID: 42, Project: ProjectInfo{ID: "p1"}}
	b := &PullRequest{ID: 42, Project: ProjectInfo{ID: "p2"}}

	assert.Equal(t, "p1-42", a.Key())
	// The same numeric id in another project is a different PR.
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestPullRequest_IsConflicted(t *testing.T) {
	tests := []struct {
		name     string
		pr       PullRequest
		expected bool
	}{
		{
			name:     "clean",
			pr:       PullRequest{MergeStatus: MergeSucceeded},
			expected: false,
		},
		{
			name:     "status only",
			pr:       PullRequest{MergeStatus: MergeConflicts},
			expected: true,
		},
		{
			name: "conflict list only",
			pr: PullRequest{
				MergeStatus:    MergeSucceeded,
				MergeConflicts: []MergeConflict{{ID: 1}},
			},
			expected: true,
		},
		{
			name:     "no merge information",
			pr:       PullRequest{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pr.IsConflicted())
		})
	}
}

func TestPullRequest_ReviewScore(t *testing.T) {
	tests := []struct {
		name     string
		votes    []ReviewerVote
		expected int
	}{
		{name: "no reviewers", votes: nil, expected: 0},
		{name: "single approval", votes: []ReviewerVote{VoteApproved}, expected: 2},
		{name: "approval with suggestions", votes: []ReviewerVote{VoteApprovedWithSuggestions}, expected: 1},
		{name: "rejection", votes: []ReviewerVote{VoteRejected}, expected: -2},
		{name: "waiting counts as zero", votes: []ReviewerVote{VoteWaitingForAuthor, VoteNone}, expected: 0},
		{
			name:     "mixed votes sum",
			votes:    []ReviewerVote{VoteApproved, VoteApprovedWithSuggestions, VoteRejected},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := PullRequest{}
			for i, v := range tt.votes {
				pr.Reviewers = append(pr.Reviewers, Reviewer{
					Identity: Identity{ID: string(rune('a' + i))},
					Vote:     v,
				})
			}

			assert.Equal(t, tt.expected, pr.ReviewScore())
		})
	}
}

func TestCommentThread_IsMeaningful(t *testing.T) {
	system := CommentThread{Comments: []Comment{
		{ID: 1, Type: "system", Content: "changed target branch"},
	}}
	human := CommentThread{Comments: []Comment{
		{ID: 2, Type: "system", Content: "rebased"},
		{ID: 3, Type: "text", Content: "please split this up"},
	}}
	empty := CommentThread{}

	assert.False(t, system.IsMeaningful())
	assert.True(t, human.IsMeaningful())
	assert.False(t, empty.IsMeaningful())
}

func TestPullRequest_MeaningfulThreads(t *testing.T) {
	pr := PullRequest{
		Threads: []CommentThread{
			{ID: 1, Comments: []Comment{{Type: "system"}}},
			{ID: 2, Comments: []Comment{{Type: "text"}}},
			{ID: 3, Comments: []Comment{{Type: "system"}, {Type: "text"}}},
		},
	}

	threads := pr.MeaningfulThreads()

	assert.Len(t, threads, 2)
	assert.Equal(t, 2, threads[0].ID)
	assert.Equal(t, 3, threads[1].ID)
}
