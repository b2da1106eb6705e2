package app

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/akulikov/reviewdeck/internal/core/domain"
)

// Label message keys for notification text.
const (
	keyMergeConflict = "notification.mergeConflict"
	keyApproved      = "notification.approved"
	keyRejected      = "notification.rejected"
)

// idGenerator hands out a process-wide monotonic counter so that the
// same event recurring across refresh cycles still gets a distinct id.
type idGenerator struct {
	seq atomic.Uint64
}

func newIDGenerator() *idGenerator {
	return &idGenerator{}
}

func (g *idGenerator) next() uint64 {
	return g.seq.Add(1)
}

// diffNotifications compares the current snapshot against the previous
// one and emits newly observed events: a PR becoming conflicted, a
// reviewer switching to approved, a reviewer switching to rejected.
// Vote events need a previous entry to diff against; a brand-new PR only
// ever produces a conflict notification.
func (a *App) diffNotifications(current, previous []*domain.PullRequest) []*domain.Notification {
	prev := make(map[string]*domain.PullRequest, len(previous))
	for _, pr := range previous {
		prev[pr.Key()] = pr
	}

	notifications := make([]*domain.Notification, 0)

	for _, pr := range current {
		before := prev[pr.Key()]

		if pr.IsConflicted() && (before == nil || !before.IsConflicted()) {
			notifications = append(notifications, a.conflictNotification(pr, false))
		}

		if before == nil {
			continue
		}

		for _, reviewer := range pr.Reviewers {
			prevVote, known := previousVote(before, reviewer.ID)

			if reviewer.Vote == domain.VoteApproved && (!known || prevVote != domain.VoteApproved) {
				notifications = append(notifications, a.voteNotification(pr, reviewer, domain.NotifyApproved, false))
			}
			if reviewer.Vote == domain.VoteRejected && (!known || prevVote != domain.VoteRejected) {
				notifications = append(notifications, a.voteNotification(pr, reviewer, domain.NotifyRejected, false))
			}
		}
	}

	return notifications
}

// initialNotifications surfaces pre-existing problem states on the very
// first snapshot of a session: one conflict event per already-conflicted
// PR and one rejection event per reviewer already at rejected. The ids
// carry no generation counter so that a persisted log de-duplicates
// them across sessions.
func (a *App) initialNotifications(current []*domain.PullRequest) []*domain.Notification {
	notifications := make([]*domain.Notification, 0)

	for _, pr := range current {
		if pr.IsConflicted() {
			notifications = append(notifications, a.conflictNotification(pr, true))
		}
		for _, reviewer := range pr.Reviewers {
			if reviewer.Vote == domain.VoteRejected {
				notifications = append(notifications, a.voteNotification(pr, reviewer, domain.NotifyRejected, true))
			}
		}
	}

	return notifications
}

func previousVote(pr *domain.PullRequest, reviewerID string) (domain.ReviewerVote, bool) {
	for _, r := range pr.Reviewers {
		if r.ID == reviewerID {
			return r.Vote, true
		}
	}

	return domain.VoteNone, false
}

func (a *App) conflictNotification(pr *domain.PullRequest, initial bool) *domain.Notification {
	params := map[string]string{
		"title":   pr.Title,
		"project": pr.Project.Name,
		"repo":    pr.Repository.Name,
		"count":   strconv.Itoa(len(pr.MergeConflicts)),
	}

	return &domain.Notification{
		ID:          a.notificationID("conflict", pr, "", initial),
		Type:        domain.NotifyMergeConflict,
		MessageKey:  keyMergeConflict,
		Params:      params,
		Message:     a.labels.Format(keyMergeConflict, params),
		PullRequest: pr,
		CreatedAt:   time.Now(),
	}
}

func (a *App) voteNotification(pr *domain.PullRequest, reviewer domain.Reviewer, kind domain.NotificationType, initial bool) *domain.Notification {
	key := keyApproved
	prefix := "approved"
	if kind == domain.NotifyRejected {
		key = keyRejected
		prefix = "rejected"
	}

	params := map[string]string{
		"reviewer": reviewer.DisplayName,
		"title":    pr.Title,
		"project":  pr.Project.Name,
	}

	return &domain.Notification{
		ID:          a.notificationID(prefix, pr, reviewer.ID, initial),
		Type:        kind,
		MessageKey:  key,
		Params:      params,
		Message:     a.labels.Format(key, params),
		PullRequest: pr,
		CreatedAt:   time.Now(),
	}
}

// notificationID builds "kind-projectID-prID[-reviewerID][-seq]".
// Initial-load events drop the counter: their identity is the
// pre-existing state itself, which is what makes replays de-duplicate.
func (a *App) notificationID(kind string, pr *domain.PullRequest, reviewerID string, initial bool) string {
	id := fmt.Sprintf("%s-%s", kind, pr.Key())
	if reviewerID != "" {
		id += "-" + reviewerID
	}
	if !initial {
		id += "-" + strconv.FormatUint(a.ids.next(), 10)
	}

	return id
}
