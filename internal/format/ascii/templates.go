// Package ascii renders dashboard views as plain terminal text using
// text/template.
package ascii

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/akulikov/reviewdeck/internal/core/app"
	"github.com/akulikov/reviewdeck/internal/core/domain"
)

const (
	titleMaxLen  = 70
	titleTrunc   = 67
	branchMaxLen = 40
)

const listTemplate = `
PULL REQUESTS ({{len .PullRequests}}){{if not .LastRefreshed.IsZero}}  updated {{timeAgo .LastRefreshed}}{{end}}
{{rule}}
{{- range .PullRequests}}
{{statusIcon .}} #{{.ID}} {{truncTitle .Title}}{{if .IsDraft}} [draft]{{end}}
    {{.Project.Name}}/{{.Repository.Name}}  {{branch .}}  by {{.Author.DisplayName}}  {{timeAgo .CreatedAt}}
    {{- if .IsConflicted}}
    CONFLICTS: {{len .MergeConflicts}} file(s)
    {{- end}}
    {{- if .Reviewers}}
    reviewers: {{reviewers .}}
    {{- end}}
{{- else}}
  (none)
{{- end}}
`

const groupsTemplate = `
PROJECTS ({{len .Groups}})
{{rule}}
{{- range .Groups}}
{{.Project.Name}}  ({{len .PullRequests}} PRs, {{.TotalConflicts}} conflicted, {{.TotalApproved}} approved, {{.TotalWaiting}} waiting, {{.TotalRejected}} rejected)
{{- range .PullRequests}}
  {{statusIcon .}} #{{.ID}} {{truncTitle .Title}} ({{.Repository.Name}})
{{- end}}
{{- end}}
`

const conflictsTemplate = `
MERGE CONFLICTS: {{len .PullRequests}} PR(s), {{.TotalFiles}} conflicting file(s)
{{rule}}
{{- range .PullRequests}}
! #{{.ID}} {{truncTitle .Title}}  {{.Project.Name}}/{{.Repository.Name}}
{{- range .MergeConflicts}}
    {{.Path}} ({{.ResolutionStatus}})
{{- end}}
{{- end}}
`

const notificationsTemplate = `
NOTIFICATIONS ({{.Unread}} unread)
{{rule}}
{{- range .Notifications}}
{{if .IsRead}} {{else}}*{{end}} [{{.Type}}] {{.Message}}  ({{timeAgo .CreatedAt}})
    id: {{.ID}}
{{- else}}
  (none)
{{- end}}
`

const statsTemplate = `
{{rule}}
Total: {{.Total}}  Approved: {{.Approved}}  Awaiting: {{.AwaitingReview}}  Conflicts: {{.Conflicts}}  Rejected: {{.Rejected}}  Drafts: {{.Drafts}}  Aging(>1d): {{.Aging}}
{{rule}}
`

// ListData feeds the pull-request list template.
type ListData struct {
	PullRequests  []*domain.PullRequest
	LastRefreshed time.Time
}

// GroupsData feeds the project-group template.
type GroupsData struct {
	Groups []*domain.ProjectGroup
}

// ConflictsData feeds the conflicts template.
type ConflictsData struct {
	PullRequests []*domain.PullRequest
	TotalFiles   int
}

// NotificationsData feeds the notifications template.
type NotificationsData struct {
	Notifications []*domain.Notification
	Unread        int
}

// FormatList renders the pull-request list view.
func FormatList(prs []*domain.PullRequest, lastRefreshed time.Time) (string, error) {
	return execute("list", listTemplate, ListData{PullRequests: prs, LastRefreshed: lastRefreshed})
}

// FormatGroups renders the by-project view.
func FormatGroups(groups []*domain.ProjectGroup) (string, error) {
	return execute("groups", groupsTemplate, GroupsData{Groups: groups})
}

// FormatConflicts renders the conflicts view.
func FormatConflicts(prs []*domain.PullRequest) (string, error) {
	return execute("conflicts", conflictsTemplate, ConflictsData{
		PullRequests: prs,
		TotalFiles:   app.TotalConflictFiles(prs),
	})
}

// FormatNotifications renders the notification log.
func FormatNotifications(notifications []*domain.Notification, unread int) (string, error) {
	return execute("notifications", notificationsTemplate, NotificationsData{
		Notifications: notifications,
		Unread:        unread,
	})
}

// FormatStats renders the one-line dashboard summary.
func FormatStats(stats app.Stats) (string, error) {
	return execute("stats", statsTemplate, stats)
}

func execute(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", name, err)
	}

	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"rule": func() string {
			return strings.Repeat("-", 80)
		},
		"timeAgo":    timeAgo,
		"truncTitle": truncTitle,
		"statusIcon": statusIcon,
		"branch":     branchArrow,
		"reviewers":  reviewerSummary,
	}
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func truncTitle(title string) string {
	if len(title) <= titleMaxLen {
		return title
	}

	return title[:titleTrunc] + "..."
}

func statusIcon(pr *domain.PullRequest) string {
	switch {
	case pr.IsConflicted():
		return "[!]"
	case pr.ReviewScore() > 0:
		return "[+]"
	case pr.ReviewScore() < 0:
		return "[-]"
	default:
		return "[ ]"
	}
}

func branchArrow(pr *domain.PullRequest) string {
	src := pr.SourceBranch
	if len(src) > branchMaxLen {
		src = src[:branchMaxLen] + "..."
	}

	return src + " -> " + pr.TargetBranch
}

func reviewerSummary(pr *domain.PullRequest) string {
	parts := make([]string, 0, len(pr.Reviewers))
	for _, r := range pr.Reviewers {
		parts = append(parts, r.DisplayName+voteMark(r.Vote))
	}

	return strings.Join(parts, ", ")
}

func voteMark(vote domain.ReviewerVote) string {
	switch vote {
	case domain.VoteApproved:
		return " (approved)"
	case domain.VoteApprovedWithSuggestions:
		return " (suggestions)"
	case domain.VoteWaitingForAuthor:
		return " (waiting)"
	case domain.VoteRejected:
		return " (rejected)"
	default:
		return ""
	}
}
