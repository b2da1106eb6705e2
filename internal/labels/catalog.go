package labels

var en = map[string]string{
	"notification.mergeConflict": `Merge conflicts detected in "{title}" ({project}/{repo}) - {count} file(s) affected`,
	"notification.approved":      `{reviewer} approved "{title}" in {project}`,
	"notification.rejected":      `{reviewer} rejected "{title}" in {project}`,

	"notifications.title":       "Notifications",
	"notifications.markAllRead": "Mark all read",
	"notifications.empty":       "No notifications yet",

	"empty.noPRs":          "No pull requests found",
	"empty.noPRsHint":      "Try adjusting your filters or check back later.",
	"empty.noProjects":     "No projects with pull requests",
	"empty.noProjectsHint": "No active pull requests were found across your projects.",
	"empty.noConflicts":    "No merge conflicts",
	"empty.noConflictsHint": "All your pull requests are conflict-free. Great job!",

	"stats.totalPRs":       "Total PRs",
	"stats.approved":       "Approved",
	"stats.awaitingReview": "Awaiting Review",
	"stats.conflicts":      "Conflicts",
	"stats.aging":          "Aging (>1d)",
	"stats.rejected":       "Rejected",
	"stats.drafts":         "Drafts",
}

var fr = map[string]string{
	"notification.mergeConflict": "Conflits de fusion détectés dans « {title} » ({project}/{repo}) - {count} fichier(s) affecté(s)",
	"notification.approved":      "{reviewer} a approuvé « {title} » dans {project}",
	"notification.rejected":      "{reviewer} a rejeté « {title} » dans {project}",

	"notifications.title":       "Notifications",
	"notifications.markAllRead": "Tout marquer comme lu",
	"notifications.empty":       "Aucune notification",

	"empty.noPRs":          "Aucune pull request trouvée",
	"empty.noPRsHint":      "Ajustez vos filtres ou revenez plus tard.",
	"empty.noProjects":     "Aucun projet avec des pull requests",
	"empty.noProjectsHint": "Aucune pull request active trouvée dans vos projets.",
	"empty.noConflicts":    "Aucun conflit de fusion",
	"empty.noConflictsHint": "Toutes vos pull requests sont sans conflit. Bravo !",

	"stats.totalPRs":       "Total PRs",
	"stats.approved":       "Approuvées",
	"stats.awaitingReview": "En attente de revue",
	"stats.conflicts":      "Conflits",
	"stats.aging":          "Anciennes (>1j)",
	"stats.rejected":       "Rejetées",
	"stats.drafts":         "Brouillons",
}
