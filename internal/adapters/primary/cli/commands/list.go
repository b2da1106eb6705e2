package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/akulikov/reviewdeck/internal/config"
	"github.com/akulikov/reviewdeck/internal/core/app"
	"github.com/akulikov/reviewdeck/internal/core/domain"
	ascii "github.com/akulikov/reviewdeck/internal/format/ascii"
	"github.com/akulikov/reviewdeck/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// filterFlags binds the FilterSpec fields to cobra flags shared by the
// list and projects commands.
func filterFlags(cmd *cobra.Command, spec *app.FilterSpec) {
	cmd.Flags().StringVar(&spec.SearchText, "search", "", "free-text search (title, author, branch, repository, project, #id)")
	cmd.Flags().StringVar(&spec.Status, "status", "all", "status filter: all|active|completed|abandoned")
	cmd.Flags().StringVar(&spec.Project, "project", "all", "project name filter")
	cmd.Flags().StringVar(&spec.HasConflicts, "conflicts", "all", "conflict filter: all|conflicts|clean")
	cmd.Flags().StringVar(&spec.SortBy, "sort", "date", "sort key: date|title|project|conflicts|reviewers")
	cmd.Flags().StringVar(&spec.SortDirection, "direction", "desc", "sort direction: asc|desc")
}

func List(cfg *config.Config, appInstance *app.App) *cobra.Command {
	spec := app.DefaultFilter()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pull requests across all projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prs, err := refresh(appInstance)
			if err != nil {
				return err
			}

			locale := language.Make(cfg.Locale)
			filtered := app.Filter(prs, spec)
			sorted := app.SortBy(filtered, spec, locale)

			stats, err := ascii.FormatStats(app.ComputeStats(prs, time.Now()))
			if err != nil {
				return fmt.Errorf("failed to format stats: %w", err)
			}
			list, err := ascii.FormatList(sorted, appInstance.LastRefreshed())
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Print(stats, list)

			return nil
		},
	}
	filterFlags(cmd, &spec)

	return cmd
}

// refresh runs one full aggregation cycle with a spinner and returns
// the committed snapshot.
func refresh(appInstance *app.App) ([]*domain.PullRequest, error) {
	var result *app.RefreshResult
	err := log.WithSpinner("Fetching pull requests...", func() error {
		var err error
		result, err = appInstance.Refresh(context.Background(), false)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to refresh: %w", err)
	}

	return result.PullRequests, nil
}
