package commands

import (
	"fmt"

	"github.com/akulikov/reviewdeck/internal/config"
	"github.com/akulikov/reviewdeck/internal/core/app"
	ascii "github.com/akulikov/reviewdeck/internal/format/ascii"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

func Projects(cfg *config.Config, appInstance *app.App) *cobra.Command {
	spec := app.DefaultFilter()

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Show pull requests grouped by project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prs, err := refresh(appInstance)
			if err != nil {
				return err
			}

			locale := language.Make(cfg.Locale)
			filtered := app.Filter(prs, spec)
			sorted := app.SortBy(filtered, spec, locale)
			groups := app.GroupByProject(sorted, locale)

			formatted, err := ascii.FormatGroups(groups)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Print(formatted)

			return nil
		},
	}
	filterFlags(cmd, &spec)

	return cmd
}
