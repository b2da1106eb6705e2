package commands

import (
	"fmt"

	"github.com/akulikov/reviewdeck/internal/core/app"
	ascii "github.com/akulikov/reviewdeck/internal/format/ascii"
	"github.com/spf13/cobra"
)

func Conflicts(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "Show pull requests with merge conflicts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prs, err := refresh(appInstance)
			if err != nil {
				return err
			}

			formatted, err := ascii.FormatConflicts(app.Conflicted(prs))
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Print(formatted)

			return nil
		},
	}
}
