package commands

import (
	"context"
	"fmt"

	"github.com/akulikov/reviewdeck/internal/core/app"
	"github.com/spf13/cobra"
)

func Theme(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the dashboard theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(args) == 0 {
				theme := appInstance.Theme(ctx)
				if theme == "" {
					theme = "light (default)"
				}
				fmt.Println(theme)

				return nil
			}

			if args[0] != "light" && args[0] != "dark" {
				return fmt.Errorf("unknown theme: %s", args[0])
			}

			return appInstance.SetTheme(ctx, args[0])
		},
	}
}
