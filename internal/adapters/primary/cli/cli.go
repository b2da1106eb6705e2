package cli

import (
	"github.com/akulikov/reviewdeck/internal/adapters/primary/cli/commands"
	"github.com/akulikov/reviewdeck/internal/config"
	"github.com/akulikov/reviewdeck/internal/core/app"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Command creates and returns the root CLI command.
func Command(i do.Injector) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:  "reviewdeck",
		Long: `An organization-wide pull request dashboard for the terminal.`,
	}

	appInstance := do.MustInvoke[*app.App](i)
	cfg := do.MustInvoke[*config.Config](i)

	cmd.AddCommand(
		commands.List(cfg, appInstance),
		commands.Projects(cfg, appInstance),
		commands.Conflicts(appInstance),
		commands.Watch(cfg, appInstance),
		commands.Notifications(appInstance),
		commands.Theme(appInstance),
	)

	return cmd, nil
}
