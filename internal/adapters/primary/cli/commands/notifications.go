package commands

import (
	"context"
	"fmt"

	"github.com/akulikov/reviewdeck/internal/core/app"
	ascii "github.com/akulikov/reviewdeck/internal/format/ascii"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

func Notifications(appInstance *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show the notification log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatted, err := ascii.FormatNotifications(
				appInstance.Notifications(),
				appInstance.UnreadNotifications(),
			)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Print(formatted)

			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "read [ID]",
			Short: "Mark one notification as read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return appInstance.MarkNotificationRead(context.Background(), args[0])
			},
		},
		&cobra.Command{
			Use:   "read-all",
			Short: "Mark every notification as read",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return appInstance.MarkAllNotificationsRead(context.Background())
			},
		},
		&cobra.Command{
			Use:   "open [ID]",
			Short: "Open the pull request behind a notification in the browser",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return openNotification(appInstance, args[0])
			},
		},
	)

	return cmd
}

func openNotification(appInstance *app.App, id string) error {
	for _, n := range appInstance.Notifications() {
		if n.ID != id {
			continue
		}
		if n.PullRequest == nil || n.PullRequest.WebURL == "" {
			return fmt.Errorf("notification %s has no pull request URL", id)
		}
		if err := open.Run(n.PullRequest.WebURL); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}

		return appInstance.MarkNotificationRead(context.Background(), id)
	}

	return fmt.Errorf("notification not found: %s", id)
}
