package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akulikov/reviewdeck/internal/config"
	"github.com/akulikov/reviewdeck/internal/core/app"
	"github.com/spf13/cobra"
)

func Watch(cfg *config.Config, appInstance *app.App) *cobra.Command {
	interval := cfg.PollInterval

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll for changes and print notifications as they appear",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			// First cycle is visible; later ones run silently in the
			// background so stale data stays on screen if one fails.
			prs, err := refresh(appInstance)
			if err != nil {
				return err
			}
			fmt.Printf("Watching %d pull requests, refreshing every %s\n", len(prs), interval)

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-quit:
					fmt.Println("\nStopped.")

					return nil
				case <-ticker.C:
					result, err := appInstance.Refresh(ctx, true)
					if err != nil {
						fmt.Printf("[%s] refresh failed: %v (previous data kept)\n",
							time.Now().Format("15:04:05"), err)

						continue
					}
					if result.Stale {
						continue
					}
					for _, n := range result.Notifications {
						fmt.Printf("[%s] %s\n", n.CreatedAt.Format("15:04:05"), n.Message)
					}
				}
			}
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", cfg.PollInterval, "refresh interval")

	return cmd
}
