package adapters

import (
	"fmt"

	"github.com/akulikov/reviewdeck/internal/adapters/primary/cli"
	httpadapter "github.com/akulikov/reviewdeck/internal/adapters/primary/http"
	gitlabsource "github.com/akulikov/reviewdeck/internal/adapters/secondary/gitlab"
	"github.com/akulikov/reviewdeck/internal/adapters/secondary/store/memory"
	"github.com/akulikov/reviewdeck/internal/adapters/secondary/store/sqlite"
	"github.com/akulikov/reviewdeck/internal/config"
	"github.com/akulikov/reviewdeck/internal/core/app"
	"github.com/akulikov/reviewdeck/internal/labels"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
	glclient "gitlab.com/gitlab-org/api/client-go"
)

var PrimaryPackage = do.Package(
	do.Lazy[*cobra.Command](cli.Command),
	do.Lazy[*httpadapter.Server](NewHTTPServer),
)

var SecondaryPackage = do.Package(
	do.Lazy[*glclient.Client](NewGitLabClient),
	do.Lazy[app.Source](NewSource),
	do.Lazy[app.Store](NewStore),
	do.Lazy[app.Labels](NewLabels),
)

// NewGitLabClient creates a new GitLab client.
func NewGitLabClient(i do.Injector) (*glclient.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	client, err := glclient.NewClient(cfg.Token, glclient.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return client, nil
}

// NewSource creates the data source adapter backed by GitLab.
func NewSource(i do.Injector) (app.Source, error) {
	client := do.MustInvoke[*glclient.Client](i)
	cfg := do.MustInvoke[*config.Config](i)

	return gitlabsource.NewSource(client, cfg.Groups), nil
}

// NewStore opens the SQLite store, falling back to the in-memory store
// when the file cannot be used; prior notifications are lost but the
// dashboard keeps working.
func NewStore(i do.Injector) (app.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)

	store, err := sqlite.NewStore(cfg.StorePath)
	if err != nil {
		fmt.Printf("Warning: notification store unavailable (%v), history will not persist\n", err)

		return memory.NewStore(), nil
	}

	return store, nil
}

// NewLabels creates the localized label formatter.
func NewLabels(i do.Injector) (app.Labels, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return labels.NewFormatter(cfg.Locale), nil
}

// NewHTTPServer creates a new HTTP server.
func NewHTTPServer(i do.Injector) (*httpadapter.Server, error) {
	appInstance := do.MustInvoke[*app.App](i)
	cfg := do.MustInvoke[*config.Config](i)

	return httpadapter.NewServer(cfg.HTTPAddress, appInstance, cfg.Locale), nil
}
