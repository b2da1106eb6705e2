package core

import (
	"github.com/akulikov/reviewdeck/internal/config"
	"github.com/akulikov/reviewdeck/internal/core/app"
	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[*app.App](NewApp),
)

// NewApp creates a new App instance with dependencies from the injector.
func NewApp(i do.Injector) (*app.App, error) {
	cfg := do.MustInvoke[*config.Config](i)
	source := do.MustInvoke[app.Source](i)
	store := do.MustInvoke[app.Store](i)
	labels := do.MustInvoke[app.Labels](i)

	return app.NewApp(cfg, source, store, labels)
}
