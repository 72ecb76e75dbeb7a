package settings

import (
	"go.uber.org/fx"

	"moneyhive/internal/module/settings/repository"
	"moneyhive/internal/module/settings/service"
)

// Module provides the settings module's repository and service.
var Module = fx.Module("settings",
	fx.Provide(
		fx.Annotate(
			repository.New,
			fx.As(new(repository.Repository)),
		),
		fx.Annotate(
			service.New,
			fx.As(new(service.Service)),
		),
	),
)
