package actionlog

import (
	"go.uber.org/fx"

	"moneyhive/internal/module/actionlog/repository"
	"moneyhive/internal/module/actionlog/service"
)

// Module provides the action-log module's repository and service.
var Module = fx.Module("actionlog",
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
