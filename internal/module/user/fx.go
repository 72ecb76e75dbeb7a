package user

import (
	"go.uber.org/fx"

	"moneyhive/internal/module/user/repository"
	"moneyhive/internal/module/user/service"
)

// Module provides the user module's repository and service.
var Module = fx.Module("user",
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
