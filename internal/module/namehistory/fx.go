package namehistory

import (
	"go.uber.org/fx"

	"moneyhive/internal/module/namehistory/repository"
	"moneyhive/internal/module/namehistory/service"
)

// Module provides the name-history module's repository and service.
var Module = fx.Module("namehistory",
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
