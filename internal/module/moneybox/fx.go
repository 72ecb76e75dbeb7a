package moneybox

import (
	"go.uber.org/fx"

	"moneyhive/internal/module/moneybox/repository"
	"moneyhive/internal/module/moneybox/service"
)

// Module provides the moneybox module's repository and service.
var Module = fx.Module("moneybox",
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
