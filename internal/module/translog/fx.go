package translog

import (
	"go.uber.org/fx"

	"moneyhive/internal/module/translog/repository"
	"moneyhive/internal/module/translog/service"
)

// Module provides the transaction-log module's repository and service.
var Module = fx.Module("translog",
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
