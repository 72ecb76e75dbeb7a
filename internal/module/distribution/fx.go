package distribution

import (
	"go.uber.org/fx"

	"moneyhive/internal/module/distribution/service"
)

// Module provides the distribution engine's service (the module has
// no repository of its own: it reads/writes through moneybox's).
var Module = fx.Module("distribution",
	fx.Provide(
		fx.Annotate(
			service.New,
			fx.As(new(service.Service)),
		),
	),
)
