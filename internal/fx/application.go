package fx

import (
	"moneyhive/internal/config"
	"moneyhive/internal/module/actionlog"
	"moneyhive/internal/module/distribution"
	"moneyhive/internal/module/moneybox"
	"moneyhive/internal/module/namehistory"
	"moneyhive/internal/module/settings"
	"moneyhive/internal/module/translog"
	"moneyhive/internal/module/user"

	"go.uber.org/fx"
)

// Application creates the main FX application with every module
// the moneybox core needs.
func Application() *fx.App {
	options := []fx.Option{
		CoreModule,

		moneybox.Module,
		namehistory.Module,
		translog.Module,
		actionlog.Module,
		settings.Module,
		distribution.Module,
		user.Module,

		AppModule,
	}

	if config.IsProduction() {
		options = append(options, fx.NopLogger)
	}

	return fx.New(options...)
}
