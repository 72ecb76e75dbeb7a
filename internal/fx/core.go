package fx

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneyhive/internal/config"
	"moneyhive/internal/logging"
	"moneyhive/internal/mailer"
	"moneyhive/internal/middleware"
	"moneyhive/internal/scheduler"
	"moneyhive/internal/store"
)

// CoreModule provides the application's ambient infrastructure:
// config, logger, database, cache, gin engine, and time parameters the
// scheduler needs, mirroring the teacher's core module composition.
var CoreModule = fx.Module("core",
	fx.Provide(
		config.Load,
		NewLogger,
		NewStore,
		NewDB,
		config.NewRedisClient,
		NewGinRouter,
		NewSchedulerTimezone,
		NewSchedulerCheckInterval,
		fx.Annotate(
			mailer.New,
			fx.As(new(scheduler.Reporter)),
		),
	),
)

// NewLogger builds the zap logger from config.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	log.Info("logger initialized", zap.String("level", cfg.Logging.Level), zap.String("format", cfg.Logging.Format))
	return log, nil
}

// NewStore opens the configured database driver.
func NewStore(cfg *config.Config, log *zap.Logger) (*store.Store, error) {
	return store.New(cfg, log)
}

// NewDB exposes the store's *gorm.DB, the handle every repository
// constructor in this module set is built from.
func NewDB(st *store.Store) *gorm.DB {
	return st.DB
}

// NewSchedulerTimezone resolves the configured timezone, falling back
// to UTC on a bad name rather than failing startup.
func NewSchedulerTimezone(cfg *config.Config, log *zap.Logger) *time.Location {
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Warn("unknown scheduler timezone, defaulting to UTC", zap.String("timezone", cfg.Scheduler.Timezone), zap.Error(err))
		return time.UTC
	}
	return loc
}

// schedulerCheckInterval is a distinct type so fx can provide a
// time.Duration for the scheduler without colliding with any other
// duration some other collaborator might need.
type schedulerCheckInterval time.Duration

// NewSchedulerCheckInterval parses the configured cron-style check
// interval into the concrete Duration the scheduler's cron spec needs.
// Falls back to one hour on a bad value.
func NewSchedulerCheckInterval(cfg *config.Config, log *zap.Logger) schedulerCheckInterval {
	d, err := time.ParseDuration(normalizeInterval(cfg.Scheduler.CheckInterval))
	if err != nil {
		log.Warn("invalid scheduler check interval, defaulting to 1h", zap.String("interval", cfg.Scheduler.CheckInterval), zap.Error(err))
		return schedulerCheckInterval(time.Hour)
	}
	return schedulerCheckInterval(d)
}

func normalizeInterval(s string) string {
	switch s {
	case "@hourly":
		return "1h"
	case "@daily":
		return "24h"
	case "":
		return "1h"
	}
	return s
}

// NewGinRouter builds the minimal two-route HTTP driver (spec §6):
// health and metadata, with the same middleware stack ordering the
// teacher's NewGinRouter uses, trimmed of Swagger/auth concerns this
// driver doesn't carry.
func NewGinRouter(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(middleware.NewCORS(cfg.CORS.Origins))
	r.Use(middleware.IPRateLimiter(int(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst))

	return r
}
