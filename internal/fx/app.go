package fx

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneyhive/internal/config"
	"moneyhive/internal/database"
	"moneyhive/internal/httpapi"
	actionlogservice "moneyhive/internal/module/actionlog/service"
	distributionservice "moneyhive/internal/module/distribution/service"
	settingsservice "moneyhive/internal/module/settings/service"
	userservice "moneyhive/internal/module/user/service"
	"moneyhive/internal/scheduler"
)

const version = "0.1.0"

// AppModule wires migrations/seeding, route registration, the
// automated-savings scheduler, and the HTTP server together, the same
// fx.Invoke shape as the teacher's AppModule.
var AppModule = fx.Module("app",
	fx.Invoke(
		RunMigrationsAndSeeding,
		RegisterRoutes,
		StartScheduler,
		StartServer,
	),
)

// RegisterRoutes registers the thin driver's two routes (spec §6).
func RegisterRoutes(router *gin.Engine, log *zap.Logger) {
	router.GET("/health", func(c *gin.Context) {
		httpapi.RespondOK(c, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.GET("/app/metadata", func(c *gin.Context) {
		httpapi.RespondOK(c, gin.H{
			"version": version,
		})
	})

	log.Info("routes registered", zap.Strings("routes", []string{"GET /health", "GET /app/metadata"}))
}

// RunMigrationsAndSeeding migrates the schema and provisions the
// overflow moneybox, settings row, and (if configured) the admin user.
func RunMigrationsAndSeeding(db *gorm.DB, cfg *config.Config, users userservice.Service, log *zap.Logger) error {
	if err := database.AutoMigrate(db, log); err != nil {
		return err
	}

	seeder := database.NewSeeder(db, users, cfg.Seeding.AdminLogin, cfg.Seeding.AdminPassword, log)
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Warn("seeding failed", zap.Error(err))
	}
	return nil
}

// StartScheduler wires the automated-savings Scheduler into the fx
// lifecycle, the same lc.Append(fx.Hook{...}) shape StartServer uses.
func StartScheduler(
	lc fx.Lifecycle,
	settings settingsservice.Service,
	distribution distributionservice.Service,
	actionLog actionlogservice.Service,
	reporter scheduler.Reporter,
	log *zap.Logger,
	loc *time.Location,
	checkInterval schedulerCheckInterval,
) {
	sched := scheduler.New(settings, distribution, actionLog, reporter, log, loc, time.Duration(checkInterval))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sched.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return sched.Stop(ctx)
		},
	})
}

// StartServer starts the HTTP server with graceful shutdown, the same
// shape as the teacher's StartServer.
func StartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, log *zap.Logger) {
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting http server",
					zap.String("addr", server.Addr),
					zap.String("health", "http://"+cfg.Server.Host+":"+cfg.Server.Port+"/health"),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("server forced to shutdown", zap.Error(err))
				return err
			}
			log.Info("server gracefully stopped")
			return nil
		},
	})
}
