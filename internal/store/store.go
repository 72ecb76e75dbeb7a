// Package store wraps the gorm connection with the transactional
// primitive every multi-row operation in the moneybox core runs
// through, the same role internal/fx/core.go#NewDatabase plays for
// the teacher, generalized to the postgres/sqlite driver split
// SPEC_FULL.md calls for (postgres in production, sqlite in tests).
package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moneyhive/internal/config"
)

// Store is the transactional handle every repository is constructed
// from. DB is a plain *gorm.DB: callers use Tx to guarantee atomicity
// across repositories.
type Store struct {
	DB  *gorm.DB
	log *zap.Logger
}

// New opens the configured driver and returns a Store wrapping it.
func New(cfg *config.Config, log *zap.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dsn := cfg.Database.Name
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(cfg.Database.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.Database.Driver != "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("acquire sql.DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Info("store connected",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
	)

	return &Store{DB: db, log: log}, nil
}

// NewTest opens an in-memory sqlite store for tests, bypassing config.
func NewTest() (*Store, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	return &Store{DB: db, log: zap.NewNop()}, nil
}

// Tx runs f inside a single database transaction: f's entire body
// commits atomically or nothing commits, per §4.1.
func (s *Store) Tx(ctx context.Context, f func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Transaction(f)
}

// WithContext returns the underlying connection bound to ctx, for
// single-statement reads that don't need a transaction.
func (s *Store) WithContext(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx)
}
