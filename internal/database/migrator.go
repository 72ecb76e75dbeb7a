// Package database runs the schema migrations and initial seeding for
// the moneybox core, grounded on the teacher's internal/database
// AutoMigrate/Seeder shape but narrowed to this domain's six tables.
package database

import (
	"fmt"

	actionlogdomain "moneyhive/internal/module/actionlog/domain"
	moneyboxdomain "moneyhive/internal/module/moneybox/domain"
	namehistorydomain "moneyhive/internal/module/namehistory/domain"
	settingsdomain "moneyhive/internal/module/settings/domain"
	translogdomain "moneyhive/internal/module/translog/domain"
	userdomain "moneyhive/internal/module/user/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate runs automatic schema migration for every entity, then
// adds the partial-unique and check constraints GORM's AutoMigrate
// does not express on its own (§3's "name unique among active boxes",
// "priority unique among active boxes", non-negative balances).
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	entities := []interface{}{
		&moneyboxdomain.Moneybox{},
		&namehistorydomain.NameHistory{},
		&translogdomain.Transaction{},
		&actionlogdomain.ActionLog{},
		&settingsdomain.AppSettings{},
		&userdomain.User{},
	}

	if err := db.AutoMigrate(entities...); err != nil {
		log.Error("auto migration failed", zap.Error(err))
		return fmt.Errorf("auto migration failed: %w", err)
	}

	if err := addConstraints(db, log); err != nil {
		return err
	}

	log.Info("database migrations complete",
		zap.Strings("tables", []string{
			"moneyboxes",
			"moneybox_name_histories",
			"transactions",
			"action_logs",
			"app_settings",
			"users",
		}),
	)

	return nil
}

// addConstraints adds the partial-unique indexes and check constraints
// spec §3 requires. Index predicates use plain SQL so they work
// identically against Postgres (production) and SQLite (tests).
func addConstraints(db *gorm.DB, log *zap.Logger) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_moneyboxes_name_active ON moneyboxes(name) WHERE is_active = true`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_moneyboxes_priority_active ON moneyboxes(priority) WHERE is_active = true AND priority IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_users_login_active ON users(user_login) WHERE deleted_at IS NULL`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			log.Warn("constraint statement failed, continuing", zap.String("stmt", stmt), zap.Error(err))
		}
	}

	if db.Dialector.Name() == "postgres" {
		checks := []string{
			`ALTER TABLE moneyboxes ADD CONSTRAINT chk_moneyboxes_balance_nonneg CHECK (balance >= 0)`,
			`ALTER TABLE moneyboxes ADD CONSTRAINT chk_moneyboxes_savings_amount_nonneg CHECK (savings_amount >= 0)`,
			`ALTER TABLE moneyboxes ADD CONSTRAINT chk_moneyboxes_name_nonempty CHECK (btrim(name) <> '')`,
		}
		for _, stmt := range checks {
			if err := db.Exec(stmt).Error; err != nil {
				log.Debug("check constraint already present or unsupported", zap.String("stmt", stmt), zap.Error(err))
			}
		}
	}

	return nil
}

// DropAllTables drops every managed table, in dependency order. Used
// by the CLI's reset command during development.
func DropAllTables(db *gorm.DB, log *zap.Logger) error {
	log.Warn("dropping all tables")

	entities := []interface{}{
		&actionlogdomain.ActionLog{},
		&translogdomain.Transaction{},
		&namehistorydomain.NameHistory{},
		&moneyboxdomain.Moneybox{},
		&settingsdomain.AppSettings{},
		&userdomain.User{},
	}

	if err := db.Migrator().DropTable(entities...); err != nil {
		log.Error("failed to drop tables", zap.Error(err))
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	log.Info("all tables dropped")
	return nil
}
