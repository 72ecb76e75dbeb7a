package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	moneyboxdomain "moneyhive/internal/module/moneybox/domain"
	settingsdomain "moneyhive/internal/module/settings/domain"
	userdomain "moneyhive/internal/module/user/domain"
)

// PasswordHasher hashes a plaintext password, letting the seeder hash
// the admin password without importing the user service directly.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Seeder provisions the rows the moneybox core cannot operate without:
// the Overflow Moneybox, the single settings row, and (optionally) an
// initial ADMIN user.
type Seeder struct {
	db            *gorm.DB
	passwordHash  PasswordHasher
	adminLogin    string
	adminPassword string
	logger        *zap.Logger
}

// NewSeeder creates a database seeder.
func NewSeeder(db *gorm.DB, passwordHash PasswordHasher, adminLogin, adminPassword string, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:            db,
		passwordHash:  passwordHash,
		adminLogin:    adminLogin,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

// SeedAll provisions the Overflow Moneybox, the settings row, and the
// admin user, each idempotently.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("running database seeder")

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.seedOverflowMoneybox(tx); err != nil {
			return fmt.Errorf("seed overflow moneybox: %w", err)
		}
		if err := s.seedAppSettings(tx); err != nil {
			return fmt.Errorf("seed app settings: %w", err)
		}
		if err := s.seedAdminUser(tx); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
		return nil
	})
}

// seedOverflowMoneybox creates the single priority-0 moneybox every
// distribution cycle requires (spec §3/§4.3), if none exists yet.
func (s *Seeder) seedOverflowMoneybox(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&moneyboxdomain.Moneybox{}).
		Where("priority = ?", moneyboxdomain.OverflowPriority).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("overflow moneybox already exists, skipping")
		return nil
	}

	priority := moneyboxdomain.OverflowPriority
	overflow := &moneyboxdomain.Moneybox{
		ID:       uuid.New(),
		Name:     "Overflow Moneybox",
		Priority: &priority,
		IsActive: true,
	}
	if err := tx.Create(overflow).Error; err != nil {
		return err
	}
	s.logger.Info("overflow moneybox created", zap.String("id", overflow.ID.String()))
	return nil
}

// seedAppSettings creates the single settings row, if none exists yet.
func (s *Seeder) seedAppSettings(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&settingsdomain.AppSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("app settings already exist, skipping")
		return nil
	}

	settings := &settingsdomain.AppSettings{
		ID:                                   uuid.New(),
		IsAutomatedSavingActive:              false,
		SavingsAmount:                        0,
		OverflowMoneyboxAutomatedSavingsMode: settingsdomain.ModeCollect,
		AutomatedSavingTriggerDay:            settingsdomain.TriggerFirstOfMonth,
		IsActive:                             true,
	}
	if err := tx.Create(settings).Error; err != nil {
		return err
	}
	s.logger.Info("app settings row created")
	return nil
}

// seedAdminUser creates the initial ADMIN user from config, if none
// exists yet and a password was configured.
func (s *Seeder) seedAdminUser(tx *gorm.DB) error {
	if s.adminPassword == "" {
		s.logger.Info("no admin password configured, skipping admin user seeding")
		return nil
	}

	var count int64
	if err := tx.Model(&userdomain.User{}).Where("role = ?", userdomain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("admin user already exists, skipping")
		return nil
	}

	hash, err := s.passwordHash.HashPassword(s.adminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &userdomain.User{
		ID:           uuid.New(),
		UserLogin:    s.adminLogin,
		PasswordHash: hash,
		Role:         userdomain.RoleAdmin,
	}
	if err := tx.Create(admin).Error; err != nil {
		return err
	}
	s.logger.Info("admin user created", zap.String("login", admin.UserLogin))
	return nil
}
