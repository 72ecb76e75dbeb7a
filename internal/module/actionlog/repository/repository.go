package repository

import (
	"context"

	"gorm.io/gorm"

	"moneyhive/internal/module/actionlog/domain"
)

// Repository is append-only access to the action log.
type Repository interface {
	Append(ctx context.Context, tx *gorm.DB, a *domain.ActionLog) error
	// MostRecentByAction returns the most recent row of the given
	// action, used by the scheduler's once-per-day idempotence check.
	MostRecentByAction(ctx context.Context, tx *gorm.DB, action domain.Action) (*domain.ActionLog, error)
}

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *repository) Append(ctx context.Context, tx *gorm.DB, a *domain.ActionLog) error {
	return r.conn(tx).WithContext(ctx).Create(a).Error
}

func (r *repository) MostRecentByAction(ctx context.Context, tx *gorm.DB, action domain.Action) (*domain.ActionLog, error) {
	var row domain.ActionLog
	err := r.conn(tx).WithContext(ctx).
		Where("action = ?", action).
		Order("action_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
