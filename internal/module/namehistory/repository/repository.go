package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moneyhive/internal/module/namehistory/domain"
)

// Repository is append-only access to name history, plus the
// point-in-time historical resolver spec §4.4 requires.
type Repository interface {
	Append(ctx context.Context, tx *gorm.DB, h *domain.NameHistory) error
	// AtOrBefore returns the row with the greatest created_at <= at
	// for the given moneybox, across active and inactive boxes.
	AtOrBefore(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID, at time.Time) (*domain.NameHistory, error)
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

func (r *repository) Append(ctx context.Context, tx *gorm.DB, h *domain.NameHistory) error {
	return r.conn(tx).WithContext(ctx).Create(h).Error
}

func (r *repository) AtOrBefore(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID, at time.Time) (*domain.NameHistory, error) {
	var h domain.NameHistory
	err := r.conn(tx).WithContext(ctx).
		Where("moneybox_id = ? AND created_at <= ?", moneyboxID, at).
		Order("created_at DESC").
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}
