package repository

import (
	"context"

	"gorm.io/gorm"

	"moneyhive/internal/module/settings/domain"
)

// Repository accesses the single active AppSettings row.
type Repository interface {
	Get(ctx context.Context, tx *gorm.DB) (*domain.AppSettings, error)
	Update(ctx context.Context, tx *gorm.DB, s *domain.AppSettings) error
	Create(ctx context.Context, tx *gorm.DB, s *domain.AppSettings) error
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

func (r *repository) Get(ctx context.Context, tx *gorm.DB) (*domain.AppSettings, error) {
	var s domain.AppSettings
	err := r.conn(tx).WithContext(ctx).Where("is_active = ?", true).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, tx *gorm.DB, s *domain.AppSettings) error {
	return r.conn(tx).WithContext(ctx).Save(s).Error
}

func (r *repository) Create(ctx context.Context, tx *gorm.DB, s *domain.AppSettings) error {
	return r.conn(tx).WithContext(ctx).Create(s).Error
}
