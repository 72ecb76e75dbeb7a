package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moneyhive/internal/module/moneybox/domain"
)

// Repository is typed CRUD over the moneybox table, grounded on the
// teacher's goal/repository.Repository interface shape.
type Repository interface {
	Create(ctx context.Context, tx *gorm.DB, m *domain.Moneybox) error
	Update(ctx context.Context, tx *gorm.DB, m *domain.Moneybox) error

	FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Moneybox, error)
	FindByIDIncludeInactive(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Moneybox, error)
	FindByName(ctx context.Context, tx *gorm.DB, name string) (*domain.Moneybox, error)
	FindOverflow(ctx context.Context, tx *gorm.DB) (*domain.Moneybox, error)

	// ListActive returns all active boxes ascending by priority
	// (overflow, priority 0, first).
	ListActive(ctx context.Context, tx *gorm.DB) ([]domain.Moneybox, error)
	// ListActiveNonOverflow returns active boxes with priority >= 1,
	// ascending.
	ListActiveNonOverflow(ctx context.Context, tx *gorm.DB) ([]domain.Moneybox, error)

	MaxNonOverflowPriority(ctx context.Context, tx *gorm.DB) (int, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a moneybox repository bound to the default connection;
// callers pass an explicit tx to every method for transactional
// operations, falling back to this db when tx is nil.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *repository) Create(ctx context.Context, tx *gorm.DB, m *domain.Moneybox) error {
	return r.conn(tx).WithContext(ctx).Create(m).Error
}

func (r *repository) Update(ctx context.Context, tx *gorm.DB, m *domain.Moneybox) error {
	return r.conn(tx).WithContext(ctx).Save(m).Error
}

func (r *repository) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Moneybox, error) {
	var m domain.Moneybox
	err := r.conn(tx).WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindByIDIncludeInactive(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Moneybox, error) {
	var m domain.Moneybox
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindByName(ctx context.Context, tx *gorm.DB, name string) (*domain.Moneybox, error) {
	var m domain.Moneybox
	err := r.conn(tx).WithContext(ctx).Where("name = ? AND is_active = ?", name, true).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindOverflow(ctx context.Context, tx *gorm.DB) (*domain.Moneybox, error) {
	var m domain.Moneybox
	err := r.conn(tx).WithContext(ctx).
		Where("is_active = ? AND priority = ?", true, domain.OverflowPriority).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListActive(ctx context.Context, tx *gorm.DB) ([]domain.Moneybox, error) {
	var boxes []domain.Moneybox
	err := r.conn(tx).WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority ASC").
		Find(&boxes).Error
	return boxes, err
}

func (r *repository) ListActiveNonOverflow(ctx context.Context, tx *gorm.DB) ([]domain.Moneybox, error) {
	var boxes []domain.Moneybox
	err := r.conn(tx).WithContext(ctx).
		Where("is_active = ? AND priority >= ?", true, 1).
		Order("priority ASC").
		Find(&boxes).Error
	return boxes, err
}

func (r *repository) MaxNonOverflowPriority(ctx context.Context, tx *gorm.DB) (int, error) {
	var max *int
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.Moneybox{}).
		Where("is_active = ? AND priority >= ?", true, 1).
		Select("MAX(priority)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
