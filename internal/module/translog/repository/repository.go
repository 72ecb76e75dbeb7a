package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moneyhive/internal/module/translog/domain"
)

// Repository is append-only access to the transaction log, plus
// per-box listing of the rows whose moneybox_id is that box (a
// transfer writes one such row for each side).
type Repository interface {
	Append(ctx context.Context, tx *gorm.DB, t *domain.Transaction) error
	ListForBox(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID) ([]domain.Transaction, error)
	// SumForBox returns the sum of signed amounts for the box, used by
	// the testable-property invariant "balance = sum of transactions".
	SumForBox(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID) (int64, error)
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

func (r *repository) Append(ctx context.Context, tx *gorm.DB, t *domain.Transaction) error {
	return r.conn(tx).WithContext(ctx).Create(t).Error
}

func (r *repository) ListForBox(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID) ([]domain.Transaction, error) {
	var rows []domain.Transaction
	err := r.conn(tx).WithContext(ctx).
		Where("moneybox_id = ?", moneyboxID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SumForBox(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID) (int64, error) {
	var sum *int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("moneybox_id = ?", moneyboxID).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
