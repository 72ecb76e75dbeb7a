package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moneyhive/internal/module/user/domain"
)

// Repository is typed CRUD over the users table, grounded on the
// teacher's identify/user/repository.Repository shape, trimmed to the
// fields spec §3 actually names.
type Repository interface {
	Create(ctx context.Context, tx *gorm.DB, u *domain.User) error
	Update(ctx context.Context, tx *gorm.DB, u *domain.User) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error)
	FindByLogin(ctx context.Context, tx *gorm.DB, login string) (*domain.User, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]domain.User, error)
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

func (r *repository) Create(ctx context.Context, tx *gorm.DB, u *domain.User) error {
	return r.conn(tx).WithContext(ctx).Create(u).Error
}

func (r *repository) Update(ctx context.Context, tx *gorm.DB, u *domain.User) error {
	return r.conn(tx).WithContext(ctx).Save(u).Error
}

func (r *repository) SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Delete(&domain.User{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByLogin(ctx context.Context, tx *gorm.DB, login string) (*domain.User, error) {
	var u domain.User
	err := r.conn(tx).WithContext(ctx).Where("user_login = ?", login).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) ListActive(ctx context.Context, tx *gorm.DB) ([]domain.User, error) {
	var users []domain.User
	err := r.conn(tx).WithContext(ctx).Order("user_login ASC").Find(&users).Error
	return users, err
}
