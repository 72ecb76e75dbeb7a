package service

import (
	"context"

	"github.com/google/uuid"

	"moneyhive/internal/module/moneybox/domain"
	translogdomain "moneyhive/internal/module/translog/domain"
)

// Creator handles moneybox creation.
type Creator interface {
	Create(ctx context.Context, name string, savingsAmount int64, savingsTarget *int64) (*domain.Moneybox, error)
}

// Reader handles moneybox read operations.
type Reader interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Moneybox, error)
	ListActive(ctx context.Context) ([]domain.Moneybox, error)
	PriorityList(ctx context.Context) ([]domain.Moneybox, error)
}

// Updater handles moneybox field updates.
type Updater interface {
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Moneybox, error)
}

// Deleter handles moneybox soft-delete and priority re-packing.
type Deleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// Mover handles balance-changing operations.
type Mover interface {
	Deposit(ctx context.Context, id uuid.UUID, amount int64, description string, typ translogdomain.TransactionType, trigger translogdomain.TransactionTrigger) (*domain.Moneybox, error)
	Withdraw(ctx context.Context, id uuid.UUID, amount int64, description string, typ translogdomain.TransactionType, trigger translogdomain.TransactionTrigger) (*domain.Moneybox, error)
	Transfer(ctx context.Context, fromID, toID uuid.UUID, amount int64, description string, typ translogdomain.TransactionType, trigger translogdomain.TransactionTrigger) error
}

// Reorderer handles priority reordering.
type Reorderer interface {
	Reorder(ctx context.Context, newPriorities map[uuid.UUID]int) ([]domain.Moneybox, error)
}

// Service is the composite interface for all moneybox operations.
type Service interface {
	Creator
	Reader
	Updater
	Deleter
	Mover
	Reorderer
}

// UpdateInput is a sparse field set for Update; nil fields are left
// untouched.
type UpdateInput struct {
	Name          *string
	SavingsAmount *int64
	SavingsTarget **int64 // pointer-to-pointer so "set to null" is expressible
	Description   *string
}
