package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	"moneyhive/internal/module/moneybox/domain"
)

// creator handles moneybox creation (spec §4.2 Create).
type creator struct {
	*moneyboxService
}

func (c *creator) Create(ctx context.Context, name string, savingsAmount int64, savingsTarget *int64) (*domain.Moneybox, error) {
	trimmed, ok := domain.NormalizeName(name)
	if !ok {
		return nil, apperr.Validation("name must be non-empty after trimming")
	}
	if savingsAmount < 0 {
		return nil, apperr.Validation("savings_amount must be >= 0")
	}
	if savingsTarget != nil && *savingsTarget < 0 {
		return nil, apperr.Validation("savings_target must be >= 0 when set")
	}

	var created *domain.Moneybox
	err := c.store.Tx(ctx, func(tx *gorm.DB) error {
		if existing, err := c.repo.FindByName(ctx, tx, trimmed); err == nil && existing != nil {
			return apperr.NameConflict(trimmed)
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return apperr.Store(err)
		}

		maxPriority, err := c.repo.MaxNonOverflowPriority(ctx, tx)
		if err != nil {
			return apperr.Store(err)
		}
		priority := maxPriority + 1

		m := &domain.Moneybox{
			ID:            uuid.New(),
			Name:          trimmed,
			SavingsAmount: savingsAmount,
			SavingsTarget: savingsTarget,
			Priority:      &priority,
			IsActive:      true,
		}
		if err := c.repo.Create(ctx, tx, m); err != nil {
			return apperr.Store(err)
		}
		if err := c.nameHistory.Append(ctx, tx, m.ID, trimmed); err != nil {
			return err
		}

		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("moneybox created",
		zap.String("id", created.ID.String()),
		zap.String("name", created.Name),
		zap.Int("priority", *created.Priority),
	)
	return created, nil
}
