package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	"moneyhive/internal/module/moneybox/domain"
)

// updater handles field updates (spec §4.2 Update). Forbids touching
// the overflow moneybox; a name change appends a history row.
type updater struct {
	*moneyboxService
}

func (u *updater) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Moneybox, error) {
	var updated *domain.Moneybox

	err := u.store.Tx(ctx, func(tx *gorm.DB) error {
		m, err := u.repo.FindByID(ctx, tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("moneybox", id)
			}
			return apperr.Store(err)
		}
		if m.IsOverflow() {
			return apperr.OverflowNotModifiable()
		}

		renamed := false
		var newName string
		if in.Name != nil {
			trimmed, ok := domain.NormalizeName(*in.Name)
			if !ok {
				return apperr.Validation("name must be non-empty after trimming")
			}
			if trimmed != m.Name {
				if existing, err := u.repo.FindByName(ctx, tx, trimmed); err == nil && existing != nil && existing.ID != m.ID {
					return apperr.NameConflict(trimmed)
				} else if err != nil && err != gorm.ErrRecordNotFound {
					return apperr.Store(err)
				}
				renamed = true
				newName = trimmed
				m.Name = trimmed
			}
		}
		if in.SavingsAmount != nil {
			if *in.SavingsAmount < 0 {
				return apperr.Validation("savings_amount must be >= 0")
			}
			m.SavingsAmount = *in.SavingsAmount
		}
		if in.SavingsTarget != nil {
			target := *in.SavingsTarget
			if target != nil && *target < 0 {
				return apperr.Validation("savings_target must be >= 0 when set")
			}
			m.SavingsTarget = target
		}
		if in.Description != nil {
			m.Description = *in.Description
		}

		if err := u.repo.Update(ctx, tx, m); err != nil {
			return apperr.Store(err)
		}
		if renamed {
			if err := u.nameHistory.Append(ctx, tx, m.ID, newName); err != nil {
				return err
			}
		}

		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
