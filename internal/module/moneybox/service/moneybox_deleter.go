package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	"moneyhive/internal/module/moneybox/domain"
)

// deleter handles soft delete with priority re-packing (spec §4.2
// Delete). The affected priorities are cleared to null before the
// re-pack assigns the dense 1..N-1 sequence, the same two-phase shape
// the reorder operation uses to avoid violating the partial-unique
// index mid-update.
type deleter struct {
	*moneyboxService
}

func (d *deleter) Delete(ctx context.Context, id uuid.UUID) error {
	return d.store.Tx(ctx, func(tx *gorm.DB) error {
		m, err := d.repo.FindByID(ctx, tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("moneybox", id)
			}
			return apperr.Store(err)
		}
		if m.IsOverflow() {
			return apperr.OverflowNotDeletable()
		}
		if m.Balance != 0 {
			return apperr.HasBalance()
		}

		remaining, err := d.repo.ListActiveNonOverflow(ctx, tx)
		if err != nil {
			return apperr.Store(err)
		}

		ordered := make([]domain.Moneybox, 0, len(remaining)-1)
		for _, box := range remaining {
			if box.ID != m.ID {
				ordered = append(ordered, box)
			}
		}

		m.IsActive = false
		m.Priority = nil
		if err := d.repo.Update(ctx, tx, m); err != nil {
			return apperr.Store(err)
		}

		// Phase 1: clear every affected priority so the re-pack cannot
		// collide with the partial-unique index mid-update.
		for i := range ordered {
			ordered[i].Priority = nil
			if err := d.repo.Update(ctx, tx, &ordered[i]); err != nil {
				return apperr.Store(err)
			}
		}
		// Phase 2: assign the dense 1..N-1 sequence, preserving order.
		for i := range ordered {
			priority := i + 1
			ordered[i].Priority = &priority
			if err := d.repo.Update(ctx, tx, &ordered[i]); err != nil {
				return apperr.Store(err)
			}
		}

		return nil
	})
}
