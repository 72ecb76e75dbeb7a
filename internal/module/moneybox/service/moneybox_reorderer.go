package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	"moneyhive/internal/module/moneybox/domain"
)

// reorderer handles priority reordering (spec §4.2 Reorder priorities):
// a two-phase update within one transaction — clear every affected
// priority, flush, then assign the new priorities — to avoid
// violating the partial-unique constraint mid-update.
type reorderer struct {
	*moneyboxService
}

func (ro *reorderer) Reorder(ctx context.Context, newPriorities map[uuid.UUID]int) ([]domain.Moneybox, error) {
	seen := make(map[uuid.UUID]bool, len(newPriorities))
	for id, priority := range newPriorities {
		if seen[id] {
			return nil, apperr.Validation("duplicate moneybox id in reorder list").WithDetails("id", id)
		}
		seen[id] = true
		if priority == domain.OverflowPriority {
			return nil, apperr.Validation("priority 0 is reserved for the overflow moneybox")
		}
	}

	var result []domain.Moneybox
	err := ro.store.Tx(ctx, func(tx *gorm.DB) error {
		overflow, err := ro.repo.FindOverflow(ctx, tx)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.InconsistentDatabase("no active overflow moneybox")
			}
			return apperr.Store(err)
		}
		if _, ok := newPriorities[overflow.ID]; ok {
			return apperr.OverflowNotModifiable()
		}

		active, err := ro.repo.ListActiveNonOverflow(ctx, tx)
		if err != nil {
			return apperr.Store(err)
		}
		byID := make(map[uuid.UUID]*domain.Moneybox, len(active))
		for i := range active {
			byID[active[i].ID] = &active[i]
		}

		affected := make([]*domain.Moneybox, 0, len(newPriorities))
		for id := range newPriorities {
			m, ok := byID[id]
			if !ok {
				return apperr.Validation("moneybox id not in the active set").WithDetails("id", id)
			}
			affected = append(affected, m)
		}

		// Phase 1: clear every affected priority.
		for _, m := range affected {
			m.Priority = nil
			if err := ro.repo.Update(ctx, tx, m); err != nil {
				return apperr.Store(err)
			}
		}
		// Phase 2: assign the new priorities.
		for _, m := range affected {
			priority := newPriorities[m.ID]
			m.Priority = &priority
			if err := ro.repo.Update(ctx, tx, m); err != nil {
				return apperr.Store(err)
			}
		}

		var listErr error
		result, listErr = ro.repo.ListActiveNonOverflow(ctx, tx)
		if listErr != nil {
			return apperr.Store(listErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
