package service

import (
	"context"

	"github.com/google/uuid"

	"moneyhive/internal/apperr"
	"moneyhive/internal/module/moneybox/domain"
)

// reader handles moneybox read operations (spec §4.2 List/Priority list).
type reader struct {
	*moneyboxService
}

func (r *reader) Get(ctx context.Context, id uuid.UUID) (*domain.Moneybox, error) {
	m, err := r.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, apperr.NotFound("moneybox", id)
	}
	return m, nil
}

// ListActive returns all active moneyboxes ascending by priority,
// overflow (priority 0) first.
func (r *reader) ListActive(ctx context.Context) ([]domain.Moneybox, error) {
	boxes, err := r.repo.ListActive(ctx, nil)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return boxes, nil
}

// PriorityList returns the subset with priority >= 1, ascending, and
// raises InconsistentDatabase if any active non-overflow box has a
// null priority (spec §4.2).
func (r *reader) PriorityList(ctx context.Context) ([]domain.Moneybox, error) {
	all, err := r.repo.ListActive(ctx, nil)
	if err != nil {
		return nil, apperr.Store(err)
	}

	list := make([]domain.Moneybox, 0, len(all))
	for _, m := range all {
		if m.Priority == nil {
			return nil, apperr.InconsistentDatabase("active moneybox has a null priority").WithDetails("moneybox_id", m.ID)
		}
		if *m.Priority == domain.OverflowPriority {
			continue
		}
		list = append(list, m)
	}
	return list, nil
}
