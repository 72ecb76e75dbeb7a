package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	"moneyhive/internal/module/actionlog/domain"
	"moneyhive/internal/module/actionlog/repository"
)

// Service appends action-log rows with a JSON-marshalled details
// snapshot and answers the scheduler's "did a cycle already run
// today" question.
type Service interface {
	Append(ctx context.Context, tx *gorm.DB, action domain.Action, details any) error
	MostRecentByAction(ctx context.Context, tx *gorm.DB, action domain.Action) (*domain.ActionLog, error)
}

type service struct {
	repo repository.Repository
}

func New(repo repository.Repository) Service {
	return &service{repo: repo}
}

func (s *service) Append(ctx context.Context, tx *gorm.DB, action domain.Action, details any) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return apperr.Validation("action log details not serializable").WithDetails("cause", err.Error())
	}
	row := &domain.ActionLog{ID: uuid.New(), Action: action, Details: datatypes.JSON(raw)}
	if err := s.repo.Append(ctx, tx, row); err != nil {
		return apperr.Store(err)
	}
	return nil
}

func (s *service) MostRecentByAction(ctx context.Context, tx *gorm.DB, action domain.Action) (*domain.ActionLog, error) {
	row, err := s.repo.MostRecentByAction(ctx, tx, action)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, apperr.Store(err)
	}
	return row, nil
}
