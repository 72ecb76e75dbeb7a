package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	"moneyhive/internal/module/namehistory/domain"
	"moneyhive/internal/module/namehistory/repository"
)

// Service resolves a moneybox's name as of a given instant and
// records new entries on creation/rename.
type Service interface {
	Append(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID, name string) error
	NameAt(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID, at time.Time) (string, error)
}

type service struct {
	repo repository.Repository
	log  *zap.Logger
}

func New(repo repository.Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Append(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID, name string) error {
	h := &domain.NameHistory{ID: uuid.New(), MoneyboxID: moneyboxID, Name: name}
	if err := s.repo.Append(ctx, tx, h); err != nil {
		return apperr.Store(err)
	}
	return nil
}

func (s *service) NameAt(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID, at time.Time) (string, error) {
	h, err := s.repo.AtOrBefore(ctx, tx, moneyboxID, at)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperr.NameNotFound(moneyboxID)
		}
		return "", apperr.Store(err)
	}
	return h.Name, nil
}
