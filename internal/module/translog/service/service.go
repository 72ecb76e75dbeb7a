package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	moneyboxdomain "moneyhive/internal/module/moneybox/domain"
	moneyboxrepo "moneyhive/internal/module/moneybox/repository"
	namehistoryservice "moneyhive/internal/module/namehistory/service"
	"moneyhive/internal/module/translog/domain"
	"moneyhive/internal/module/translog/repository"
)

// Service appends transaction rows and lists them enriched with the
// counterparty name resolved as of each row's created_at (spec §4.4).
type Service interface {
	Append(ctx context.Context, tx *gorm.DB, t *domain.Transaction) error
	ListForBox(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID) ([]domain.WithName, error)
}

type service struct {
	repo        repository.Repository
	moneyboxes  moneyboxrepo.Repository
	nameHistory namehistoryservice.Service
	log         *zap.Logger
}

func New(repo repository.Repository, moneyboxes moneyboxrepo.Repository, nameHistory namehistoryservice.Service, log *zap.Logger) Service {
	return &service{repo: repo, moneyboxes: moneyboxes, nameHistory: nameHistory, log: log}
}

func (s *service) Append(ctx context.Context, tx *gorm.DB, t *domain.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if err := s.repo.Append(ctx, tx, t); err != nil {
		return apperr.Store(err)
	}
	return nil
}

func (s *service) ListForBox(ctx context.Context, tx *gorm.DB, moneyboxID uuid.UUID) ([]domain.WithName, error) {
	rows, err := s.repo.ListForBox(ctx, tx, moneyboxID)
	if err != nil {
		return nil, apperr.Store(err)
	}

	out := make([]domain.WithName, 0, len(rows))
	for _, row := range rows {
		enriched := domain.WithName{Transaction: row}
		if row.CounterpartyMoneyboxID != nil {
			name, err := s.resolveCounterpartyName(ctx, tx, *row.CounterpartyMoneyboxID, row)
			if err != nil {
				return nil, err
			}
			enriched.CounterpartyMoneyboxName = &name
		}
		out = append(out, enriched)
	}
	return out, nil
}

func (s *service) resolveCounterpartyName(ctx context.Context, tx *gorm.DB, counterpartyID uuid.UUID, row domain.Transaction) (string, error) {
	counterparty, err := s.moneyboxes.FindByIDIncludeInactive(ctx, tx, counterpartyID)
	if err != nil {
		return "", apperr.Store(err)
	}
	if counterparty.Priority != nil && *counterparty.Priority == moneyboxdomain.OverflowPriority {
		return counterparty.Name, nil
	}
	return s.nameHistory.NameAt(ctx, tx, counterpartyID, row.CreatedAt)
}
