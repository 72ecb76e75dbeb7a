package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	"moneyhive/internal/module/moneybox/domain"
	translogdomain "moneyhive/internal/module/translog/domain"
)

// mover handles balance-changing operations (spec §4.2 Deposit/
// Withdraw/Transfer).
type mover struct {
	*moneyboxService
}

func (mv *mover) Deposit(ctx context.Context, id uuid.UUID, amount int64, description string, typ translogdomain.TransactionType, trigger translogdomain.TransactionTrigger) (*domain.Moneybox, error) {
	if amount <= 0 {
		return nil, apperr.NonPositiveAmount()
	}

	var result *domain.Moneybox
	err := mv.store.Tx(ctx, func(tx *gorm.DB) error {
		m, err := mv.repo.FindByID(ctx, tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("moneybox", id)
			}
			return apperr.Store(err)
		}
		if err := mv.deposit(ctx, tx, m, amount, nil, description, typ, trigger); err != nil {
			return err
		}
		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (mv *mover) Withdraw(ctx context.Context, id uuid.UUID, amount int64, description string, typ translogdomain.TransactionType, trigger translogdomain.TransactionTrigger) (*domain.Moneybox, error) {
	if amount <= 0 {
		return nil, apperr.NonPositiveAmount()
	}

	var result *domain.Moneybox
	err := mv.store.Tx(ctx, func(tx *gorm.DB) error {
		m, err := mv.repo.FindByID(ctx, tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("moneybox", id)
			}
			return apperr.Store(err)
		}
		if err := mv.withdraw(ctx, tx, m, amount, nil, description, typ, trigger); err != nil {
			return err
		}
		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (mv *mover) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount int64, description string, typ translogdomain.TransactionType, trigger translogdomain.TransactionTrigger) error {
	if fromID == toID {
		return apperr.TransferEqualMoneybox()
	}
	if amount <= 0 {
		return apperr.NonPositiveAmount()
	}

	return mv.store.Tx(ctx, func(tx *gorm.DB) error {
		from, err := mv.repo.FindByID(ctx, tx, fromID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("moneybox", fromID)
			}
			return apperr.Store(err)
		}
		to, err := mv.repo.FindByID(ctx, tx, toID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("moneybox", toID)
			}
			return apperr.Store(err)
		}

		if err := mv.withdraw(ctx, tx, from, amount, &toID, description, typ, trigger); err != nil {
			return err
		}
		if err := mv.deposit(ctx, tx, to, amount, &fromID, description, typ, trigger); err != nil {
			return err
		}

		mv.logger.Info("moneybox transfer",
			zap.String("from", fromID.String()),
			zap.String("to", toID.String()),
			zap.Int64("amount", amount),
		)
		return nil
	})
}

// deposit mutates m in place, persists it, and appends the signed
// transaction row with the post-operation balance.
func (mv *mover) deposit(ctx context.Context, tx *gorm.DB, m *domain.Moneybox, amount int64, counterparty *uuid.UUID, description string, typ translogdomain.TransactionType, trigger translogdomain.TransactionTrigger) error {
	m.Balance += amount
	if err := mv.repo.Update(ctx, tx, m); err != nil {
		return apperr.Store(err)
	}
	return mv.appendTransaction(ctx, tx, m, amount, counterparty, description, typ, trigger)
}

func (mv *mover) withdraw(ctx context.Context, tx *gorm.DB, m *domain.Moneybox, amount int64, counterparty *uuid.UUID, description string, typ translogdomain.TransactionType, trigger translogdomain.TransactionTrigger) error {
	if m.Balance-amount < 0 {
		return apperr.BalanceNegative()
	}
	m.Balance -= amount
	if err := mv.repo.Update(ctx, tx, m); err != nil {
		return apperr.Store(err)
	}
	return mv.appendTransaction(ctx, tx, m, -amount, counterparty, description, typ, trigger)
}

func (mv *mover) appendTransaction(ctx context.Context, tx *gorm.DB, m *domain.Moneybox, signedAmount int64, counterparty *uuid.UUID, description string, typ translogdomain.TransactionType, trigger translogdomain.TransactionTrigger) error {
	return mv.transLog.Append(ctx, tx, &translogdomain.Transaction{
		ID:                     uuid.New(),
		MoneyboxID:             m.ID,
		Amount:                 signedAmount,
		Balance:                m.Balance,
		CounterpartyMoneyboxID: counterparty,
		TransactionType:        typ,
		TransactionTrigger:     trigger,
		Description:            description,
	})
}
