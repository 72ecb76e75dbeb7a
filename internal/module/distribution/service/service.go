// Package service wraps the pure distribution engine with the single
// transactional commit and the APPLIED_AUTOMATED_SAVING action-log
// entry spec §4.3 requires, grounded on the teacher's
// analytics/budget_allocation/service.Service shape (a thin service
// around a pure Model.Execute).
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	actionlogdomain "moneyhive/internal/module/actionlog/domain"
	actionlogservice "moneyhive/internal/module/actionlog/service"
	engine "moneyhive/internal/module/distribution/domain"
	moneyboxdomain "moneyhive/internal/module/moneybox/domain"
	moneyboxrepo "moneyhive/internal/module/moneybox/repository"
	settingsdomain "moneyhive/internal/module/settings/domain"
	translogdomain "moneyhive/internal/module/translog/domain"
	translogservice "moneyhive/internal/module/translog/service"
	"moneyhive/internal/store"
)

type Service interface {
	// RunCycle reads the current active moneyboxes, applies one
	// distribution cycle for the given budget and mode, commits it in
	// a single transaction, and appends the action-log row.
	RunCycle(ctx context.Context, budget int64, mode settingsdomain.OverflowMode) (engine.Plan, error)
	// PredictMonthsToTarget simulates forward without mutating state.
	PredictMonthsToTarget(ctx context.Context, budget int64, mode settingsdomain.OverflowMode) (map[uuid.UUID]int, error)
}

type service struct {
	store      *store.Store
	moneyboxes moneyboxrepo.Repository
	transLog   translogservice.Service
	actionLog  actionlogservice.Service
	log        *zap.Logger
}

func New(st *store.Store, moneyboxes moneyboxrepo.Repository, transLog translogservice.Service, actionLog actionlogservice.Service, log *zap.Logger) Service {
	return &service{store: st, moneyboxes: moneyboxes, transLog: transLog, actionLog: actionLog, log: log}
}

func toEngineMode(mode settingsdomain.OverflowMode) engine.Mode {
	switch mode {
	case settingsdomain.ModeAdd:
		return engine.ModeAdd
	case settingsdomain.ModeFill:
		return engine.ModeFill
	case settingsdomain.ModeRatio:
		return engine.ModeRatio
	default:
		return engine.ModeCollect
	}
}

func (s *service) snapshot(ctx context.Context, tx *gorm.DB) ([]moneyboxdomain.Moneybox, []engine.Box, error) {
	all, err := s.moneyboxes.ListActive(ctx, tx)
	if err != nil {
		return nil, nil, apperr.Store(err)
	}
	if len(all) == 0 || all[0].Priority == nil || *all[0].Priority != moneyboxdomain.OverflowPriority {
		return nil, nil, apperr.InconsistentDatabase("no overflow moneybox at the head of the active list")
	}

	boxes := make([]engine.Box, len(all))
	for i, m := range all {
		boxes[i] = engine.Box{ID: m.ID, SavingsAmount: m.SavingsAmount, SavingsTarget: m.SavingsTarget, Balance: m.Balance}
	}
	return all, boxes, nil
}

func (s *service) RunCycle(ctx context.Context, budget int64, mode settingsdomain.OverflowMode) (engine.Plan, error) {
	var plan engine.Plan

	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		all, boxes, err := s.snapshot(ctx, tx)
		if err != nil {
			return err
		}

		plan = engine.Distribute(boxes, budget, toEngineMode(mode))

		byID := make(map[uuid.UUID]*moneyboxdomain.Moneybox, len(all))
		for i := range all {
			byID[all[i].ID] = &all[i]
		}

		for id, delta := range plan {
			m, ok := byID[id]
			if !ok {
				return apperr.InconsistentDatabase("distribution plan referenced an unknown moneybox").WithDetails("moneybox_id", id)
			}
			m.Balance += delta
			if err := s.moneyboxes.Update(ctx, tx, m); err != nil {
				return apperr.Store(err)
			}

			trigger := translogdomain.TriggerAutomatically
			txRow := &translogdomain.Transaction{
				ID:                 uuid.New(),
				MoneyboxID:         id,
				Amount:             delta,
				Balance:            m.Balance,
				TransactionType:    translogdomain.TransactionTypeDistribution,
				TransactionTrigger: trigger,
				Description:        "automated savings distribution",
			}
			if err := s.transLog.Append(ctx, tx, txRow); err != nil {
				return err
			}
		}

		return s.actionLog.Append(ctx, tx, actionlogdomain.ActionAppliedAutomatedSaving, map[string]any{
			"budget": budget,
			"mode":   mode,
			"plan":   plan,
		})
	})
	if err != nil {
		return nil, apperr.AutomatedSavings("run_cycle", err)
	}

	s.log.Info("automated savings cycle applied", zap.Int64("budget", budget), zap.String("mode", string(mode)))
	return plan, nil
}

func (s *service) PredictMonthsToTarget(ctx context.Context, budget int64, mode settingsdomain.OverflowMode) (map[uuid.UUID]int, error) {
	_, boxes, err := s.snapshot(ctx, s.store.DB)
	if err != nil {
		return nil, err
	}
	return engine.Predict(boxes, budget, toEngineMode(mode)), nil
}
