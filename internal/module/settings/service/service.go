// Package service implements the app-settings operations of spec §4.5:
// a single active row, sparse update, and side-effect ActionLog rows
// on is_automated_saving_active / savings_amount changes, with an
// optional redis read cache in front of the row (grounded on the
// teacher's RedisConfig/internal/config/redis.go collaborator).
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneyhive/internal/apperr"
	actionlogdomain "moneyhive/internal/module/actionlog/domain"
	actionlogservice "moneyhive/internal/module/actionlog/service"
	"moneyhive/internal/module/settings/domain"
	"moneyhive/internal/module/settings/repository"
	"moneyhive/internal/store"
)

const cacheKey = "moneyhive:settings"
const cacheTTL = 5 * time.Minute

// UpdateInput is a sparse field set; nil fields are left untouched.
type UpdateInput struct {
	IsAutomatedSavingActive              *bool
	SavingsAmount                        *int64
	OverflowMoneyboxAutomatedSavingsMode *domain.OverflowMode
	SendReportsViaEmail                  *bool
	UserEmailAddress                     *string
	AutomatedSavingTriggerDay            *domain.TriggerDay
}

type Service interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
	Update(ctx context.Context, in UpdateInput) (*domain.AppSettings, error)
	// InvalidateCache drops the cached settings row; Update calls it
	// after every successful settings write.
	InvalidateCache(ctx context.Context)
}

type service struct {
	store     *store.Store
	repo      repository.Repository
	actionLog actionlogservice.Service
	cache     *redis.Client
	log       *zap.Logger
}

func New(st *store.Store, repo repository.Repository, actionLog actionlogservice.Service, cache *redis.Client, log *zap.Logger) Service {
	return &service{store: st, repo: repo, actionLog: actionLog, cache: cache, log: log}
}

func (s *service) Get(ctx context.Context) (*domain.AppSettings, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached domain.AppSettings
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				return &cached, nil
			}
		}
	}

	row, err := s.repo.Get(ctx, s.store.DB)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.InconsistentDatabase("no active app settings row")
		}
		return nil, apperr.Store(err)
	}

	s.writeCache(ctx, row)
	return row, nil
}

func (s *service) Update(ctx context.Context, in UpdateInput) (*domain.AppSettings, error) {
	var updated *domain.AppSettings

	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		row, err := s.repo.Get(ctx, tx)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.InconsistentDatabase("no active app settings row")
			}
			return apperr.Store(err)
		}

		var activationChanged, amountChanged bool
		if in.IsAutomatedSavingActive != nil && *in.IsAutomatedSavingActive != row.IsAutomatedSavingActive {
			activationChanged = true
			row.IsAutomatedSavingActive = *in.IsAutomatedSavingActive
		}
		if in.SavingsAmount != nil {
			if *in.SavingsAmount < 0 {
				return apperr.Validation("savings_amount must be >= 0")
			}
			if *in.SavingsAmount != row.SavingsAmount {
				amountChanged = true
			}
			row.SavingsAmount = *in.SavingsAmount
		}
		if in.OverflowMoneyboxAutomatedSavingsMode != nil {
			if !in.OverflowMoneyboxAutomatedSavingsMode.IsValid() {
				return apperr.Validation("invalid overflow_moneybox_automated_savings_mode")
			}
			row.OverflowMoneyboxAutomatedSavingsMode = *in.OverflowMoneyboxAutomatedSavingsMode
		}
		if in.SendReportsViaEmail != nil {
			row.SendReportsViaEmail = *in.SendReportsViaEmail
		}
		if in.UserEmailAddress != nil {
			row.UserEmailAddress = in.UserEmailAddress
		}
		if row.SendReportsViaEmail && (row.UserEmailAddress == nil || *row.UserEmailAddress == "") {
			return apperr.Validation("send_reports_via_email requires a non-null user_email_address")
		}
		if in.AutomatedSavingTriggerDay != nil {
			if !in.AutomatedSavingTriggerDay.IsValid() {
				return apperr.Validation("invalid automated_saving_trigger_day")
			}
			row.AutomatedSavingTriggerDay = *in.AutomatedSavingTriggerDay
		}

		if err := s.repo.Update(ctx, tx, row); err != nil {
			return apperr.Store(err)
		}

		if activationChanged {
			action := actionlogdomain.ActionDeactivatedAutomatedSaving
			if row.IsAutomatedSavingActive {
				action = actionlogdomain.ActionActivatedAutomatedSaving
			}
			if err := s.actionLog.Append(ctx, tx, action, map[string]any{"savings_amount": row.SavingsAmount}); err != nil {
				return err
			}
		}
		if amountChanged {
			if err := s.actionLog.Append(ctx, tx, actionlogdomain.ActionChangedAutomatedSavingsAmount, map[string]any{"savings_amount": row.SavingsAmount}); err != nil {
				return err
			}
		}

		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateCache(ctx)
	return updated, nil
}

func (s *service) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
		s.log.Warn("settings cache invalidation failed", zap.Error(err))
	}
}

func (s *service) writeCache(ctx context.Context, row *domain.AppSettings) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
		s.log.Warn("settings cache write failed", zap.Error(err))
	}
}
