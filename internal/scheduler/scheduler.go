// Package scheduler runs the single cooperative automated-savings task
// of spec §4.6: a cron wake ticker that checks settings, trigger-day
// match, and same-day idempotence before invoking the distribution
// engine. Grounded on the teacher's
// notification/service/scheduler_service.go (robfig/cron/v3 wake) and
// identify/broker/worker/sync_worker.go (explicit Start/Stop with a
// stop channel).
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"moneyhive/internal/apperr"
	actionlogdomain "moneyhive/internal/module/actionlog/domain"
	actionlogservice "moneyhive/internal/module/actionlog/service"
	distributionservice "moneyhive/internal/module/distribution/service"
	settingsservice "moneyhive/internal/module/settings/service"
)

// Reporter notifies a collaborator after a distribution cycle
// succeeds. A nil Reporter is valid: the scheduler simply skips
// notification (mirrors the mailer collaborator's optionality in
// spec §6 — "reports 'not ready' when any SMTP field is empty").
type Reporter interface {
	ReportAutomatedSaving(ctx context.Context, recipient string) error
}

// Scheduler is the single cooperative automated-savings task.
type Scheduler struct {
	settings     settingsservice.Service
	distribution distributionservice.Service
	actionLog    actionlogservice.Service
	reporter     Reporter
	log          *zap.Logger
	loc          *time.Location

	checkInterval time.Duration
	cron          *cron.Cron
}

func New(
	settings settingsservice.Service,
	distribution distributionservice.Service,
	actionLog actionlogservice.Service,
	reporter Reporter,
	log *zap.Logger,
	loc *time.Location,
	checkInterval time.Duration,
) *Scheduler {
	if checkInterval <= 0 {
		checkInterval = time.Hour
	}
	return &Scheduler{
		settings:      settings,
		distribution:  distribution,
		actionLog:     actionLog,
		reporter:      reporter,
		log:           log.Named("scheduler"),
		loc:           loc,
		checkInterval: checkInterval,
	}
}

// Start schedules the wake job. It does not block; the cron runs its
// own goroutine.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New()
	spec := "@every " + s.checkInterval.String()
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.Tick(context.Background()); err != nil {
			s.log.Error("automated savings tick failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("scheduler started", zap.Duration("check_interval", s.checkInterval), zap.String("timezone", s.loc.String()))
	return nil
}

// Stop halts the cron job, waiting for any in-flight tick to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	s.log.Info("scheduler stopped")
	return nil
}

// Tick runs the §4.6 five-step state machine once. It is exported so
// callers and tests can invoke it directly without waiting on cron.
func (s *Scheduler) Tick(ctx context.Context) (bool, error) {
	now := time.Now().In(s.loc)

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return false, apperr.AutomatedSavings("read_settings", err)
	}
	if !cfg.IsAutomatedSavingActive {
		return false, nil
	}
	if !cfg.AutomatedSavingTriggerDay.Matches(now) {
		return false, nil
	}

	last, err := s.actionLog.MostRecentByAction(ctx, nil, actionlogdomain.ActionAppliedAutomatedSaving)
	if err != nil {
		return false, apperr.AutomatedSavings("read_last_cycle", err)
	}
	if last != nil && sameCalendarDay(last.ActionAt.In(s.loc), now) {
		s.log.Debug("automated savings already applied today, skipping")
		return false, nil
	}

	if _, err := s.distribution.RunCycle(ctx, cfg.SavingsAmount, cfg.OverflowMoneyboxAutomatedSavingsMode); err != nil {
		return false, err
	}

	if cfg.SendReportsViaEmail && s.reporter != nil && cfg.UserEmailAddress != nil {
		if err := s.reporter.ReportAutomatedSaving(ctx, *cfg.UserEmailAddress); err != nil {
			s.log.Warn("failed to send automated savings report email", zap.Error(err))
		}
	}

	s.log.Info("automated savings applied", zap.Time("at", now))
	return true, nil
}

func sameCalendarDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
