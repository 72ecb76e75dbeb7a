package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moneyhive/internal/database"
	actionlogrepo "moneyhive/internal/module/actionlog/repository"
	actionlogservice "moneyhive/internal/module/actionlog/service"
	distributionservice "moneyhive/internal/module/distribution/service"
	moneyboxdomain "moneyhive/internal/module/moneybox/domain"
	moneyboxrepo "moneyhive/internal/module/moneybox/repository"
	namehistoryrepo "moneyhive/internal/module/namehistory/repository"
	namehistoryservice "moneyhive/internal/module/namehistory/service"
	settingsdomain "moneyhive/internal/module/settings/domain"
	settingsrepo "moneyhive/internal/module/settings/repository"
	settingsservice "moneyhive/internal/module/settings/service"
	translogrepo "moneyhive/internal/module/translog/repository"
	translogservice "moneyhive/internal/module/translog/service"
	"moneyhive/internal/store"

	"github.com/google/uuid"
)

type harness struct {
	scheduler *Scheduler
	settings  settingsservice.Service
	boxes     moneyboxrepo.Repository
}

func newHarness(t *testing.T) harness {
	t.Helper()
	st, err := store.NewTest()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(st.DB, zap.NewNop()))

	boxes := moneyboxrepo.New(st.DB)
	nameHistory := namehistoryservice.New(namehistoryrepo.New(st.DB), zap.NewNop())
	transLog := translogservice.New(translogrepo.New(st.DB), boxes, nameHistory, zap.NewNop())
	actionLog := actionlogservice.New(actionlogrepo.New(st.DB))
	settingsRepo := settingsrepo.New(st.DB)
	settings := settingsservice.New(st, settingsRepo, actionLog, nil, zap.NewNop())
	distribution := distributionservice.New(st, boxes, transLog, actionLog, zap.NewNop())

	require.NoError(t, settingsRepo.Create(context.Background(), nil, &settingsdomain.AppSettings{
		ID:       uuid.New(),
		IsActive: true,
	}))

	sched := New(settings, distribution, actionLog, nil, zap.NewNop(), time.UTC, time.Hour)

	return harness{scheduler: sched, settings: settings, boxes: boxes}
}

// matchingTriggerDay returns the trigger day that matches "now", if
// any. Only the 1st, the 15th and the last day of a month match; on
// every other day ok is false and the positive-path test is skipped.
func matchingTriggerDay(now time.Time) (settingsdomain.TriggerDay, bool) {
	for _, d := range []settingsdomain.TriggerDay{
		settingsdomain.TriggerFirstOfMonth,
		settingsdomain.TriggerMiddleOfMonth,
		settingsdomain.TriggerLastOfMonth,
	} {
		if d.Matches(now) {
			return d, true
		}
	}
	return "", false
}

func seedOverflowAndBox(t *testing.T, h harness, savingsAmount int64) {
	t.Helper()
	ctx := context.Background()
	overflowPriority := moneyboxdomain.OverflowPriority
	require.NoError(t, h.boxes.Create(ctx, nil, &moneyboxdomain.Moneybox{
		ID: uuid.New(), Name: "Overflow Moneybox", Priority: &overflowPriority, IsActive: true,
	}))
	priority := 1
	require.NoError(t, h.boxes.Create(ctx, nil, &moneyboxdomain.Moneybox{
		ID: uuid.New(), Name: "Savings", Priority: &priority, SavingsAmount: savingsAmount, IsActive: true,
	}))
}

func TestTick_InactiveSettings_NoOp(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.settings.Update(ctx, settingsservice.UpdateInput{})
	require.NoError(t, err)

	applied, err := h.scheduler.Tick(ctx)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestTick_AppliesOnceThenSkipsSameDay(t *testing.T) {
	now := time.Now().UTC()
	trigger, ok := matchingTriggerDay(now)
	if !ok {
		t.Skip("no trigger day matches today; skipping deterministic positive-path test")
	}

	h := newHarness(t)
	ctx := context.Background()
	seedOverflowAndBox(t, h, 50)

	active := true
	amount := int64(100)
	_, err := h.settings.Update(ctx, settingsservice.UpdateInput{
		IsAutomatedSavingActive:   &active,
		SavingsAmount:             &amount,
		AutomatedSavingTriggerDay: &trigger,
	})
	require.NoError(t, err)

	applied, err := h.scheduler.Tick(ctx)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = h.scheduler.Tick(ctx)
	require.NoError(t, err)
	assert.False(t, applied, "a second tick the same day must not re-apply")
}
