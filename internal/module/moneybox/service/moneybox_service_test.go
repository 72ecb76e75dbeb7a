package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moneyhive/internal/apperr"
	"moneyhive/internal/database"
	moneyboxdomain "moneyhive/internal/module/moneybox/domain"
	moneyboxrepo "moneyhive/internal/module/moneybox/repository"
	namehistoryrepo "moneyhive/internal/module/namehistory/repository"
	namehistoryservice "moneyhive/internal/module/namehistory/service"
	translogdomain "moneyhive/internal/module/translog/domain"
	translogrepo "moneyhive/internal/module/translog/repository"
	translogservice "moneyhive/internal/module/translog/service"
	"moneyhive/internal/store"
)

// newTestService wires the composite service against an in-memory
// sqlite store with real collaborators, the same collaborator graph
// internal/fx wires in production.
func newTestService(t *testing.T) Service {
	t.Helper()
	st, err := store.NewTest()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(st.DB, zap.NewNop()))

	boxRepo := moneyboxrepo.New(st.DB)
	nameHistory := namehistoryservice.New(namehistoryrepo.New(st.DB), zap.NewNop())
	transLog := translogservice.New(translogrepo.New(st.DB), boxRepo, nameHistory, zap.NewNop())

	return New(st, boxRepo, nameHistory, transLog, zap.NewNop())
}

func TestCreate_AssignsNextPriority(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "Vacation", 100, nil)
	require.NoError(t, err)
	require.NotNil(t, first.Priority)
	assert.Equal(t, 1, *first.Priority)

	second, err := svc.Create(ctx, "Car", 200, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, *second.Priority)
}

func TestCreate_RejectsBlankName(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), "   ", 0, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, err.(*apperr.Error).Kind)
}

func TestCreate_RejectsDuplicateName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Vacation", 0, nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Vacation", 0, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNameConflict, err.(*apperr.Error).Kind)
}

func TestDeposit_WithdrawAndTransfer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "A", 0, nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "B", 0, nil)
	require.NoError(t, err)

	a, err = svc.Deposit(ctx, a.ID, 500, "initial", translogdomain.TransactionTypeDirect, translogdomain.TriggerManually)
	require.NoError(t, err)
	assert.EqualValues(t, 500, a.Balance)

	a, err = svc.Withdraw(ctx, a.ID, 200, "spend", translogdomain.TransactionTypeDirect, translogdomain.TriggerManually)
	require.NoError(t, err)
	assert.EqualValues(t, 300, a.Balance)

	err = svc.Transfer(ctx, a.ID, b.ID, 300, "move", translogdomain.TransactionTypeDirect, translogdomain.TriggerManually)
	require.NoError(t, err)

	a, err = svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, a.Balance)

	b, err = svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 300, b.Balance)
}

func TestWithdraw_RejectsNegativeBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "A", 0, nil)
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, a.ID, 1, "overdraw", translogdomain.TransactionTypeDirect, translogdomain.TriggerManually)
	require.Error(t, err)
	assert.Equal(t, apperr.KindBalanceNegative, err.(*apperr.Error).Kind)
}

func TestTransfer_RejectsSameMoneybox(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "A", 0, nil)
	require.NoError(t, err)

	err = svc.Transfer(ctx, a.ID, a.ID, 0, "noop", translogdomain.TransactionTypeDirect, translogdomain.TriggerManually)
	require.Error(t, err)
	assert.Equal(t, apperr.KindTransferEqualMoneybox, err.(*apperr.Error).Kind)
}

func TestDelete_RejectsWhenBalanceNonZero(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "A", 0, nil)
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, a.ID, 50, "seed", translogdomain.TransactionTypeDirect, translogdomain.TriggerManually)
	require.NoError(t, err)

	err = svc.Delete(ctx, a.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindHasBalance, err.(*apperr.Error).Kind)
}

func TestDelete_RepacksPriorities(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "A", 0, nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "B", 0, nil)
	require.NoError(t, err)
	c, err := svc.Create(ctx, "C", 0, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID))

	list, err := svc.PriorityList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, 1, *list[0].Priority)
	assert.Equal(t, c.ID, list[1].ID)
	assert.Equal(t, 2, *list[1].Priority)
}

func TestUpdate_RejectsOnOverflowMoneybox(t *testing.T) {
	ctx := context.Background()

	st, err := store.NewTest()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(st.DB, zap.NewNop()))
	boxRepo := moneyboxrepo.New(st.DB)
	nameHistory := namehistoryservice.New(namehistoryrepo.New(st.DB), zap.NewNop())
	transLog := translogservice.New(translogrepo.New(st.DB), boxRepo, nameHistory, zap.NewNop())
	svc := New(st, boxRepo, nameHistory, transLog, zap.NewNop())

	overflowPriority := moneyboxdomain.OverflowPriority
	overflow := &moneyboxdomain.Moneybox{ID: uuid.New(), Name: "Overflow Moneybox", Priority: &overflowPriority, IsActive: true}
	require.NoError(t, boxRepo.Create(ctx, nil, overflow))

	name := "New Name"
	_, err = svc.Update(ctx, overflow.ID, UpdateInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, apperr.KindOverflowNotModifiable, err.(*apperr.Error).Kind)
}

func TestReorder_RejectsOverflowInList(t *testing.T) {
	ctx := context.Background()

	st, err := store.NewTest()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(st.DB, zap.NewNop()))
	boxRepo := moneyboxrepo.New(st.DB)
	nameHistory := namehistoryservice.New(namehistoryrepo.New(st.DB), zap.NewNop())
	transLog := translogservice.New(translogrepo.New(st.DB), boxRepo, nameHistory, zap.NewNop())
	svc := New(st, boxRepo, nameHistory, transLog, zap.NewNop())

	overflowPriority := moneyboxdomain.OverflowPriority
	overflow := &moneyboxdomain.Moneybox{ID: uuid.New(), Name: "Overflow Moneybox", Priority: &overflowPriority, IsActive: true}
	require.NoError(t, boxRepo.Create(ctx, nil, overflow))

	a, err := svc.Create(ctx, "A", 0, nil)
	require.NoError(t, err)

	_, err = svc.Reorder(ctx, map[uuid.UUID]int{overflow.ID: 1, a.ID: 2})
	require.Error(t, err)
	assert.Equal(t, apperr.KindOverflowNotModifiable, err.(*apperr.Error).Kind)
}

func TestReorder_AppliesNewPriorities(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "A", 0, nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "B", 0, nil)
	require.NoError(t, err)
	c, err := svc.Create(ctx, "C", 0, nil)
	require.NoError(t, err)

	_, err = svc.Reorder(ctx, map[uuid.UUID]int{a.ID: 3, b.ID: 1, c.ID: 2})
	require.NoError(t, err)

	list, err := svc.PriorityList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)
	assert.Equal(t, a.ID, list[2].ID)
}
