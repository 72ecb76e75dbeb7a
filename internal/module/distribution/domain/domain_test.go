package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(n int64) *int64 { return &n }

func TestDistribute_Collect_ResidueGoesToOverflow(t *testing.T) {
	overflow := Box{ID: uuid.New()}
	a := Box{ID: uuid.New(), SavingsAmount: 100}
	b := Box{ID: uuid.New(), SavingsAmount: 50, SavingsTarget: ptr(30)}

	plan := Distribute([]Box{overflow, a, b}, 200, ModeCollect)

	assert.EqualValues(t, 100, plan[a.ID])
	assert.EqualValues(t, 30, plan[b.ID]) // capped by gap to target
	assert.EqualValues(t, 70, plan[overflow.ID])
}

func TestDistribute_Collect_BudgetExhaustedMidWalk(t *testing.T) {
	overflow := Box{ID: uuid.New()}
	a := Box{ID: uuid.New(), SavingsAmount: 100}
	b := Box{ID: uuid.New(), SavingsAmount: 100}

	plan := Distribute([]Box{overflow, a, b}, 150, ModeCollect)

	assert.EqualValues(t, 100, plan[a.ID])
	assert.EqualValues(t, 50, plan[b.ID])
	_, hasOverflow := plan[overflow.ID]
	assert.False(t, hasOverflow, "zero-amount overflow deposit must be omitted")
}

func TestDistribute_Add_DrainsOverflowBalanceFirst(t *testing.T) {
	overflow := Box{ID: uuid.New(), Balance: 40}
	a := Box{ID: uuid.New(), SavingsAmount: 100}

	plan := Distribute([]Box{overflow, a}, 50, ModeAdd)

	assert.EqualValues(t, -40, plan[overflow.ID])
	assert.EqualValues(t, 90, plan[a.ID]) // 50 budget + 40 drained overflow balance
}

func TestDistribute_Fill_SecondPassIgnoresSavingsAmount(t *testing.T) {
	overflow := Box{ID: uuid.New(), Balance: 100}
	a := Box{ID: uuid.New(), SavingsAmount: 0, SavingsTarget: ptr(1000), Balance: 0}

	plan := Distribute([]Box{overflow, a}, 0, ModeFill)

	assert.EqualValues(t, -100, plan[overflow.ID])
	assert.EqualValues(t, 100, plan[a.ID])
}

func TestDistribute_Ratio_TotalSavingsAmountZero_LeavesOverflowUntouched(t *testing.T) {
	overflow := Box{ID: uuid.New(), Balance: 90}
	a := Box{ID: uuid.New(), SavingsAmount: 0}

	plan := Distribute([]Box{overflow, a}, 0, ModeRatio)

	assert.Empty(t, plan, "nothing can be allocated by ratio, so nothing should move")
}

// TestDistribute_Ratio_ScenarioS4 is spec.md §8 scenario S4: budget 0,
// overflow balance 100, two boxes each (savings_amount 50, target 100,
// balance 0). Both take their full ratio share (50 each, uncapped by
// target gap), and the overflow's entire balance is withdrawn to fund
// it — total system money is conserved.
func TestDistribute_Ratio_ScenarioS4(t *testing.T) {
	overflow := Box{ID: uuid.New(), Balance: 100}
	box1 := Box{ID: uuid.New(), SavingsAmount: 50, SavingsTarget: ptr(100)}
	box2 := Box{ID: uuid.New(), SavingsAmount: 50, SavingsTarget: ptr(100)}

	plan := Distribute([]Box{overflow, box1, box2}, 0, ModeRatio)

	assert.EqualValues(t, -100, plan[overflow.ID])
	assert.EqualValues(t, 50, plan[box1.ID])
	assert.EqualValues(t, 50, plan[box2.ID])

	var total int64
	for _, delta := range plan {
		total += delta
	}
	assert.Zero(t, total, "distribution must conserve total system money")
}

func TestDistribute_NoBoxes_EmptyPlan(t *testing.T) {
	plan := Distribute(nil, 100, ModeCollect)
	assert.Empty(t, plan)
}

func TestPredict_ReachesTargetWithinBoundedMonths(t *testing.T) {
	overflow := Box{ID: uuid.New()}
	a := Box{ID: uuid.New(), SavingsAmount: 100, SavingsTarget: ptr(300)}

	result := Predict([]Box{overflow, a}, 100, ModeCollect)

	require.Contains(t, result, a.ID)
	assert.Equal(t, 3, result[a.ID])
}

func TestPredict_UnreachableTargetReportsNegativeOne(t *testing.T) {
	overflow := Box{ID: uuid.New()}
	a := Box{ID: uuid.New(), SavingsAmount: 0, SavingsTarget: ptr(100)}

	result := Predict([]Box{overflow, a}, 0, ModeCollect)

	assert.Equal(t, -1, result[a.ID])
}

func TestPredict_AlreadyAtTargetReportsZero(t *testing.T) {
	overflow := Box{ID: uuid.New()}
	a := Box{ID: uuid.New(), SavingsAmount: 50, SavingsTarget: ptr(100), Balance: 100}

	result := Predict([]Box{overflow, a}, 50, ModeCollect)

	assert.Equal(t, 0, result[a.ID])
}
