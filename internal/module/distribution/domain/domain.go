// Package domain implements the four overflow-distribution strategies
// and the months-to-target predictor of spec §4.3 as pure functions
// over snapshots, grounded on the teacher's analytics/budget_allocation
// pure-computation-over-snapshot style (BudgetAllocationModel.Execute
// kept separate from the Service that logs/wraps it).
package domain

import (
	"github.com/google/uuid"
)

// Box is the minimal snapshot the engine needs per moneybox: ID,
// per-cycle savings amount, optional target, and current balance.
// Priority ordering is expressed by slice position; index 0 is
// reserved for the overflow box.
type Box struct {
	ID            uuid.UUID
	SavingsAmount int64
	SavingsTarget *int64 // nil = unbounded
	Balance       int64
}

func (b Box) gap() int64 {
	if b.SavingsTarget == nil {
		return 0
	}
	gap := *b.SavingsTarget - b.Balance
	if gap < 0 {
		return 0
	}
	return gap
}

// Mode mirrors settings.OverflowMode without importing the settings
// package, keeping this package free of other internal packages (its
// only import is uuid) per spec's "pure functions over snapshots"
// framing.
type Mode string

const (
	ModeCollect Mode = "COLLECT"
	ModeAdd     Mode = "ADD"
	ModeFill    Mode = "FILL"
	ModeRatio   Mode = "RATIO"
)

// Plan is the materialized per-box signed delta the engine computes.
// Positive = deposit, negative = withdrawal. Boxes with a zero delta
// are omitted, matching spec §4.3's "zero-amount movements are never
// written" rule.
type Plan map[uuid.UUID]int64

// Distribute runs one cycle: boxes[0] MUST be the overflow box,
// boxes[1:] the remaining active boxes in ascending priority order.
// budget is the per-cycle automated savings amount (settings.savings_amount).
func Distribute(boxes []Box, budget int64, mode Mode) Plan {
	if len(boxes) == 0 {
		return Plan{}
	}
	overflow := boxes[0]
	rest := boxes[1:]

	plan := Plan{}
	remainingBudget := budget

	switch mode {
	case ModeAdd:
		if overflow.Balance > 0 {
			plan.add(overflow.ID, -overflow.Balance)
			remainingBudget += overflow.Balance
			overflow.Balance = 0
		}
		collect(rest, remainingBudget, overflow.ID, plan)

	case ModeFill:
		collectResult, overflowAfterCollect := collectWithResidual(rest, remainingBudget, overflow)
		mergeInto(plan, collectResult)
		if overflowAfterCollect.Balance > 0 {
			withdrawAmount := overflowAfterCollect.Balance
			plan.add(overflow.ID, -withdrawAmount)
			fillLimited(rest, withdrawAmount, overflow.ID, plan)
		}

	case ModeRatio:
		collectResult, overflowAfterCollect := collectWithResidual(rest, remainingBudget, overflow)
		mergeInto(plan, collectResult)
		if overflowAfterCollect.Balance > 0 {
			ratio(rest, overflowAfterCollect.Balance, overflow.ID, plan)
		}

	default: // ModeCollect
		collect(rest, remainingBudget, overflow.ID, plan)
	}

	return plan
}

func mergeInto(dst, src Plan) {
	for id, amount := range src {
		dst.add(id, amount)
	}
}

// add accumulates a signed delta for id, omitting zero entries.
func (p Plan) add(id uuid.UUID, amount int64) {
	if amount == 0 {
		return
	}
	p[id] += amount
	if p[id] == 0 {
		delete(p, id)
	}
}

// collect runs the COLLECT walk and deposits the residual into
// overflowID, mutating plan in place.
func collect(boxes []Box, budget int64, overflowID uuid.UUID, plan Plan) {
	if budget <= 0 {
		return
	}
	remaining := budget
	for _, m := range boxes {
		if remaining <= 0 {
			break
		}
		take := m.SavingsAmount
		if m.SavingsTarget != nil {
			g := m.gap()
			if g < take {
				take = g
			}
		}
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			continue
		}
		plan.add(m.ID, take)
		remaining -= take
	}
	plan.add(overflowID, remaining)
}

// collectWithResidual runs COLLECT but returns the resulting plan and
// the overflow box's balance after absorbing the residual, without
// writing the overflow deposit into the caller's running plan (the
// caller does that via mergeInto, keeping the residual visible for
// the next phase).
func collectWithResidual(boxes []Box, budget int64, overflow Box) (Plan, Box) {
	local := Plan{}
	if budget <= 0 {
		return local, overflow
	}
	remaining := budget
	for _, m := range boxes {
		if remaining <= 0 {
			break
		}
		take := m.SavingsAmount
		if m.SavingsTarget != nil {
			g := m.gap()
			if g < take {
				take = g
			}
		}
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			continue
		}
		local.add(m.ID, take)
		remaining -= take
	}
	local.add(overflow.ID, remaining)
	overflow.Balance += remaining
	return local, overflow
}

// fillLimited runs the FILL second pass: savings_amount is ignored,
// each box with a non-null target gets min(remaining, gap), in
// priority order. Residual returns to overflowID.
func fillLimited(boxes []Box, available int64, overflowID uuid.UUID, plan Plan) {
	remaining := available
	for _, m := range boxes {
		if remaining <= 0 {
			break
		}
		if m.SavingsTarget == nil {
			continue
		}
		take := m.gap()
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			continue
		}
		plan.add(m.ID, take)
		remaining -= take
	}
	plan.add(overflowID, remaining)
}

// ratio runs the RATIO redistribution: proportion of savings_amount,
// truncated, computed via a reversed traversal (lowest-priority boxes
// first) so rounding residue accumulates toward the overflow
// deterministically, per spec §4.3. r is withdrawn from the overflow
// up front, mirroring fillLimited's withdraw-then-distribute shape;
// whatever isn't allocated to a box flows back via the residual add.
func ratio(boxes []Box, r int64, overflowID uuid.UUID, plan Plan) {
	var totalSA int64
	for _, m := range boxes {
		totalSA += m.SavingsAmount
	}
	if totalSA <= 0 {
		return
	}

	plan.add(overflowID, -r)
	remaining := r
	for i := len(boxes) - 1; i >= 0; i-- {
		m := boxes[i]
		ratioPct := m.SavingsAmount * 100 / totalSA
		base := r / 100 * ratioPct
		take := base
		if m.SavingsTarget != nil {
			g := m.gap()
			if g < take {
				take = g
			}
		}
		if take < 0 {
			take = 0
		}
		plan.add(m.ID, take)
		remaining -= take
	}
	plan.add(overflowID, remaining)
}

// Predict simulates month-by-month distribution and reports, for
// every box with a positive non-null target, the 1-based month index
// where its balance first reaches the target. Boxes already at or
// above their target report 0; unreachable boxes report -1. The simulation is bounded to 100*len(boxes) cycles to
// guarantee termination (spec §4.3).
func Predict(boxes []Box, budget int64, mode Mode) map[uuid.UUID]int {
	result := make(map[uuid.UUID]int)
	targets := make(map[uuid.UUID]int64)
	for _, b := range boxes {
		if b.SavingsTarget != nil && *b.SavingsTarget > 0 {
			targets[b.ID] = *b.SavingsTarget
			if b.Balance >= *b.SavingsTarget {
				result[b.ID] = 0
			} else {
				result[b.ID] = -1
			}
		}
	}
	if len(targets) == 0 {
		return result
	}

	sim := make([]Box, len(boxes))
	copy(sim, boxes)

	limit := 100 * len(boxes)
	for month := 1; month <= limit; month++ {
		plan := Distribute(sim, budget, mode)
		if len(plan) == 0 {
			break
		}
		byID := make(map[uuid.UUID]int, len(sim))
		for i, b := range sim {
			byID[b.ID] = i
		}
		for id, delta := range plan {
			if i, ok := byID[id]; ok {
				sim[i].Balance += delta
			}
		}
		allResolved := true
		for id, target := range targets {
			if result[id] != -1 {
				continue
			}
			for _, b := range sim {
				if b.ID == id && b.Balance >= target {
					result[id] = month
					break
				}
			}
			if result[id] == -1 {
				allResolved = false
			}
		}
		if allResolved {
			break
		}
	}
	return result
}
